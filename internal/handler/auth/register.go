// File: internal/handler/auth/register.go
package auth

import (
	"fmt"
	"net/http"

	"edu-platform/internal/dto"
	"edu-platform/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立帳號並直接回傳登入結果
// @Summary     註冊使用者
// @Description 建立新帳號（角色不分大小寫），成功後與登入回傳相同內容
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     200  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的請求資料: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		result, err := svc.Register(c.Request().Context(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewAuthResponse(result))
	}
}
