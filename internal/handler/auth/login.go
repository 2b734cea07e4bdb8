// File: internal/handler/auth/login.go
package auth

import (
	"fmt"
	"net/http"

	"edu-platform/internal/dto"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Username/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 驗證帳密後簽發新的 bearer token，並依角色回傳導向路徑
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的請求資料: %v", err)})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		result, err := svc.Login(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewAuthResponse(result))
	}
}
