// File: internal/model/role.go
package model

import (
	"fmt"
	"strings"
)

// Role 使用者角色
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole 不分大小寫解析角色字串
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Authority 回傳授權名稱，例如 ROLE_STUDENT
func (r Role) Authority() string { return "ROLE_" + string(r) }

// RedirectPath 依角色決定登入後導向的前端路徑，未知角色回到 "/"
func (r Role) RedirectPath() string {
	switch r {
	case RoleStudent:
		return "/student-app"
	case RoleTeacher:
		return "/teacher-app"
	case RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}
