package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin - единственная роль, которую выдает сервис.
const RoleAdmin = "admin"

// Claims представляет поля JWT админской сессии.
// Subject = имя администратора, ID (jti) = идентификатор сессии в хранилище.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ContextKey - тип ключей для значений в контексте gin.
type ContextKey string

const (
	AdminContextKey   ContextKey = "admin_username"
	SessionContextKey ContextKey = "admin_session_id"
)
