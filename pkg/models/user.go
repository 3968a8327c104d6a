package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var ErrEventNotFound = errors.New("event not found")

const (
	RoleStudent    = `student`
	RoleTeacher    = `teacher`
	RolePrincipal  = `principal`
	RoleAccountant = `accountant`
)

type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"userID"`
	Role   string `json:"role"`
}
