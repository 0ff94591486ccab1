package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/chuo/core"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

type LoginResponse struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}
