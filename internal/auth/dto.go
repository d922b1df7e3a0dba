package auth

import (
	"strings"

	"github.com/frahmantamala/workforce-ops/internal/core/common/validation"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"notblank,max=100"`
	Role     string `json:"role" validate:"role"`
}

func (r *SignupRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	if err := validation.Struct(r); err != nil {
		return err
	}
	return nil
}

// role returns the requested role, or employee when none was given.
func (r *SignupRequest) role() role.Role {
	rl, _ := role.ParseOrDefault(r.Role)
	return rl
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := validation.Struct(r); err != nil {
		return err
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (r *RefreshRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return nil
}

type SignupResponse struct {
	User *Principal `json:"user"`
}
