package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Avatar       string    `json:"avatar" bson:"avatar"`
	CreatedAt    time.Time `json:"date" bson:"date"`
}

// UserSummary is the name/avatar projection attached to profile reads.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if err := validate.Var(r.Email, "required,email"); err != nil {
		errors["email"] = "Please include a valid email"
	}
	if len(r.Password) < 6 {
		errors["password"] = "Please enter a password with 6 or more characters"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if err := validate.Var(r.Email, "required,email"); err != nil {
		errors["email"] = "Please include a valid email"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
