package bcard

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/bcard-portal/internal/domain"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// AddressInput mirrors the directory's address shape for create/register
// payloads. The directory requires country, city, street and houseNumber.
type AddressInput struct {
	State       string `json:"state,omitempty" form:"state"`
	Country     string `json:"country" form:"country" validate:"required"`
	City        string `json:"city" form:"city" validate:"required"`
	Street      string `json:"street" form:"street" validate:"required"`
	HouseNumber string `json:"houseNumber" form:"houseNumber" validate:"required"`
	Zip         string `json:"zip" form:"zip" validate:"required"`
}

// ImageInput is the optional illustration of a card or avatar.
type ImageInput struct {
	URL string `json:"url,omitempty" form:"imageUrl" validate:"omitempty,url"`
	Alt string `json:"alt,omitempty" form:"imageAlt"`
}

// CardInput is the POST /cards payload.
type CardInput struct {
	Title       string       `json:"title" form:"title" validate:"required,min=2,max=256"`
	Subtitle    string       `json:"subtitle,omitempty" form:"subtitle" validate:"omitempty,max=256"`
	Description string       `json:"description,omitempty" form:"description" validate:"omitempty,max=1024"`
	Phone       string       `json:"phone" form:"phone" validate:"required,min=9,max=14"`
	Email       string       `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	Web         string       `json:"web,omitempty" form:"web" validate:"omitempty,url"`
	Image       ImageInput   `json:"image"`
	Address     AddressInput `json:"address"`
}

// NameInput is the nested name of a register payload.
type NameInput struct {
	First  string `json:"first" form:"firstName" validate:"required,min=2,max=256"`
	Middle string `json:"middle,omitempty" form:"middleName" validate:"omitempty,max=256"`
	Last   string `json:"last" form:"lastName" validate:"required,min=2,max=256"`
}

// RegisterInput is the POST /users payload.
type RegisterInput struct {
	Name       NameInput    `json:"name"`
	Email      string       `json:"email" form:"email" validate:"required,email"`
	Password   string       `json:"password" form:"password" validate:"required,min=8,max=64"`
	Phone      string       `json:"phone" form:"phone" validate:"required,min=9,max=14"`
	Address    AddressInput `json:"address"`
	Image      ImageInput   `json:"image"`
	IsBusiness bool         `json:"isBusiness" form:"isBusiness"`
}

// Credentials is the POST /users/login payload.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResult bundles the bearer token with the optional account object some
// directory versions return alongside it.
type LoginResult struct {
	Token string
	User  *domain.User
}

var validate = validator.New()

// Validate runs struct validation and maps failures into the client error
// taxonomy, one detail entry per offending field.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	details := map[string]any{}
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Namespace()] = fe.Tag()
		}
	}
	return apperrors.NewValidationFailed("invalid input", details)
}
