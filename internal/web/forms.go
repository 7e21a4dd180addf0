package web

import (
	"net/http"
	"reflect"
	"strings"

	"pizza-dashboard/internal/common/errors"

	"github.com/go-playground/validator/v10"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type createFranchiseForm struct {
	Name       string `form:"name" validate:"required,max=100"`
	AdminEmail string `form:"email" validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// formErrors maps form field names to a message for each failed rule.
type formErrors map[string]string

// validate checks dst and turns validation failures into per-field messages.
func (s *Server) validate(dst interface{}) formErrors {
	err := s.validator.Struct(dst)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return formErrors{"": err.Error()}
	}
	out := make(formErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

func parseLoginForm(r *http.Request) (loginForm, error) {
	if err := r.ParseForm(); err != nil {
		return loginForm{}, errors.NewValidationError("malformed form body")
	}
	return loginForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}, nil
}

func parseRegisterForm(r *http.Request) (registerForm, error) {
	if err := r.ParseForm(); err != nil {
		return registerForm{}, errors.NewValidationError("malformed form body")
	}
	return registerForm{
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}, nil
}

func parseCreateFranchiseForm(r *http.Request) (createFranchiseForm, error) {
	if err := r.ParseForm(); err != nil {
		return createFranchiseForm{}, errors.NewValidationError("malformed form body")
	}
	return createFranchiseForm{
		Name:       strings.TrimSpace(r.PostForm.Get("name")),
		AdminEmail: strings.TrimSpace(r.PostForm.Get("email")),
	}, nil
}
