package state

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type waterInput struct {
	Glasses int `json:"waterGlasses" validate:"min=0"`
}

type moodInput struct {
	Mood int `json:"mood" validate:"min=1,max=5"`
}

type energyInput struct {
	Level int `json:"energyLevel" validate:"min=1,max=5"`
}

type habitInput struct {
	Name string `json:"habit" validate:"required,max=64"`
}

type symptomInput struct {
	Name  string `json:"symptom" validate:"required,max=64"`
	Value string `json:"value" validate:"required,max=256"`
}

type sessionInput struct {
	Type            string `json:"type" validate:"required,oneof=478 box calm energy"`
	DurationSeconds int    `json:"durationSeconds" validate:"gt=0"`
}

type boundaryProfileInput struct {
	Style string `json:"style" validate:"required,max=64"`
}

type scriptInput struct {
	Category string `json:"category" validate:"required,max=32"`
	Title    string `json:"title" validate:"required,max=128"`
}

type messageInput struct {
	Role string `json:"role" validate:"oneof=user assistant"`
	Text string `json:"text" validate:"required"`
}

type profileInput struct {
	Name      string `json:"name" validate:"max=100"`
	LifeStage string `json:"lifeStage" validate:"max=100"`
	Theme     string `json:"theme" validate:"oneof=default calm warm dark"`
	Language  string `json:"language" validate:"required,min=2,max=16"`
}

// check validates in and converts the first failure into a ValidationError.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "input", Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{
		Field:  fe.Field(),
		Value:  fe.Value(),
		Reason: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
