package handler

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/lagunartea/club-ledger/internal/booking"
)

// RequestValidator plugs go-playground/validator into echo.  Field names in
// errors are the JSON names of the request.
type RequestValidator struct {
    v *validator.Validate
}

// NewValidator returns the validator installed as echo's e.Validator.
func NewValidator() *RequestValidator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "-" {
            return ""
        }
        return name
    })
    return &RequestValidator{v: v}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i any) error {
    return rv.v.Struct(i)
}

// bindValid binds the request into dst and validates it.  Both failures
// come back as a *booking.ValidationError.
func bindValid(c echo.Context, dst any) error {
    if err := c.Bind(dst); err != nil {
        return &booking.ValidationError{Message: "invalid request body"}
    }
    if err := c.Validate(dst); err != nil {
        var ves validator.ValidationErrors
        if errors.As(err, &ves) && len(ves) > 0 {
            fe := ves[0]
            return &booking.ValidationError{Field: fe.Field(), Message: describe(fe)}
        }
        return &booking.ValidationError{Message: err.Error()}
    }
    return nil
}

func describe(fe validator.FieldError) string {
    switch fe.Tag() {
    case "required":
        return "is required"
    case "min":
        return fmt.Sprintf("must be at least %s", fe.Param())
    case "max":
        return fmt.Sprintf("must be at most %s", fe.Param())
    case "oneof":
        return fmt.Sprintf("must be one of %s", fe.Param())
    }
    return fmt.Sprintf("failed %s", fe.Tag())
}
