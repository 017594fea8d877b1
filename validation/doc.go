// Package validation provides the argument guards used by the Aspen SDK.
//
// Every failure is an INVALID_ARGUMENT *errors.AppError, raised before any
// request is built.
//
// # Single value guard
//
//	if err := validation.RequireNonEmpty("pinNumber", pin); err != nil {
//	    return nil, err
//	}
//
// # Struct tag validation
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic validation
//
//	err := validation.New().
//	    Required("docType", docType).
//	    Required("password", password).
//	    Err()
package validation
