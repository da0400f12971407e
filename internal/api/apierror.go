package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error bodies. It does not implement error;
// it exists only to be serialized back to the client.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

// APIError is the {"message": ...} body used for most failures.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Code implements ErrorResponse.
func (a *APIError) Code() int {
	return a.Status
}

// StructuredError reports validation problems keyed by JSON field name.
type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

// Code implements ErrorResponse.
func (s *StructuredError) Code() int {
	return s.Status
}

// Fixed response bodies.
var (
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	InvalidDateError    = NewSimple(http.StatusBadRequest, "Date must be formatted as YYYY-MM-DD")

	MissingAPIKeyError     = NewSimple(http.StatusServiceUnavailable, "The generative service API key is missing. Set GOOGLE_API_KEY and restart.")
	GenerationBusyError    = NewSimple(http.StatusConflict, "A generation request is already in progress")
	EmptyInputError        = NewSimple(http.StatusBadRequest, "Please describe what you want first")
	ImageGenerationFailure = NewSimple(http.StatusBadGateway, "Failed to generate image. Check your API key quota and try again.")
)

// NewSimple builds an APIError, formatting msg when args are given.
func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

// FromValidationError converts validator errors into a field -> problems map.
// Fields are named by their json tag, see newRequestValidator.
// It returns nil when err did not come from the validator.
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "datetime":
			problems[field] = append(problems[field], "Value must be a date formatted as YYYY-MM-DD")
		case "min":
			problems[field] = append(problems[field], "Value is too small, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too large, max: "+fe.Param())
		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}
