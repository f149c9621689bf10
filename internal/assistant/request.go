package assistant

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyQuery       = errors.New("query cannot be empty")
)

// ExpenseRequest is the inbound body of a categorize call.
type ExpenseRequest struct {
	Description string `json:"description" validate:"notblank"`
}

// QueryRequest is the inbound body of a finance question.
type QueryRequest struct {
	Query string `json:"query" validate:"notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate rejects a missing or whitespace-only description.
func (r ExpenseRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ErrEmptyDescription
	}
	return nil
}

// Validate rejects a missing or whitespace-only query.
func (r QueryRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ErrEmptyQuery
	}
	return nil
}

func (r ExpenseRequest) text() string { return strings.TrimSpace(r.Description) }
func (r QueryRequest) text() string   { return strings.TrimSpace(r.Query) }
