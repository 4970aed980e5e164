package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Result collects the field errors found for one submitted record. The zero
// value is a valid (empty) result.
type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) Add(field, rule, message string) {
	r.Errors = append(r.Errors, FieldError{
		Field:   field,
		Rule:    rule,
		Message: message,
	})
}

// Message returns the first message recorded for field, or "".
func (r Result) Message(field string) string {
	for _, fe := range r.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		out = append(out, fe.Message)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

// Validate checks dst against its `validate` struct tags. It does not touch
// any store.
func Validate(dst any) Result {
	err := validate.Struct(dst)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return formatValidationErrors(verrs)
	}

	var res Result
	res.Add("", "invalid", err.Error())
	return res
}

// BindForm binds the request body (form or JSON, by content type) into dst
// and runs Validate on it. Binding failures are reported as syntax errors so
// the caller can re-display the form like any other validation failure.
func BindForm(c *gin.Context, dst any) Result {
	if err := c.ShouldBind(dst); err != nil {
		var res Result
		res.Add("", "syntax", "invalid request body: "+err.Error())
		return res
	}

	return Validate(dst)
}

func formatValidationErrors(verrs validator.ValidationErrors) Result {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		field := toFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: buildMessage(field, fe),
		})
	}

	return Result{Errors: fields}
}

func toFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
