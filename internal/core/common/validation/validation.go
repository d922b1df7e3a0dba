package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	errors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

// custom validation tags
const (
	notBlankTag  = "notblank"
	roleTag      = "role"
	priorityTag  = "priority"
	issueStatTag = "issue_status"
)

var (
	Priorities    = []string{"low", "medium", "high"}
	IssueStatuses = []string{"open", "in-progress", "resolved", "closed"}
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New()

		english := en.New()
		uni := ut.New(english, english)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Use JSON tag names in error details.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation(notBlankTag, notBlank)
		_ = validate.RegisterValidation(roleTag, validRole)
		_ = validate.RegisterValidation(priorityTag, oneOf(Priorities))
		_ = validate.RegisterValidation(issueStatTag, oneOf(IssueStatuses))

		noop := func(ut.Translator) error { return nil }
		for _, tag := range []string{notBlankTag, roleTag, priorityTag, issueStatTag} {
			_ = validate.RegisterTranslation(tag, translator, noop, translateCustom)
		}
	})
	return validate, translator
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case roleTag:
		return fe.Field() + " must be one of employee, supervisor, admin"
	case priorityTag:
		return fe.Field() + " must be one of " + strings.Join(Priorities, ", ")
	case issueStatTag:
		return fe.Field() + " must be one of " + strings.Join(IssueStatuses, ", ")
	default:
		return fe.Field() + " is invalid"
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// validRole accepts an empty value so callers can apply the default role afterwards.
func validRole(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := role.Parse(s)
	return ok
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

// Struct validates s against its `validate` tags and reports failures as a
// validation AppError carrying one detail per field.
func Struct(s interface{}) *errors.AppError {
	v, trans := instance()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	details := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errors.ValidationError{
			Field:   fe.Field(),
			Message: fe.Translate(trans),
			Code:    codeFor(fe.Tag()),
		})
	}

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: details})
}

func codeFor(tag string) string {
	switch tag {
	case roleTag:
		return string(errors.ErrCodeInvalidRole)
	case priorityTag:
		return string(errors.ErrCodeInvalidPriority)
	case issueStatTag:
		return string(errors.ErrCodeInvalidStatus)
	default:
		return string(errors.ErrCodeValidationFailed)
	}
}
