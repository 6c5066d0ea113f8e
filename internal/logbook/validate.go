package logbook

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/teniciavanaalten/simlog/internal/records"
)

// custom validation tags
const (
	notBlankTag    = "notblank"
	clockTag       = "clock"
	componentTag   = "component"
	simulatorTag   = "simulator"
	severityTag    = "severity"
	sessionTypeTag = "sessiontype"
	declaredTag    = "declared"
	lostReasonTag  = "lost_reason"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(clockTag, clockValidation)
	_ = validate.RegisterValidation(componentTag, componentValidation)
	_ = validate.RegisterValidation(simulatorTag, simulatorValidation)
	_ = validate.RegisterValidation(severityTag, severityValidation)
	_ = validate.RegisterValidation(sessionTypeTag, sessionTypeValidation)
	_ = validate.RegisterValidation(declaredTag, declaredValidation)
	validate.RegisterStructValidation(sessionInputStructValidation, SessionInput{})

	registerCustomTranslations(
		notBlankTag, clockTag, componentTag, simulatorTag,
		severityTag, sessionTypeTag, declaredTag, lostReasonTag,
	)
}

// registerCustomTranslations registers messages for the custom tags. The
// default translations are already registered, so a noop register func is
// passed.
func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomErr)
	}
}

func translateCustomErr(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case clockTag:
		return fe.Field() + " must be a 24-hour HH:mm time"
	case componentTag:
		return fe.Field() + " must be one of: " + strings.Join(records.Components, ", ")
	case simulatorTag:
		return fe.Field() + " must be one of: " + strings.Join(records.Simulators, ", ")
	case severityTag:
		return fe.Field() + " must be one of: Low, Medium, High, Critical"
	case sessionTypeTag:
		return "please select a session type (Certified or Non-Certified)"
	case declaredTag:
		return fe.Field() + " must be confirmed before submitting"
	case lostReasonTag:
		return "please provide an explanation for the lost session"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func clockValidation(fl validator.FieldLevel) bool {
	_, _, err := records.ParseClock(fl.Field().String())
	return err == nil
}

func componentValidation(fl validator.FieldLevel) bool {
	return records.IsComponent(fl.Field().String())
}

func simulatorValidation(fl validator.FieldLevel) bool {
	return records.IsSimulator(fl.Field().String())
}

func severityValidation(fl validator.FieldLevel) bool {
	_, err := records.ParseSeverity(fl.Field().String())
	return err == nil
}

func sessionTypeValidation(fl validator.FieldLevel) bool {
	_, err := records.ParseSessionType(fl.Field().String())
	return err == nil
}

func declaredValidation(fl validator.FieldLevel) bool {
	return fl.Field().Bool()
}

// sessionInputStructValidation requires a reason whenever a session is
// reported lost.
func sessionInputStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(SessionInput)
	if !ok {
		return
	}
	if in.SessionLost && strings.TrimSpace(in.LostReason) == "" {
		sl.ReportError(in.LostReason, "lostReason", "LostReason", lostReasonTag, "")
	}
}

// FieldError is one failed input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation. Nothing is
// written when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Message returns the message for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// check validates in and converts validator errors into *ValidationError.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe),
			Message: fe.Translate(translator),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace, so
// "SessionInput.declarations.briefing" becomes "declarations.briefing".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}
