// Package validate wraps go-playground/validator with English translations,
// JSON field names, and the custom tags used by request payloads.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	once       sync.Once
	v          *validator.Validate
	translator ut.Translator

	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]{5,19}$`)
)

// custom tags
const (
	notBlankTag = "notblank"
	objectIDTag = "objectid"
	phoneTag    = "phone"
	eventStatus = "eventstatus"
	eventType   = "eventtype"
)

func setup() {
	v = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation(objectIDTag, func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation(phoneTag, func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	_ = v.RegisterValidation(eventStatus, func(fl validator.FieldLevel) bool {
		return status.IsEventStatus(fl.Field().String())
	})
	_ = v.RegisterValidation(eventType, func(fl validator.FieldLevel) bool {
		return status.IsEventType(fl.Field().String())
	})

	registerTranslation(notBlankTag, "{0} is required")
	registerTranslation(objectIDTag, "{0} must be a valid id")
	registerTranslation(phoneTag, "{0} must be a valid phone number")
	registerTranslation(eventStatus, "{0} must be one of ["+strings.Join(status.EventStatuses, " ")+"]")
	registerTranslation(eventType, "{0} must be one of ["+strings.Join(status.EventTypes, " ")+"]")
}

func registerTranslation(tag, text string) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(setup)
	return v
}

// Struct validates s and returns a validation error carrying the first
// translated message, or nil.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Wrap(apperr.KindValidation, verrs[0].Translate(translator), err)
	}
	return apperr.Wrap(apperr.KindValidation, "Invalid request", err)
}

// Var validates a single value against tag.
func Var(field any, tag string) bool {
	return Validator().Var(field, tag) == nil
}
