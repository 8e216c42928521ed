// Package validation wraps go-playground/validator with locale-aware
// translations. Entity structs carry validate tags for the default rule
// group; identifier checks (the id-only group used on update/find paths)
// run as single-value validations.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	detranslations "github.com/go-playground/validator/v10/translations/de"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
)

// Locale selects the language of violation messages.
type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"

	// DefaultLocale is used when no locale can be negotiated.
	DefaultLocale = LocaleDE
)

// MinID is the smallest valid server-assigned identity.
const MinID = 1

var (
	nachnameRegexp = regexp.MustCompile(models.NachnamePattern)
	plzRegexp      = regexp.MustCompile(`^\d{5}$`)
)

// Validator evaluates entity constraints and resolves messages per locale.
type Validator struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
}

// New builds a Validator with de (default) and en translators and the
// shop-specific rules registered.
func New() (*Validator, error) {
	deLocale := de.New()
	enLocale := en.New()
	uni := ut.New(deLocale, deLocale, enLocale)

	v := validator.New()

	// Violations name fields by their json tag
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal validates through its float value (gte=0 etc.)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("nachname", func(fl validator.FieldLevel) bool {
		return nachnameRegexp.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("plz", func(fl validator.FieldLevel) bool {
		return plzRegexp.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("past", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.Before(time.Now())
	}); err != nil {
		return nil, err
	}

	deTrans, _ := uni.GetTranslator("de")
	enTrans, _ := uni.GetTranslator("en")
	if err := detranslations.RegisterDefaultTranslations(v, deTrans); err != nil {
		return nil, err
	}
	if err := entranslations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return nil, err
	}

	for tag, msg := range map[string]string{
		"nachname": "{0} hat kein gültiges Namensformat",
		"plz":      "{0} muss eine fünfstellige Postleitzahl sein",
		"past":     "{0} muss in der Vergangenheit liegen",
	} {
		if err := registerTranslation(v, deTrans, tag, msg); err != nil {
			return nil, err
		}
	}
	for tag, msg := range map[string]string{
		"nachname": "{0} is not a valid name",
		"plz":      "{0} must be a five-digit postal code",
		"past":     "{0} must be in the past",
	} {
		if err := registerTranslation(v, enTrans, tag, msg); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: v, uni: uni}, nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, msg string) error {
	return v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		})
}

// Translator returns the message translator for the locale, falling back to
// the default locale.
func (v *Validator) Translator(locale Locale) ut.Translator {
	trans, found := v.uni.GetTranslator(string(locale))
	if !found {
		trans, _ = v.uni.GetTranslator(string(DefaultLocale))
	}
	return trans
}

// ValidateStruct checks the default rule group of an entity. An empty result
// means the entity is valid. Violations are collected, never returned one at
// a time.
func (v *Validator) ValidateStruct(entity interface{}, locale Locale) []apperrors.FieldViolation {
	err := v.validate.Struct(entity)
	if err == nil {
		return nil
	}
	return v.toViolations(err, locale, "")
}

// ValidateValue checks a single value against a constraint tag, reporting
// violations under the given field name. This mirrors the id-only and
// single-field validations of the service layer (email, nachname,
// suchbegriff).
func (v *Validator) ValidateValue(field string, value interface{}, tag string, locale Locale) []apperrors.FieldViolation {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	return v.toViolations(err, locale, field)
}

// ValidateID checks the identifier group: ids must be at least MinID. Only
// enforced on update/find paths, never on create (ids are server-assigned).
func (v *Validator) ValidateID(field string, id uint64, locale Locale) []apperrors.FieldViolation {
	return v.ValidateValue(field, id, "min=1", locale)
}

func (v *Validator) toViolations(err error, locale Locale, field string) []apperrors.FieldViolation {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldViolation{{Field: field, Message: err.Error()}}
	}

	trans := v.Translator(locale)
	violations := make([]apperrors.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		violations = append(violations, apperrors.FieldViolation{
			Field:   name,
			Message: strings.TrimSpace(fe.Translate(trans)),
		})
	}
	return violations
}
