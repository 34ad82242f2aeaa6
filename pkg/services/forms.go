package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// TimeSlots are the reservation times offered by the booking form.
var TimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM", "07:00 PM", "07:30 PM", "08:00 PM",
}

// MaxPartySize is the largest party the booking form accepts.
const MaxPartySize = 10

// fieldMessages are shown next to a field whatever rule it broke.
var fieldMessages = map[string]map[string]string{
	"ContactForm": {
		"name":    "Name must be at least 2 characters",
		"email":   "Please enter a valid email address",
		"subject": "Subject must be at least 3 characters",
		"message": "Message must be at least 10 characters",
	},
	"ReservationForm": {
		"name":   "Name must be at least 2 characters",
		"email":  "Please enter a valid email address",
		"phone":  "Please enter a valid phone number",
		"date":   "Please select a date",
		"time":   "Please select a time",
		"guests": "Please select number of guests",
	},
	"NewsletterForm": {
		"email": "Please enter a valid email address",
	},
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + fe[f]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var (
	setupOnce  sync.Once
	translator ut.Translator
	setupErr   error
)

// RegisterValidators registers the booking rules and message fallbacks on gin's
// validator engine. Binding and ValidateForm share that engine.
func RegisterValidators() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("unexpected validator engine")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		if err := v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, slot := range TimeSlots {
				if slot == value {
					return true
				}
			}
			return false
		}); err != nil {
			setupErr = err
			return
		}

		if err := v.RegisterValidation("partysize", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n >= 1 && n <= MaxPartySize
		}); err != nil {
			setupErr = err
			return
		}

		locale := en.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("en")
		setupErr = entranslations.RegisterDefaultTranslations(v, translator)
	})
	return setupErr
}

// ValidateForm checks one of the site's forms. It returns FieldErrors when a
// field is rejected and nil when the form may be submitted.
func ValidateForm(form any) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("validator setup: %w", err)
	}
	return TranslateValidation(form, binding.Validator.ValidateStruct(form))
}

// TranslateValidation turns validator output for form into FieldErrors. Errors
// that are not validation failures are returned unchanged.
func TranslateValidation(form any, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := fieldMessages[formName(form)]
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, done := out[field]; done {
			continue
		}
		if msg, ok := messages[field]; ok {
			out[field] = msg
			continue
		}
		if translator != nil {
			out[field] = fe.Translate(translator)
		} else {
			out[field] = fe.Error()
		}
	}
	return out
}

func formName(form any) string {
	t := reflect.TypeOf(form)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// FormKind names one of the site's forms.
type FormKind string

const (
	ContactKind     FormKind = "contact"
	ReservationKind FormKind = "reservation"
	NewsletterKind  FormKind = "newsletter"
)

// Notices are the toast texts shown after a submission attempt.
type Notices struct {
	Success string
	Failure string
}

var notices = map[FormKind]Notices{
	ContactKind: {
		Success: "Thank you! Your message has been sent successfully. We'll get back to you soon.",
		Failure: "Oops! Something went wrong. Please try again.",
	},
	ReservationKind: {
		Success: "Reservation confirmed! We'll send you a confirmation email shortly.",
		Failure: "Failed to create reservation. Please try again.",
	},
	NewsletterKind: {
		Success: "Success! You're now subscribed to our newsletter.",
		Failure: "Oops! Something went wrong. Please try again.",
	},
}

// NoticesFor returns the notification texts of kind.
func NoticesFor(kind FormKind) Notices {
	return notices[kind]
}
