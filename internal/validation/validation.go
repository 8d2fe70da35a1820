package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxAmount bounds every persisted monetary value.
const MaxAmount = 999_999_999_999

// MaxStock bounds persisted stock quantities.
const MaxStock = 999_999_999

// FieldError is one rejected field with a user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists every rejected field of a record, in declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("finite", validateFinite)
		_ = v.RegisterValidation("whole", validateWhole)
		validate = v
	})
	return validate
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateWhole(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return f == math.Trunc(f)
}

// messages maps "field.tag" to the text shown next to the form field.
type messages map[string]string

// check runs struct validation and converts failures into Errors using msgs.
func check(s any, msgs messages) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldPath drops the root struct name, so "product.name" becomes "name"
// and "document.items[0].price" becomes "items[0].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
