// Package validation binds form drafts onto typed records and reports
// field-level errors using the records' validate tags.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"
)

var errNotAmount = errors.New("not a decimal amount")

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Binder converts between url.Values drafts and records. It is safe for concurrent use.
type Binder struct {
	decoder  *form.Decoder
	encoder  *form.Encoder
	validate *validator.Validate
}

// NewBinder builds a Binder with the money and whitespace rules registered.
func NewBinder() *Binder {
	dec := form.NewDecoder()
	dec.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	dec.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		raw := strings.TrimSpace(vals[0])
		a := money.ParseAmount(raw)
		if raw != "" && !a.Valid() {
			return nil, errNotAmount
		}
		return a, nil
	}, money.Amount{})

	enc := form.NewEncoder()
	enc.RegisterCustomTypeFunc(func(x interface{}) ([]string, error) {
		a, _ := x.(money.Amount)
		return []string{a.String()}, nil
	}, money.Amount{})

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formFieldName)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		a, ok := field.Interface().(money.Amount)
		if !ok || !a.Valid() {
			return ""
		}
		return a.Decimal().String()
	}, money.Amount{})

	return &Binder{decoder: dec, encoder: enc, validate: v}
}

// Decode fills dst from values. Conversion failures are returned as FieldErrors.
func (b *Binder) Decode(dst any, values url.Values) FieldErrors {
	err := b.decoder.Decode(dst, values)
	if err == nil {
		return nil
	}
	var decErrs form.DecodeErrors
	if errors.As(err, &decErrs) {
		out := make(FieldErrors, len(decErrs))
		for field := range decErrs {
			out[field] = label(field) + " is invalid."
		}
		return out
	}
	return FieldErrors{"": err.Error()}
}

// Encode flattens src into form values.
func (b *Binder) Encode(src any) (url.Values, error) {
	values, err := b.encoder.Encode(src)
	if err != nil {
		return nil, fmt.Errorf("encode form values: %w", err)
	}
	return values, nil
}

// Validate runs the validate tags of src. A nil result means src is valid.
func (b *Binder) Validate(src any) FieldErrors {
	err := b.validate.Struct(src)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

// formFieldName reports fields by their form tag so errors key on draft names.
func formFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s.", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return name + " is not a valid date."
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s.", name, fe.Param())
	case "numeric", "number":
		return name + " must be a number."
	default:
		return name + " is invalid."
	}
}

// label turns "account_name" or "permissions[0].module_name" into "Account name" / "Module name".
func label(field string) string {
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	words := strings.Fields(strings.ReplaceAll(field, "_", " "))
	if len(words) == 0 {
		return "This field"
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}
