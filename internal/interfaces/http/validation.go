package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orders-api/internal/domain"
)

var lookupCodeRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// decimal.Decimal se valida como float64 para que gt/lte funcionen.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("lookupcode", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) >= 2 && len(s) <= 50 && lookupCodeRe.MatchString(s)
	})
	_ = v.RegisterValidation("qty2dp", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			return false
		}
		return d.Equal(d.Round(2))
	})
	return v
}

// decimalField recupera el decimal original del campo; fl.Field() ya viene convertido a float64.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}
	f := parent.FieldByName(fl.StructFieldName())
	if !f.IsValid() {
		return decimal.Decimal{}, false
	}
	d, ok := f.Interface().(decimal.Decimal)
	return d, ok
}

// validateStruct corre las etiquetas validate y devuelve *domain.ValidationError.
// Los errores de líneas se agrupan bajo "lines" con el número de línea.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fields := domain.FieldErrors{}
	for _, fe := range vErrs {
		field, prefix := fieldKey(fe.Namespace())
		fields.Add(field, prefix+fieldMessage(fe))
	}
	return domain.NewValidationError(fields)
}

// fieldKey traduce "CreateOrderRequest.lines[2].quantity" a ("lines", "Line 3: quantity: ").
func fieldKey(namespace string) (string, string) {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	head := parts[0]
	if i := strings.Index(head, "["); i > 0 {
		var idx int
		_, _ = fmt.Sscanf(head[i:], "[%d]", &idx)
		return head[:i], fmt.Sprintf("Line %d: %s: ", idx+1, strings.Join(parts[1:], "."))
	}
	return strings.Join(parts, "."), ""
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "uuid":
		return "Must be a valid UUID."
	case "lookupcode":
		return "Must be 2-50 characters: letters, digits, '-' or '_', starting with a letter or digit."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "qty2dp":
		return "Ensure that there are no more than 2 decimal places."
	default:
		return fmt.Sprintf("Failed on '%s' validation.", fe.Tag())
	}
}
