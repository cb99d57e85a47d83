package checkout

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"pawmart-web/internal/order"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a form field (its JSON name) to the problem with it.
// All problems are collected in one pass.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

const fieldPaymentMethod = "paymentMethod"

var fieldLabels = map[string]string{
	"name":             "Name",
	"address":          "Address",
	"city":             "City",
	"postalCode":       "Postal code",
	"phone":            "Phone number",
	fieldPaymentMethod: "Payment method",
}

var (
	validateOnce sync.Once
	formRules    *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := registerRules(v, customRules); err != nil {
			panic(err)
		}
		formRules = v
	})
	return formRules
}

var customRules = map[string]validator.Func{
	"digits":         exactDigits,
	"payment_method": validPaymentMethod,
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	return order.PaymentMethod(fl.Field().String()).Valid()
}

func registerRules(v *validator.Validate, custom map[string]validator.Func) error {
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q rule: %w", tag, err)
		}
	}
	return nil
}

// exactDigits passes when the field is exactly N ASCII digits, N from the tag param.
func exactDigits(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	s := fl.Field().String()
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateForm checks the delivery form and payment method together.
func ValidateForm(d order.DeliveryDetails, method order.PaymentMethod) ValidationErrors {
	errs := ValidationErrors{}
	v := rules()

	if err := v.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs[fe.Field()] = message(fe.Field(), fe.Tag(), fe.Param())
			}
		}
	}

	if err := v.Var(string(method), "required,payment_method"); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			errs[fieldPaymentMethod] = message(fieldPaymentMethod, fieldErrs[0].Tag(), "")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func message(field, tag, param string) string {
	label := fieldLabels[field]
	if label == "" {
		label = field
	}
	switch tag {
	case "required":
		if field == fieldPaymentMethod {
			return "Please select a payment method"
		}
		return label + " is required"
	case "digits":
		return label + " must be exactly " + param + " digits"
	case "payment_method":
		return "Unsupported payment method"
	default:
		return label + " is invalid"
	}
}
