package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailShape  = regexp.MustCompile(`\S+@\S+\.\S+`)
	cardShape   = regexp.MustCompile(`^\d{16}$`)
	expiryShape = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvShape    = regexp.MustCompile(`^\d{3,4}$`)
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "basic_email", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	mustRegister(v, "card_number", func(fl validator.FieldLevel) bool {
		return cardShape.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	mustRegister(v, "expiry", func(fl validator.FieldLevel) bool {
		return expiryShape.MatchString(fl.Field().String())
	})
	mustRegister(v, "cvv", func(fl validator.FieldLevel) bool {
		return cvvShape.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// requiredMessages holds the message shown when a field is left blank.
var requiredMessages = map[string]string{
	"firstName":      "First name is required",
	"lastName":       "Last name is required",
	"email":          "Email is required",
	"phone":          "Phone number is required",
	"documentNumber": "Document number is required",
	"birthDate":      "Birth date is required",
	"cardNumber":     "Card number is required",
	"cardName":       "Name on card is required",
	"expiryDate":     "Expiry date is required",
	"cvv":            "Security code is required",
}

var formatMessages = map[string]string{
	"basic_email": "Invalid email",
	"card_number": "Invalid card number",
	"expiry":      "Invalid format (MM/YY)",
	"cvv":         "Invalid CVV",
}

// ValidatePassenger returns one message per invalid field. An empty map means
// the passenger step may advance.
func ValidatePassenger(p PassengerDetails) map[string]string {
	return validateForm(p)
}

// ValidatePayment checks the card sub-form for credit and debit payments.
// Other methods collect no card data and always pass.
func ValidatePayment(method PaymentMethod, p PaymentDetails) map[string]string {
	if !method.IsCard() {
		return map[string]string{}
	}
	return validateForm(p)
}

func validateForm(form any) map[string]string {
	errs := map[string]string{}

	err := formValidator.Struct(form)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs
	}
	for _, fe := range validationErrors {
		errs[fe.Field()] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return "This field is required"
	default:
		if msg, ok := formatMessages[fe.Tag()]; ok {
			return msg
		}
		return "Invalid value"
	}
}
