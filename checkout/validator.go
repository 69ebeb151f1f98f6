package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/junaidrashid-git/biryani-house/models"
)

// ContactForm is the raw checkout form as typed by the customer.
type ContactForm struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Address       string `json:"address" validate:"required,min=10,max=500"`
	Phone         string `json:"phone" validate:"required,inphone"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash-on-delivery online cod"`
}

// Validator turns a raw form into ContactInfo or a field -> message map.
type Validator interface {
	Validate(form ContactForm) (models.ContactInfo, map[string]string)
}

var phonePattern = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name must be at least 2 characters",
		"min":      "Name must be at least 2 characters",
		"max":      "Name must be less than 100 characters",
	},
	"address": {
		"required": "Please provide a complete delivery address",
		"min":      "Please provide a complete delivery address",
		"max":      "Address must be less than 500 characters",
	},
	"phone": {
		"required": "Please enter a valid Indian phone number",
		"inphone":  "Please enter a valid Indian phone number",
	},
	"payment_method": {
		"required": "Please choose cash on delivery or online payment",
		"oneof":    "Please choose cash on delivery or online payment",
	},
}

type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &ContactValidator{validate: v}
}

func (cv *ContactValidator) Validate(form ContactForm) (models.ContactInfo, map[string]string) {
	form.Name = strings.TrimSpace(form.Name)
	form.Address = strings.TrimSpace(form.Address)
	form.Phone = strings.TrimSpace(form.Phone)
	form.PaymentMethod = strings.TrimSpace(form.PaymentMethod)

	if err := cv.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.ContactInfo{}, map[string]string{"form": err.Error()}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			if _, done := fields[fe.Field()]; done {
				continue
			}
			msg, ok := fieldMessages[fe.Field()][fe.Tag()]
			if !ok {
				msg = "Invalid value"
			}
			fields[fe.Field()] = msg
		}
		return models.ContactInfo{}, fields
	}

	method := models.PaymentMethod(form.PaymentMethod)
	if form.PaymentMethod == "cod" {
		method = models.PaymentCashOnDelivery
	}
	return models.ContactInfo{
		Name:            form.Name,
		DeliveryAddress: form.Address,
		Phone:           form.Phone,
		PaymentMethod:   method,
	}, nil
}
