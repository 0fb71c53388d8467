package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation with the quiz domain rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate runs struct-tag validation and returns a flattened error.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func (v *Validator) registerDomainRules() {
	// question_text: non-blank after trimming
	_ = v.validate.RegisterValidation("question_text", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// points_range: question point values stay in a sane band
	_ = v.validate.RegisterValidation("points_range", func(fl validator.FieldLevel) bool {
		p := fl.Field().Int()
		return p >= 1 && p <= 100
	})

	// order_num: question numbers double as ids, so they must be positive
	_ = v.validate.RegisterValidation("order_num", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() >= 1
	})
}
