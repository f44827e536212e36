package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/balkashynov/tmr/internal/models"
)

// newValidator returns a validator with the tmr-specific rules registered
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("activitytype", activityType)
	_ = validate.RegisterValidation("hhmm", timeOfDay)
	return validate
}

func activityType(fl validator.FieldLevel) bool {
	_, err := models.ParseActivityType(fl.Field().String())
	return err == nil
}

// timeOfDay accepts a zero-padded HH:MM time of day
func timeOfDay(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != len(models.TimeLayout) {
		return false
	}
	_, err := time.Parse(models.TimeLayout, value)
	return err == nil
}
