package utils

import (
	"time"
	"tokenbook-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("iso_date", validateISODate)
	validate.RegisterValidation("wall_clock", validateWallClock)
	validate.RegisterValidation("appointment_type", validateAppointmentType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.DateLayout, fl.Field().String())
	return err == nil
}

func validateWallClock(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.WallClockLayout, fl.Field().String())
	return err == nil
}

func validateAppointmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "consultation" || value == "checkup" || value == "follow-up"
}
