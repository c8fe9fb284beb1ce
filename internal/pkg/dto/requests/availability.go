package requests

type AvailabilityQuery struct {
	DoctorID string `validate:"required"`
	Date     string `validate:"required,iso_date"`
}
