package contracts

import (
	"context"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/dto/responses"
)

// BookingUsecase is the only path that may mutate a slot's claimed tokens.
type BookingUsecase interface {
	Claim(ctx context.Context, input ClaimInput) (*responses.Appointment, error)
}

type ClaimInput struct {
	DoctorID    string
	Date        string
	SlotStart   string
	SlotEnd     string
	TokenNumber int
	PatientID   string
	Type        models.AppointmentType
	Notes       string
}
