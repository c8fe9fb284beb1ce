package contracts

import (
	"context"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/dto/responses"
)

// AvailabilityRepository is the durable store of DoctorAvailability records.
// ClaimToken and ReleaseToken are the atomic primitives the booking
// coordinator relies on: a conditional read-verify-add scoped to one slot.
type AvailabilityRepository interface {
	FindByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.DoctorAvailability, error)
	// ClaimToken returns false when the token is already present in the
	// slot's claimed set; true when this call added it.
	ClaimToken(ctx context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) (bool, error)
	ReleaseToken(ctx context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) error
}

type AvailabilityUsecase interface {
	GetDailyAvailability(ctx context.Context, doctorID, date string) ([]responses.SlotAvailability, error)
	InvalidateCachedAvailability(ctx context.Context, doctorID, date string)
}
