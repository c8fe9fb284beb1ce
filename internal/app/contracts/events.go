package contracts

import (
	"context"
	"tokenbook-service/internal/app/models"
)

// EventPublisher hands appointment-created events to the notification and
// billing collaborators. Delivery failure never rolls back a booking.
type EventPublisher interface {
	PublishAppointmentCreated(ctx context.Context, appointment *models.Appointment) error
}
