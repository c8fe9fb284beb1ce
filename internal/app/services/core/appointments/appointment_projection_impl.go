package appointments

import (
	"context"
	"sync"
	"time"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/exceptions"
	"tokenbook-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type appointmentProjection struct {
	AppointmentRepository contracts.AppointmentRepository
	AvailabilityUsecase   contracts.AvailabilityUsecase
	EventPublisher        contracts.EventPublisher
	Log                   *zap.Logger
}

var (
	appointmentProjectionInstance contracts.AppointmentProjection
	onceAppointmentProjection     sync.Once
)

func NewAppointmentProjection(
	appointmentRepository contracts.AppointmentRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.AppointmentProjection {
	onceAppointmentProjection.Do(func() {
		instance := &appointmentProjection{
			AppointmentRepository: appointmentRepository,
			AvailabilityUsecase:   availabilityUsecase,
			EventPublisher:        eventPublisher,
			Log:                   logger,
		}
		appointmentProjectionInstance = instance
	})
	return appointmentProjectionInstance
}

// Project materializes a successful token claim into an appointment record.
// A persistence error here is returned to the booking coordinator, which
// rolls the claim back; event publish and cache invalidation failures are
// logged and tolerated.
func (p *appointmentProjection) Project(ctx context.Context, input contracts.ProjectAppointmentInput) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("appointmentProjection.Project called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, input.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, input.PatientID),
		zap.String(constvars.LoggingDateKey, input.Date),
		zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
	)

	datetime, err := utils.CombineDateAndTime(input.Date, input.SlotStart)
	if err != nil {
		p.Log.Error("appointmentProjection.Project error combining date and slot start",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseTime(err)
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		Datetime:    datetime,
		Date:        input.Date,
		SlotStart:   input.SlotStart,
		SlotEnd:     input.SlotEnd,
		TokenNumber: input.TokenNumber,
		Type:        input.Type,
		Status:      models.AppointmentStatusScheduled,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	appointmentID, err := p.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		p.Log.Error("appointmentProjection.Project error persisting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err == nil {
		appointment.ID = objectID
	}

	if err := p.EventPublisher.PublishAppointmentCreated(ctx, appointment); err != nil {
		p.Log.Warn("appointmentProjection.Project error publishing appointment-created event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	p.AvailabilityUsecase.InvalidateCachedAvailability(ctx, input.DoctorID, input.Date)

	p.Log.Info("appointmentProjection.Project succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return appointment, nil
}
