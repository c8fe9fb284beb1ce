package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"
	"tokenbook-service/internal/app/config"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/services/core/tokens"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/dto/responses"
	"tokenbook-service/internal/pkg/exceptions"
	"tokenbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	lockRetryAttempts = 50
	lockRetryInterval = 10 * time.Millisecond
)

type bookingUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	AppointmentRepository  contracts.AppointmentRepository
	AppointmentProjection  contracts.AppointmentProjection
	LockService            contracts.LockerService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	appointmentRepository contracts.AppointmentRepository,
	appointmentProjection contracts.AppointmentProjection,
	lockService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		instance := &bookingUsecase{
			AvailabilityRepository: availabilityRepository,
			AppointmentRepository:  appointmentRepository,
			AppointmentProjection:  appointmentProjection,
			LockService:            lockService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		bookingUsecaseInstance = instance
	})
	return bookingUsecaseInstance
}

// Claim is the only path that mutates a slot's claimed tokens. Claims for the
// same slot serialize on a per-slot lock; claims for different slots or
// doctors proceed independently. First writer wins: the loser of a token race
// gets TokenAlreadyClaimed and must re-query availability before retrying.
func (uc *bookingUsecase) Claim(ctx context.Context, input contracts.ClaimInput) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Claim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, input.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, input.PatientID),
		zap.String(constvars.LoggingDateKey, input.Date),
		zap.String(constvars.LoggingSlotStartKey, input.SlotStart),
		zap.String(constvars.LoggingSlotEndKey, input.SlotEnd),
		zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
	)

	dayOfWeek, err := utils.DayOfWeek(input.Date)
	if err != nil {
		uc.Log.Error("bookingUsecase.Claim error resolving day of week",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseTime(err)
	}

	availability, err := uc.AvailabilityRepository.FindByDoctorAndDay(ctx, input.DoctorID, dayOfWeek)
	if err != nil {
		uc.Log.Error("bookingUsecase.Claim error fetching availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if availability == nil || !availability.IsActive {
		uc.Log.Warn("bookingUsecase.Claim no availability for doctor on that day",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, input.DoctorID),
			zap.Int(constvars.LoggingDayOfWeekKey, dayOfWeek),
		)
		return nil, exceptions.ErrSlotNotFound(input.DoctorID, dayOfWeek)
	}

	slot := availability.FindSlot(input.SlotStart, input.SlotEnd)
	if slot == nil {
		uc.Log.Warn("bookingUsecase.Claim slot not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotStartKey, input.SlotStart),
			zap.String(constvars.LoggingSlotEndKey, input.SlotEnd),
		)
		return nil, exceptions.ErrSlotNotFound(input.DoctorID, dayOfWeek)
	}

	capacity := tokens.SlotCapacity(slot, uc.InternalConfig.App.TokensPerHour)
	if input.TokenNumber < 1 || input.TokenNumber > capacity {
		uc.Log.Warn("bookingUsecase.Claim token out of range",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
			zap.Int(constvars.LoggingCapacityKey, capacity),
		)
		return nil, exceptions.ErrTokenOutOfRange(input.TokenNumber, capacity, input.SlotStart, input.SlotEnd)
	}

	lockKey := fmt.Sprintf(constvars.SlotLockKeyFormat, input.DoctorID, input.Date, input.SlotStart)
	lockValue, err := uc.acquireSlotLock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer uc.LockService.Unlock(ctx, lockKey, lockValue)

	claimed, err := uc.AvailabilityRepository.ClaimToken(ctx, input.DoctorID, dayOfWeek, input.SlotStart, input.SlotEnd, input.TokenNumber)
	if err != nil {
		uc.Log.Error("bookingUsecase.Claim atomic claim write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPersistenceFailure(err)
	}
	if !claimed {
		uc.logExistingClaim(ctx, input)
		return nil, exceptions.ErrTokenAlreadyClaimed(input.TokenNumber, input.SlotStart, input.SlotEnd)
	}

	appointment, err := uc.AppointmentProjection.Project(ctx, contracts.ProjectAppointmentInput{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		Date:        input.Date,
		SlotStart:   input.SlotStart,
		SlotEnd:     input.SlotEnd,
		TokenNumber: input.TokenNumber,
		Type:        input.Type,
		Notes:       input.Notes,
	})
	if err != nil {
		// Claim and projection are one logical unit: compensate the durable
		// claim so the token is observably free again before the caller sees
		// the failure.
		uc.Log.Error("bookingUsecase.Claim projection failed, rolling back token claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
			zap.Error(err),
		)
		releaseErr := uc.AvailabilityRepository.ReleaseToken(ctx, input.DoctorID, dayOfWeek, input.SlotStart, input.SlotEnd, input.TokenNumber)
		if releaseErr != nil {
			uc.Log.Error("bookingUsecase.Claim compensating release failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("bookingUsecase.Claim succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
	)

	return &responses.Appointment{
		ID:          appointment.ID.Hex(),
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		Datetime:    appointment.Datetime,
		Date:        appointment.Date,
		StartTime:   appointment.SlotStart,
		EndTime:     appointment.SlotEnd,
		TokenNumber: appointment.TokenNumber,
		Type:        string(appointment.Type),
		Status:      string(appointment.Status),
		Notes:       appointment.Notes,
	}, nil
}

// acquireSlotLock serializes claims against one slot. Contending requests for
// the same slot wait by retrying; exhausting the budget is surfaced as a
// transient failure, not a token conflict.
func (uc *bookingUsecase) acquireSlotLock(ctx context.Context, lockKey string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	expiration := time.Duration(uc.InternalConfig.App.SlotLockExpirationInSeconds) * time.Second

	for attempt := 0; attempt < lockRetryAttempts; attempt++ {
		acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, expiration)
		if err != nil {
			uc.Log.Error("bookingUsecase.acquireSlotLock error acquiring lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
			return "", exceptions.ErrPersistenceFailure(err)
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-ctx.Done():
			return "", exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}

	uc.Log.Error("bookingUsecase.acquireSlotLock retry budget exhausted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, lockKey),
	)
	return "", exceptions.ErrSlotLockNotAcquired(nil)
}

// logExistingClaim cross-references the appointment already holding the
// tuple, so an idempotent resubmit by the same patient is visible in the
// logs. Either way the caller is answered with TokenAlreadyClaimed and must
// re-query availability: the same token is guaranteed unavailable.
func (uc *bookingUsecase) logExistingClaim(ctx context.Context, input contracts.ClaimInput) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	existing, err := uc.AppointmentRepository.FindActiveByClaim(ctx, input.DoctorID, input.Date, input.SlotStart, input.TokenNumber)
	if err != nil || existing == nil {
		uc.Log.Warn("bookingUsecase.Claim token already claimed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
		)
		return
	}

	if existing.PatientID == input.PatientID {
		uc.Log.Info("bookingUsecase.Claim idempotent resubmit of an existing claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, existing.ID.Hex()),
			zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
		)
		return
	}

	uc.Log.Warn("bookingUsecase.Claim token already claimed by another patient",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, existing.ID.Hex()),
		zap.Int(constvars.LoggingTokenNumberKey, input.TokenNumber),
	)
}
