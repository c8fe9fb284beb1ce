package availability

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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	RedisRepository        contracts.RedisRepository
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		instance := &availabilityUsecase{
			AvailabilityRepository: availabilityRepository,
			RedisRepository:        redisRepository,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		availabilityUsecaseInstance = instance
	})
	return availabilityUsecaseInstance
}

// GetDailyAvailability reconstructs the bookable view for a (doctor, date)
// pair. The result is advisory: by the time a claim is submitted another
// actor may have taken the same token, and the booking coordinator
// re-validates against live state.
func (uc *availabilityUsecase) GetDailyAvailability(ctx context.Context, doctorID, date string) ([]responses.SlotAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetDailyAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	if cached, ok := uc.readCachedAvailability(ctx, doctorID, date); ok {
		uc.Log.Info("availabilityUsecase.GetDailyAvailability served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.String(constvars.LoggingDateKey, date),
		)
		return cached, nil
	}

	dayOfWeek, err := utils.DayOfWeek(date)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetDailyAvailability error resolving day of week",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseTime(err)
	}

	availability, err := uc.AvailabilityRepository.FindByDoctorAndDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetDailyAvailability error fetching availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// A doctor with no configured or deactivated availability is a normal,
	// displayable state, not an error.
	response := make([]responses.SlotAvailability, 0)
	if availability == nil || !availability.IsActive {
		uc.Log.Info("availabilityUsecase.GetDailyAvailability doctor not available that day",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Int(constvars.LoggingDayOfWeekKey, dayOfWeek),
		)
		return response, nil
	}

	for i := range availability.Slots {
		slot := &availability.Slots[i]
		capacity := tokens.SlotCapacity(slot, uc.InternalConfig.App.TokensPerHour)
		response = append(response, responses.SlotAvailability{
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			Capacity:        capacity,
			AvailableTokens: tokens.AvailableTokens(capacity, slot.ClaimedTokens),
		})
	}

	uc.writeCachedAvailability(ctx, doctorID, date, response)

	uc.Log.Info("availabilityUsecase.GetDailyAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	return response, nil
}

// InvalidateCachedAvailability drops the cached view after a successful
// claim. Failures only shorten the cache benefit, they never affect the
// booking itself.
func (uc *availabilityUsecase) InvalidateCachedAvailability(ctx context.Context, doctorID, date string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.AvailabilityCacheKeyFormat, doctorID, date)

	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("availabilityUsecase.InvalidateCachedAvailability error deleting cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *availabilityUsecase) readCachedAvailability(ctx context.Context, doctorID, date string) ([]responses.SlotAvailability, bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.AvailabilityCacheKeyFormat, doctorID, date)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("availabilityUsecase.readCachedAvailability error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
		return nil, false
	}
	if cached == "" {
		return nil, false
	}

	var response []responses.SlotAvailability
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		uc.Log.Warn("availabilityUsecase.readCachedAvailability error unmarshalling cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
		return nil, false
	}
	return response, true
}

func (uc *availabilityUsecase) writeCachedAvailability(ctx context.Context, doctorID, date string, view []responses.SlotAvailability) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.AvailabilityCacheKeyFormat, doctorID, date)
	ttl := time.Duration(uc.InternalConfig.App.AvailabilityCacheTTLInSeconds) * time.Second

	if err := uc.RedisRepository.Set(ctx, cacheKey, view, ttl); err != nil {
		uc.Log.Warn("availabilityUsecase.writeCachedAvailability error writing cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}
