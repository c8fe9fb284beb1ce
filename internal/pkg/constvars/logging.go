package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingDataKey          = "data"
	LoggingSessionDataKey   = "session_data"
	LoggingQueryParamsKey   = "query_params"
	LoggingResponseKey      = "response"
	LoggingRequestKey       = "request"
	LoggingResponseCountKey = "response_count"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"

	LoggingDoctorIDKey      = "doctor_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingDateKey          = "date"
	LoggingDayOfWeekKey     = "day_of_week"
	LoggingSlotStartKey     = "slot_start"
	LoggingSlotEndKey       = "slot_end"
	LoggingTokenNumberKey   = "token_number"
	LoggingCapacityKey      = "capacity"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingQueueNameKey     = "queue_name"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
