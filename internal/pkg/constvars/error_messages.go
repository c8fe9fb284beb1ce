package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"numeric":          "must be a number",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"iso_date":         "must be a valid date in YYYY-MM-DD format",
	"wall_clock":       "must be a valid time in HH:MM format",
	"appointment_type": "must be one of 'consultation', 'checkup' or 'follow-up'",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"

	ErrClientSlotNotFound        = "the requested slot does not exist for this doctor on that day"
	ErrClientTokenOutOfRange     = "the requested token number is not valid for this slot, please refresh availability"
	ErrClientTokenAlreadyClaimed = "this token has already been booked, please refresh availability and pick another token"
	ErrClientBookingUnavailable  = "booking is temporarily unavailable, please try again"
	ErrClientDateInPast          = "the requested date is in the past"
	ErrClientAppointmentNotFound = "appointment not found"
	ErrClientInvalidTransition   = "the requested appointment status change is not allowed"
)

// Error messages for developers
const (
	ErrDevInvalidInput      = "invalid input"
	ErrDevCannotParseJSON   = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime   = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat     = "invalid %s format"
	ErrDevValidationFailed  = "validation failed"

	ErrDevUnauthorized              = "unauthorized access"
	ErrDevAuthTokenMissing          = "authorization token missing"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevPatientIdentityMissing    = "patient identity missing from session"

	ErrDevSlotNotFound         = "slot not found for doctor %s on day-of-week %d"
	ErrDevTokenOutOfRange      = "token %d outside [1..%d] for slot %s-%s"
	ErrDevTokenAlreadyClaimed  = "token %d already claimed for slot %s-%s"
	ErrDevAppointmentNotFound  = "appointment not found"
	ErrDevInvalidTransition    = "invalid appointment status transition %s -> %s"
	ErrDevProjectionRolledBack = "appointment projection failed, token claim rolled back"
	ErrDevSlotLockNotAcquired  = "could not acquire slot lock within the retry budget"

	// Mongo
	ErrDevDBFailedToFindDocument   = "failed to find document in database"
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument = "failed to update document in database"
	ErrDevDBFailedToDeleteDocument = "failed to delete document in database"

	// Redis
	ErrDevRedisGetNoData  = "failed to get data with key %s from redis"
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)
