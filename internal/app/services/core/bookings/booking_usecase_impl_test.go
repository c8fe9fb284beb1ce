package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
	"tokenbook-service/internal/app/config"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memAvailabilityRepository mirrors the conditional-update semantics of the
// Mongo implementation: a claim succeeds only when the token is not yet in
// the slot's claimed set, under one mutex per repository.
type memAvailabilityRepository struct {
	mu           sync.Mutex
	availability *models.DoctorAvailability
	claimErr     error
}

func (r *memAvailabilityRepository) FindByDoctorAndDay(_ context.Context, doctorID string, dayOfWeek int) (*models.DoctorAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.availability == nil || r.availability.DoctorID != doctorID || r.availability.DayOfWeek != dayOfWeek {
		return nil, nil
	}
	copied := *r.availability
	copied.Slots = make([]models.Slot, len(r.availability.Slots))
	for i, slot := range r.availability.Slots {
		copied.Slots[i] = slot
		copied.Slots[i].ClaimedTokens = append([]int(nil), slot.ClaimedTokens...)
	}
	return &copied, nil
}

func (r *memAvailabilityRepository) ClaimToken(_ context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimErr != nil {
		return false, r.claimErr
	}
	slot := r.findSlot(doctorID, dayOfWeek, slotStart, slotEnd)
	if slot == nil {
		return false, nil
	}
	for _, claimed := range slot.ClaimedTokens {
		if claimed == tokenNumber {
			return false, nil
		}
	}
	slot.ClaimedTokens = append(slot.ClaimedTokens, tokenNumber)
	return true, nil
}

func (r *memAvailabilityRepository) ReleaseToken(_ context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.findSlot(doctorID, dayOfWeek, slotStart, slotEnd)
	if slot == nil {
		return nil
	}
	kept := slot.ClaimedTokens[:0]
	for _, claimed := range slot.ClaimedTokens {
		if claimed != tokenNumber {
			kept = append(kept, claimed)
		}
	}
	slot.ClaimedTokens = kept
	return nil
}

func (r *memAvailabilityRepository) findSlot(doctorID string, dayOfWeek int, slotStart, slotEnd string) *models.Slot {
	if r.availability == nil || r.availability.DoctorID != doctorID || r.availability.DayOfWeek != dayOfWeek {
		return nil
	}
	for i := range r.availability.Slots {
		if r.availability.Slots[i].StartTime == slotStart && r.availability.Slots[i].EndTime == slotEnd {
			return &r.availability.Slots[i]
		}
	}
	return nil
}

func (r *memAvailabilityRepository) claimedTokens(slotStart, slotEnd string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, slot := range r.availability.Slots {
		if slot.StartTime == slotStart && slot.EndTime == slotEnd {
			tokens := append([]int(nil), slot.ClaimedTokens...)
			sort.Ints(tokens)
			return tokens
		}
	}
	return nil
}

type memAppointmentRepository struct {
	mu           sync.Mutex
	appointments []*models.Appointment
}

func (r *memAppointmentRepository) CreateAppointment(_ context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	appointment.ID = id
	stored := *appointment
	r.appointments = append(r.appointments, &stored)
	return id.Hex(), nil
}

func (r *memAppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.ID.Hex() == appointmentID {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepository) FindActiveByClaim(_ context.Context, doctorID, date, slotStart string, tokenNumber int) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.DoctorID == doctorID &&
			appointment.Date == date &&
			appointment.SlotStart == slotStart &&
			appointment.TokenNumber == tokenNumber &&
			appointment.Status != models.AppointmentStatusCancelled {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepository) UpdateStatus(_ context.Context, appointmentID string, status models.AppointmentStatus, doctorNotes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.ID.Hex() == appointmentID {
			appointment.Status = status
			appointment.DoctorNotes = doctorNotes
			return nil
		}
	}
	return exceptions.ErrAppointmentNotFound(nil)
}


func (r *memAppointmentRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

// memProjection persists through the repository like the real projection and
// can be told to fail to exercise the rollback path.
type memProjection struct {
	repository *memAppointmentRepository
	failErr    error
}

func (p *memProjection) Project(ctx context.Context, input contracts.ProjectAppointmentInput) (*models.Appointment, error) {
	if p.failErr != nil {
		return nil, p.failErr
	}
	appointment := &models.Appointment{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		Date:        input.Date,
		SlotStart:   input.SlotStart,
		SlotEnd:     input.SlotEnd,
		TokenNumber: input.TokenNumber,
		Type:        input.Type,
		Status:      models.AppointmentStatusScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := p.repository.CreateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// memLocker is a process-local SETNX equivalent.
type memLocker struct {
	mu    sync.Mutex
	locks map[string]string
}

func newMemLocker() *memLocker {
	return &memLocker{locks: make(map[string]string)}
}

func (l *memLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false, "", nil
	}
	value := uuid.New().String()
	l.locks[key] = value
	return true, value, nil
}

func (l *memLocker) Unlock(_ context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == lockValue {
		delete(l.locks, key)
	}
	return nil
}

func newTestAvailability() *models.DoctorAvailability {
	return &models.DoctorAvailability{
		ID:        primitive.NewObjectID(),
		DoctorID:  "doc-100",
		DayOfWeek: 1,
		IsActive:  true,
		Slots: []models.Slot{
			{StartTime: "09:00", EndTime: "10:00", TokensPerHour: 10},
			{StartTime: "10:00", EndTime: "11:00", TokensPerHour: 10},
		},
	}
}

func newTestBookingUsecase(availabilityRepo *memAvailabilityRepository, appointmentRepo *memAppointmentRepository, projection contracts.AppointmentProjection) *bookingUsecase {
	return &bookingUsecase{
		AvailabilityRepository: availabilityRepo,
		AppointmentRepository:  appointmentRepo,
		AppointmentProjection:  projection,
		LockService:            newMemLocker(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				TokensPerHour:               10,
				SlotLockExpirationInSeconds: 5,
			},
		},
		Log: zap.NewNop(),
	}
}

func newClaimInput(tokenNumber int) contracts.ClaimInput {
	return contracts.ClaimInput{
		DoctorID:    "doc-100",
		Date:        "2026-09-07",
		SlotStart:   "09:00",
		SlotEnd:     "10:00",
		TokenNumber: tokenNumber,
		PatientID:   "pat-1",
		Type:        models.AppointmentTypeConsultation,
	}
}

func TestBookingUsecase_Claim_Success(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	appointment, err := uc.Claim(context.Background(), newClaimInput(7))
	assert.NoError(t, err)
	assert.NotNil(t, appointment)
	assert.Equal(t, 7, appointment.TokenNumber)
	assert.Equal(t, string(models.AppointmentStatusScheduled), appointment.Status)
	assert.Equal(t, []int{7}, availabilityRepo.claimedTokens("09:00", "10:00"))
	assert.Equal(t, 1, appointmentRepo.count())
}

func TestBookingUsecase_Claim_SlotNotFound(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	t.Run("unknown doctor", func(t *testing.T) {
		input := newClaimInput(1)
		input.DoctorID = "doc-999"
		_, err := uc.Claim(context.Background(), input)
		assertCustomErrorStatus(t, err, 404)
	})

	t.Run("no availability on that weekday", func(t *testing.T) {
		input := newClaimInput(1)
		input.Date = "2026-09-08"
		_, err := uc.Claim(context.Background(), input)
		assertCustomErrorStatus(t, err, 404)
	})

	t.Run("slot boundaries do not match", func(t *testing.T) {
		input := newClaimInput(1)
		input.SlotStart = "09:30"
		_, err := uc.Claim(context.Background(), input)
		assertCustomErrorStatus(t, err, 404)
	})

	t.Run("inactive availability", func(t *testing.T) {
		inactive := newTestAvailability()
		inactive.IsActive = false
		inactiveRepo := &memAvailabilityRepository{availability: inactive}
		inactiveUC := newTestBookingUsecase(inactiveRepo, appointmentRepo, &memProjection{repository: appointmentRepo})
		_, err := inactiveUC.Claim(context.Background(), newClaimInput(1))
		assertCustomErrorStatus(t, err, 404)
	})
}

func TestBookingUsecase_Claim_TokenOutOfRange(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	for _, tokenNumber := range []int{0, -3, 11, 100} {
		_, err := uc.Claim(context.Background(), newClaimInput(tokenNumber))
		assertCustomErrorStatus(t, err, 422)
	}
	assert.Empty(t, availabilityRepo.claimedTokens("09:00", "10:00"))
}

func TestBookingUsecase_Claim_TokenAlreadyClaimed(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	_, err := uc.Claim(context.Background(), newClaimInput(4))
	assert.NoError(t, err)

	other := newClaimInput(4)
	other.PatientID = "pat-2"
	_, err = uc.Claim(context.Background(), other)
	assertCustomErrorStatus(t, err, 409)

	assert.Equal(t, 1, appointmentRepo.count())
	assert.Equal(t, []int{4}, availabilityRepo.claimedTokens("09:00", "10:00"))
}

func TestBookingUsecase_Claim_IdempotentResubmit(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	input := newClaimInput(5)
	_, err := uc.Claim(context.Background(), input)
	assert.NoError(t, err)

	// Resubmitting the identical claim must not create a second appointment.
	_, err = uc.Claim(context.Background(), input)
	assertCustomErrorStatus(t, err, 409)
	assert.Equal(t, 1, appointmentRepo.count())
}

func TestBookingUsecase_Claim_ProjectionFailureRollsBackToken(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	projection := &memProjection{repository: appointmentRepo, failErr: errors.New("insert failed")}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, projection)

	_, err := uc.Claim(context.Background(), newClaimInput(3))
	assert.Error(t, err)
	assert.Empty(t, availabilityRepo.claimedTokens("09:00", "10:00"))
	assert.Equal(t, 0, appointmentRepo.count())

	// The token is claimable again once the projection recovers.
	projection.failErr = nil
	appointment, err := uc.Claim(context.Background(), newClaimInput(3))
	assert.NoError(t, err)
	assert.Equal(t, 3, appointment.TokenNumber)
}

func TestBookingUsecase_Claim_PersistenceFailure(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{
		availability: newTestAvailability(),
		claimErr:     errors.New("connection reset"),
	}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	_, err := uc.Claim(context.Background(), newClaimInput(1))
	assertCustomErrorStatus(t, err, 503)
}

func TestBookingUsecase_Claim_ConcurrentDistinctTokens(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := newClaimInput(i + 1)
			input.PatientID = fmt.Sprintf("pat-%d", i+1)
			_, errs[i] = uc.Claim(context.Background(), input)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "token %d", i+1)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, availabilityRepo.claimedTokens("09:00", "10:00"))
	assert.Equal(t, 10, appointmentRepo.count())
}

func TestBookingUsecase_Claim_ConcurrentSameTokenSingleWinner(t *testing.T) {
	availabilityRepo := &memAvailabilityRepository{availability: newTestAvailability()}
	appointmentRepo := &memAppointmentRepository{}
	uc := newTestBookingUsecase(availabilityRepo, appointmentRepo, &memProjection{repository: appointmentRepo})

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := newClaimInput(6)
			input.PatientID = fmt.Sprintf("pat-%d", i+1)
			_, errs[i] = uc.Claim(context.Background(), input)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assertCustomErrorStatus(t, err, 409)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, appointmentRepo.count())
	assert.Equal(t, []int{6}, availabilityRepo.claimedTokens("09:00", "10:00"))
}

func assertCustomErrorStatus(t *testing.T, err error, statusCode int) {
	t.Helper()
	assert.Error(t, err)
	var customErr *exceptions.CustomError
	if assert.ErrorAs(t, err, &customErr) {
		assert.Equal(t, statusCode, customErr.StatusCode)
	}
}
