package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Slot is a contiguous wall-clock window on a weekday during which a doctor
// accepts appointments. ClaimedTokens is owned by the booking coordinator and
// only ever grows.
type Slot struct {
	StartTime     string `bson:"start_time" json:"start_time"`
	EndTime       string `bson:"end_time" json:"end_time"`
	TokensPerHour int    `bson:"tokens_per_hour" json:"tokens_per_hour"`
	ClaimedTokens []int  `bson:"claimed_tokens" json:"claimed_tokens"`
}

// DoctorAvailability holds the ordered, non-overlapping slots a doctor offers
// on one day of the week. Written by staff management, read-only here except
// for token claims.
type DoctorAvailability struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID  string             `bson:"doctor_id" json:"doctor_id"`
	DayOfWeek int                `bson:"day_of_week" json:"day_of_week"`
	Slots     []Slot             `bson:"slots" json:"slots"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
}

// FindSlot returns the slot matching the given window, or nil.
func (a *DoctorAvailability) FindSlot(startTime, endTime string) *Slot {
	for i := range a.Slots {
		if a.Slots[i].StartTime == startTime && a.Slots[i].EndTime == endTime {
			return &a.Slots[i]
		}
	}
	return nil
}
