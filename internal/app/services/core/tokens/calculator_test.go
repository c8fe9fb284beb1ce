package tokens

import (
	"testing"
	"tokenbook-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	t.Run("full hour at rate 10", func(t *testing.T) {
		assert.Equal(t, 10, Capacity("09:00", "10:00", 10))
	})

	t.Run("partial token interval is truncated", func(t *testing.T) {
		// 0.25h * 10/h = 2.5, floored to 2
		assert.Equal(t, 2, Capacity("09:00", "09:15", 10))
	})

	t.Run("multi hour window", func(t *testing.T) {
		assert.Equal(t, 35, Capacity("09:00", "12:30", 10))
	})

	t.Run("end equal to start offers nothing", func(t *testing.T) {
		assert.Equal(t, 0, Capacity("09:00", "09:00", 10))
	})

	t.Run("inverted window offers nothing", func(t *testing.T) {
		assert.Equal(t, 0, Capacity("10:00", "09:00", 10))
	})

	t.Run("unparseable time offers nothing", func(t *testing.T) {
		assert.Equal(t, 0, Capacity("9am", "10:00", 10))
		assert.Equal(t, 0, Capacity("09:00", "26:00", 10))
	})

	t.Run("non-positive rate offers nothing", func(t *testing.T) {
		assert.Equal(t, 0, Capacity("09:00", "10:00", 0))
	})
}

func TestSlotCapacity(t *testing.T) {
	t.Run("uses the slot rate when present", func(t *testing.T) {
		slot := &models.Slot{StartTime: "09:00", EndTime: "10:00", TokensPerHour: 6}
		assert.Equal(t, 6, SlotCapacity(slot, 10))
	})

	t.Run("falls back to the default rate", func(t *testing.T) {
		slot := &models.Slot{StartTime: "09:00", EndTime: "10:00"}
		assert.Equal(t, 10, SlotCapacity(slot, 10))
	})
}

func TestAvailableTokens(t *testing.T) {
	t.Run("all tokens initially available", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, AvailableTokens(10, nil))
	})

	t.Run("claimed tokens are excluded", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 8, 9, 10}, AvailableTokens(10, []int{7}))
	})

	t.Run("result is ascending regardless of claim order", func(t *testing.T) {
		assert.Equal(t, []int{2, 4}, AvailableTokens(5, []int{5, 1, 3}))
	})

	t.Run("claims outside the range are ignored", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, AvailableTokens(2, []int{11, -1}))
	})

	t.Run("zero capacity yields empty sequence", func(t *testing.T) {
		assert.Empty(t, AvailableTokens(0, nil))
	})

	t.Run("available set stays disjoint from claimed and within range", func(t *testing.T) {
		claimed := []int{2, 5, 9}
		available := AvailableTokens(10, claimed)
		for _, token := range available {
			assert.GreaterOrEqual(t, token, 1)
			assert.LessOrEqual(t, token, 10)
			assert.NotContains(t, claimed, token)
		}
		assert.Len(t, available, 10-len(claimed))
	})
}
