package tokens

import (
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/utils"
)

// Capacity derives the total number of bookable tokens a slot offers from its
// duration and token rate. A partial final token interval is dropped, never
// rounded up. Inverted or unparseable windows offer nothing.
func Capacity(startTime, endTime string, tokensPerHour int) int {
	if tokensPerHour <= 0 {
		return 0
	}
	startMinute, err := utils.ParseWallClock(startTime)
	if err != nil {
		return 0
	}
	endMinute, err := utils.ParseWallClock(endTime)
	if err != nil {
		return 0
	}
	if endMinute <= startMinute {
		return 0
	}
	return (endMinute - startMinute) * tokensPerHour / 60
}

// SlotCapacity is Capacity applied to a slot, falling back to the given
// default rate when the slot carries none.
func SlotCapacity(slot *models.Slot, defaultTokensPerHour int) int {
	rate := slot.TokensPerHour
	if rate <= 0 {
		rate = defaultTokensPerHour
	}
	return Capacity(slot.StartTime, slot.EndTime, rate)
}

// AvailableTokens returns the ascending token numbers in [1..capacity] not
// present in claimed. Claimed values outside the range are ignored.
func AvailableTokens(capacity int, claimed []int) []int {
	claimedSet := make(map[int]struct{}, len(claimed))
	for _, token := range claimed {
		claimedSet[token] = struct{}{}
	}

	available := make([]int, 0, capacity)
	for token := 1; token <= capacity; token++ {
		if _, ok := claimedSet[token]; !ok {
			available = append(available, token)
		}
	}
	return available
}
