package responses

// SlotAvailability is the bookable view of one slot for a concrete date. The
// token list is advisory: the booking path re-validates against live state.
type SlotAvailability struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Capacity        int    `json:"capacity"`
	AvailableTokens []int  `json:"availableTokens"`
}
