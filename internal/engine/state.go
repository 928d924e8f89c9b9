package engine

// balanceState maps event id to the remaining principal carried forward
// between months of a single projection. It is created per Project call and
// discarded when the call returns; nothing is shared across calls or plans.
type balanceState map[int64]float64

// balance returns the tracked principal for an event, falling back to the
// given initial value when the event has not been seen this projection (a
// loan whose start date precedes the projection anchor).
func (s balanceState) balance(eventID int64, initial float64) float64 {
	if b, ok := s[eventID]; ok {
		return b
	}
	return initial
}

// set records a new principal, floored at zero
func (s balanceState) set(eventID int64, principal float64) {
	if principal < 0 {
		principal = 0
	}
	s[eventID] = principal
}
