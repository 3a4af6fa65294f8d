package domain

import "strings"

// Order lifecycle statuses as stored by the upstream order systems.
const (
	StatusPending   = "Pending"
	StatusSubmitted = "Submitted"
	StatusConfirmed = "Confirmed"
	StatusPicking   = "Picking"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// StatusSet is a case-insensitive set of order statuses.
type StatusSet map[string]struct{}

// NewStatusSet builds a set from the given status labels.
func NewStatusSet(statuses ...string) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

// Contains reports whether the status is in the set.
func (s StatusSet) Contains(status string) bool {
	_, ok := s[strings.ToLower(status)]
	return ok
}

// IsDelivered reports whether a purchase order has completed delivery.
func IsDelivered(status string) bool {
	return strings.EqualFold(status, StatusDelivered)
}
