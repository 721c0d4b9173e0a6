package model

import "strings"

// FulfillmentStatus is a delivery stage label in either the current or the legacy vocabulary.
type FulfillmentStatus string

const (
	StatusPlaced    FulfillmentStatus = "placed"
	StatusGathering FulfillmentStatus = "gathering"
	StatusPickedUp  FulfillmentStatus = "picked_up"
	StatusOnTheWay  FulfillmentStatus = "on_the_way"
	StatusDelivered FulfillmentStatus = "delivered"
	StatusCancelled FulfillmentStatus = "cancelled"
)

const (
	LegacyStatusPlaced    FulfillmentStatus = "Order Placed"
	LegacyStatusGathering FulfillmentStatus = "Gathering Items"
	LegacyStatusPickedUp  FulfillmentStatus = "Picked Up"
	LegacyStatusOnTheWay  FulfillmentStatus = "On The Way"
	LegacyStatusDelivered FulfillmentStatus = "Delivered"
)

// InitialStatus is the state every order is created in.
const InitialStatus = StatusPlaced

// InitialProgress is reported for the initial state and for any unknown label.
const InitialProgress = 20

var progressByStatus = map[FulfillmentStatus]int{
	StatusPlaced:          20,
	LegacyStatusPlaced:    20,
	StatusGathering:       40,
	LegacyStatusGathering: 40,
	StatusPickedUp:        60,
	LegacyStatusPickedUp:  60,
	StatusOnTheWay:        80,
	LegacyStatusOnTheWay:  80,
	StatusDelivered:       100,
	LegacyStatusDelivered: 100,
}

// Progress maps a fulfillment status onto the customer-visible percentage.
// Unrecognized labels map to InitialProgress.
func Progress(status FulfillmentStatus) int {
	if p, ok := progressByStatus[status]; ok {
		return p
	}
	return InitialProgress
}

// StatusClass is a coarse grouping of fulfillment statuses used for list filtering.
// The zero value matches every order.
type StatusClass string

const (
	StatusClassAny       StatusClass = ""
	StatusClassActive    StatusClass = "active"
	StatusClassCompleted StatusClass = "completed"
	StatusClassCancelled StatusClass = "cancelled"
)

var statusesByClass = map[StatusClass][]FulfillmentStatus{
	StatusClassActive: {
		StatusPlaced, StatusGathering, StatusPickedUp, StatusOnTheWay,
		LegacyStatusPlaced, LegacyStatusGathering, LegacyStatusPickedUp, LegacyStatusOnTheWay,
	},
	StatusClassCompleted: {StatusDelivered, LegacyStatusDelivered},
	StatusClassCancelled: {StatusCancelled},
}

// ParseStatusClass reads a listing filter. Unknown values yield StatusClassAny.
func ParseStatusClass(raw string) StatusClass {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return StatusClassActive
	case "completed":
		return StatusClassCompleted
	case "cancel", "cancelled", "canceled":
		return StatusClassCancelled
	default:
		return StatusClassAny
	}
}

// Labels returns the lower-cased labels of both vocabularies that belong to the class.
func (c StatusClass) Labels() []string {
	statuses := statusesByClass[c]
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, strings.ToLower(string(s)))
	}
	return labels
}

// Contains reports whether status belongs to the class, ignoring case.
func (c StatusClass) Contains(status FulfillmentStatus) bool {
	if c == StatusClassAny {
		return true
	}
	for _, s := range statusesByClass[c] {
		if strings.EqualFold(string(s), string(status)) {
			return true
		}
	}
	return false
}
