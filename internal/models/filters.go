package models

import "time"

// TimeInterval is a fixed time-of-day bucket used by the time filters.
type TimeInterval string

const (
	IntervalMorning   TimeInterval = "morning"   // [06:00, 12:00)
	IntervalAfternoon TimeInterval = "afternoon" // [12:00, 18:00)
	IntervalEvening   TimeInterval = "evening"   // [18:00, 24:00)
	IntervalNight     TimeInterval = "night"     // [00:00, 06:00)
)

// IntervalForTime buckets a timestamp by its local hour of day.
func IntervalForTime(t time.Time) TimeInterval {
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return IntervalMorning
	case hour >= 12 && hour < 18:
		return IntervalAfternoon
	case hour >= 18:
		return IntervalEvening
	default:
		return IntervalNight
	}
}

// FilterState holds the active result filters. Empty sets mean "no filter".
type FilterState struct {
	Airlines          map[string]bool       `json:"airlines,omitempty"`
	DepartureAirports map[string]bool       `json:"departure_airports,omitempty"`
	ArrivalAirports   map[string]bool       `json:"arrival_airports,omitempty"`
	DepartureTime     map[TimeInterval]bool `json:"departure_time,omitempty"`
	ArrivalTime       map[TimeInterval]bool `json:"arrival_time,omitempty"`
	DirectOnly        bool                  `json:"direct_only"`
	FlightNumber      string                `json:"flight_number,omitempty"`
}

// NewFilterState returns an empty filter state with all sets allocated.
func NewFilterState() FilterState {
	return FilterState{
		Airlines:          make(map[string]bool),
		DepartureAirports: make(map[string]bool),
		ArrivalAirports:   make(map[string]bool),
		DepartureTime:     make(map[TimeInterval]bool),
		ArrivalTime:       make(map[TimeInterval]bool),
	}
}

// IsEmpty reports whether no filter is active at all.
func (f FilterState) IsEmpty() bool {
	return len(f.Airlines) == 0 &&
		len(f.DepartureAirports) == 0 &&
		len(f.ArrivalAirports) == 0 &&
		len(f.DepartureTime) == 0 &&
		len(f.ArrivalTime) == 0 &&
		!f.DirectOnly &&
		f.FlightNumber == ""
}

// SortType selects the total order applied to visible flights.
type SortType string

const (
	SortPrice         SortType = "price"
	SortFlightTime    SortType = "flightTime"
	SortDepartureTime SortType = "departureTime"
	SortArrivalTime   SortType = "arrivalTime"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is the active sort type and direction.
type SortSpec struct {
	Type      SortType      `json:"type"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort matches the initial results view: cheapest first.
func DefaultSort() SortSpec {
	return SortSpec{Type: SortPrice, Direction: SortAsc}
}
