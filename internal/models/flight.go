package models

import (
	"time"

	"github.com/NemoTravel/results/internal/money"
)

const (
	// UIDLegGlue joins per-leg flight uids into a composite itinerary uid,
	// e.g. "AY-720_1pc|AY-1071_1pc".
	UIDLegGlue = "|"

	// UIDSegmentGlue joins segment parts inside a single flight uid.
	UIDSegmentGlue = "_"
)

type Airline struct {
	IATA string `json:"IATA"`
	Name string `json:"name"`
}

type Airport struct {
	IATA string `json:"IATA"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Segment is one physically flown hop within a flight. Immutable once
// produced by the response parser.
type Segment struct {
	DepAirport   Airport   `json:"dep_airport"`
	ArrAirport   Airport   `json:"arr_airport"`
	DepTime      time.Time `json:"dep_time"`
	ArrTime      time.Time `json:"arr_time"`
	Airline      Airline   `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	Aircraft     string    `json:"aircraft,omitempty"`

	// Minutes in the air and minutes of waiting before the next segment.
	FlightTime  int `json:"flight_time_minutes"`
	WaitingTime int `json:"waiting_time_minutes,omitempty"`
}

// Flight is an orderable itinerary candidate. A flight with more than one
// segment group covers more than one leg (a round-trip fare).
type Flight struct {
	ID            int         `json:"id"`
	UID           string      `json:"uid"`
	Segments      []Segment   `json:"segments"`
	SegmentGroups [][]Segment `json:"segment_groups,omitempty"`
	TotalPrice    money.Money `json:"total_price"`
	IsRT          bool        `json:"is_rt"`
}

// FirstSegment returns the first segment, or a zero Segment for a flight
// without segments.
func (f Flight) FirstSegment() Segment {
	if len(f.Segments) == 0 {
		return Segment{}
	}
	return f.Segments[0]
}

// LastSegment returns the final segment, or a zero Segment for a flight
// without segments.
func (f Flight) LastSegment() Segment {
	if len(f.Segments) == 0 {
		return Segment{}
	}
	return f.Segments[len(f.Segments)-1]
}

// IsDirect reports whether the flight consists of a single segment.
func (f Flight) IsDirect() bool {
	return len(f.Segments) == 1
}

// TotalFlightTime is the full travel time in minutes, transfers included.
func (f Flight) TotalFlightTime() int {
	total := 0
	for _, segment := range f.Segments {
		total += segment.FlightTime + segment.WaitingTime
	}
	return total
}

// Leg is one directional portion of the overall search. Ids are 0-based and
// ordering is by numeric id.
type Leg struct {
	ID        int    `json:"id"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Date      string `json:"date"`
}
