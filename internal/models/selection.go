package models

import "github.com/NemoTravel/results/internal/money"

// SelectedFlight is the display price of a candidate flight after a possible
// round-trip substitution: the price to show, whether a substitution
// happened, and the flight id actually purchased if it differs from the one
// displayed. Derived, never persisted.
type SelectedFlight struct {
	Price            money.Money `json:"price"`
	IsRT             bool        `json:"is_rt"`
	OriginalFlightID int         `json:"original_flight_id"`
	NewFlightID      int         `json:"new_flight_id"`
}

// SearchSnapshot is the write-once record set produced by parsing one search
// response. It is replaced wholesale on a new search, never mutated
// field-by-field.
type SearchSnapshot struct {
	SearchID      int                              `json:"search_id"`
	Legs          []Leg                            `json:"legs"`
	Flights       map[int]Flight                   `json:"flights"`
	FlightsByLegs map[int][]int                    `json:"flights_by_legs"`
	FlightsRT     *RTPool                          `json:"flights_rt,omitempty"`
	FareFamilies  map[int]FareFamiliesCombinations `json:"fare_families,omitempty"`
	Currency      string                           `json:"currency"`
}
