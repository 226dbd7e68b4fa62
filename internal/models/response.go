package models

import "github.com/NemoTravel/results/internal/money"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ResultsInfo describes a loaded results session.
type ResultsInfo struct {
	SearchID   int    `json:"search_id"`
	Legs       []Leg  `json:"legs"`
	CurrentLeg int    `json:"current_leg"`
	Currency   string `json:"currency"`
}

// FlightView is one visible flight together with its display price. Price is
// relative (a delta or a "from" total), not the flight's absolute fare.
type FlightView struct {
	Flight         Flight      `json:"flight"`
	Price          money.Money `json:"price"`
	PriceFormatted string      `json:"price_formatted"`
	IsRT           bool        `json:"is_rt"`
	NewFlightID    int         `json:"new_flight_id"`
}

type FlightsResponse struct {
	LegID      int          `json:"leg_id"`
	IsLastLeg  bool         `json:"is_last_leg"`
	Flights    []FlightView `json:"flights"`
	TotalCount int          `json:"total_count"`
	HasHidden  bool         `json:"has_hidden"`

	// HasTransfers signals that the leg mixes direct and transfer flights,
	// so the direct-only filter is worth offering.
	HasTransfers bool `json:"has_transfers"`
	MinPrice   money.Money  `json:"min_price"`
	TotalPrice money.Money  `json:"total_price"`
}

type SelectionResponse struct {
	CurrentLeg        int         `json:"current_leg"`
	SelectionComplete bool        `json:"selection_complete"`
	TotalPrice        money.Money `json:"total_price"`
}

// FareFamiliesResponse carries price deltas per leg, segment and family key.
// A family key absent from Prices means its delta is unknown, not zero.
type FareFamiliesResponse struct {
	Valid      bool                                   `json:"valid"`
	Prices     map[int]map[int]map[string]money.Money `json:"prices"`
	TotalPrice money.Money                            `json:"total_price"`
}
