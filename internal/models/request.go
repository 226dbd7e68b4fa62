package models

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingFlightID    ValidationError = "flight_id is required"
	ErrInvalidLegID       ValidationError = "leg_id must be a non-negative integer"
	ErrInvalidSegmentID   ValidationError = "segment_id must be a non-negative integer"
	ErrMissingFamily      ValidationError = "family is required"
	ErrInvalidSortType    ValidationError = "sort_by must be one of: price, flightTime, departureTime, arrivalTime"
	ErrInvalidSortOrder   ValidationError = "sort_order must be asc or desc"
	ErrInvalidTimeBucket  ValidationError = "time intervals must be one of: morning, afternoon, evening, night"
	ErrEmptySearchResults ValidationError = "search response contains no legs"
)

type SelectFlightRequest struct {
	LegID    int `json:"leg_id"`
	FlightID int `json:"flight_id"`
}

func (r *SelectFlightRequest) Validate() error {
	if r.LegID < 0 {
		return ErrInvalidLegID
	}
	if r.FlightID <= 0 {
		return ErrMissingFlightID
	}
	return nil
}

type SelectFamilyRequest struct {
	LegID     int    `json:"leg_id"`
	SegmentID int    `json:"segment_id"`
	Family    string `json:"family"`
}

func (r *SelectFamilyRequest) Validate() error {
	if r.LegID < 0 {
		return ErrInvalidLegID
	}
	if r.SegmentID < 0 {
		return ErrInvalidSegmentID
	}
	if r.Family == "" {
		return ErrMissingFamily
	}
	return nil
}

// FiltersRequest replaces the whole filter/sort state of a results session.
type FiltersRequest struct {
	Airlines          []string `json:"airlines,omitempty"`
	DepartureAirports []string `json:"departure_airports,omitempty"`
	ArrivalAirports   []string `json:"arrival_airports,omitempty"`
	DepartureTime     []string `json:"departure_time,omitempty"`
	ArrivalTime       []string `json:"arrival_time,omitempty"`
	DirectOnly        bool     `json:"direct_only"`
	FlightNumber      string   `json:"flight_number,omitempty"`
	SortBy            string   `json:"sort_by,omitempty"`
	SortOrder         string   `json:"sort_order,omitempty"`
	ShowAll           bool     `json:"show_all"`
}

func (r *FiltersRequest) Validate() error {
	if r.SortBy == "" {
		r.SortBy = string(SortPrice)
	}
	if r.SortOrder == "" {
		r.SortOrder = string(SortAsc)
	}

	switch SortType(r.SortBy) {
	case SortPrice, SortFlightTime, SortDepartureTime, SortArrivalTime:
	default:
		return ErrInvalidSortType
	}

	switch SortDirection(r.SortOrder) {
	case SortAsc, SortDesc:
	default:
		return ErrInvalidSortOrder
	}

	for _, interval := range append(append([]string{}, r.DepartureTime...), r.ArrivalTime...) {
		switch TimeInterval(interval) {
		case IntervalMorning, IntervalAfternoon, IntervalEvening, IntervalNight:
		default:
			return ErrInvalidTimeBucket
		}
	}

	return nil
}

// FilterState converts the request lists into the set-based filter state.
func (r *FiltersRequest) FilterState() FilterState {
	state := NewFilterState()
	state.DirectOnly = r.DirectOnly
	state.FlightNumber = r.FlightNumber

	for _, code := range r.Airlines {
		state.Airlines[code] = true
	}
	for _, code := range r.DepartureAirports {
		state.DepartureAirports[code] = true
	}
	for _, code := range r.ArrivalAirports {
		state.ArrivalAirports[code] = true
	}
	for _, interval := range r.DepartureTime {
		state.DepartureTime[TimeInterval(interval)] = true
	}
	for _, interval := range r.ArrivalTime {
		state.ArrivalTime[TimeInterval(interval)] = true
	}

	return state
}

func (r *FiltersRequest) SortSpec() SortSpec {
	return SortSpec{Type: SortType(r.SortBy), Direction: SortDirection(r.SortOrder)}
}
