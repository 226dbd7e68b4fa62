package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/NemoTravel/results/internal/models"
)

func segment(dep, arr, airline string, depHour, arrHour int) models.Segment {
	return models.Segment{
		DepAirport: models.Airport{IATA: dep},
		ArrAirport: models.Airport{IATA: arr},
		DepTime:    time.Date(2018, 6, 24, depHour, 0, 0, 0, time.UTC),
		ArrTime:    time.Date(2018, 6, 24, arrHour, 0, 0, 0, time.UTC),
		Airline:    models.Airline{IATA: airline},
		FlightTime: (arrHour - depHour) * 60,
	}
}

func transferFlight(id int, uid string, amount float64, segments ...models.Segment) models.Flight {
	return models.Flight{ID: id, UID: uid, Segments: segments, TotalPrice: rub(amount)}
}

func noFilters() models.FilterState {
	return models.NewFilterState()
}

func TestVisibleFlightsDirectOnly(t *testing.T) {
	direct := transferFlight(1, "SU-100", 100, segment("SVO", "LED", "SU", 8, 10))
	transfer := transferFlight(2, "SU-200_SU-201", 90,
		segment("SVO", "KZN", "SU", 8, 10),
		segment("KZN", "LED", "SU", 12, 14),
	)

	filters := noFilters()
	filters.DirectOnly = true

	visible := VisibleFlights([]models.Flight{direct, transfer}, filters, models.DefaultSort(), nil, true)

	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("expected only the direct flight, got %v", visible)
	}
}

func TestVisibleFlightsFlightNumber(t *testing.T) {
	a := transferFlight(1, "SU-100_1pc", 100, segment("SVO", "LED", "SU", 8, 10))
	b := transferFlight(2, "AY-720_1pc", 90, segment("SVO", "LED", "AY", 9, 11))

	filters := noFilters()
	filters.FlightNumber = "ay-720"

	visible := VisibleFlights([]models.Flight{a, b}, filters, models.DefaultSort(), nil, true)

	if len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("expected case-insensitive uid substring match, got %v", visible)
	}
}

func TestVisibleFlightsAirports(t *testing.T) {
	fromSVO := transferFlight(1, "SU-100", 100, segment("SVO", "LED", "SU", 8, 10))
	fromDME := transferFlight(2, "SU-200", 90, segment("DME", "LED", "SU", 9, 11))

	filters := noFilters()
	filters.DepartureAirports["SVO"] = true

	visible := VisibleFlights([]models.Flight{fromSVO, fromDME}, filters, models.DefaultSort(), nil, true)
	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("expected departure-airport filter on the first segment, got %v", visible)
	}

	// Arrival filtering looks at the last segment.
	viaKZN := transferFlight(3, "SU-300_SU-301", 80,
		segment("SVO", "KZN", "SU", 8, 10),
		segment("KZN", "AER", "SU", 12, 14),
	)

	filters = noFilters()
	filters.ArrivalAirports["AER"] = true

	visible = VisibleFlights([]models.Flight{fromSVO, viaKZN}, filters, models.DefaultSort(), nil, true)
	if len(visible) != 1 || visible[0].ID != 3 {
		t.Fatalf("expected arrival-airport filter on the last segment, got %v", visible)
	}
}

func TestVisibleFlightsAirlineAnySegment(t *testing.T) {
	mixed := transferFlight(1, "SU-100_U6-200", 100,
		segment("SVO", "KZN", "SU", 8, 10),
		segment("KZN", "LED", "U6", 12, 14),
	)
	other := transferFlight(2, "AY-720", 90, segment("SVO", "LED", "AY", 9, 11))

	filters := noFilters()
	filters.Airlines["U6"] = true

	visible := VisibleFlights([]models.Flight{mixed, other}, filters, models.DefaultSort(), nil, true)

	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("expected a match when any segment's airline is selected, got %v", visible)
	}
}

func TestIntervalForTimeBuckets(t *testing.T) {
	cases := []struct {
		hour, minute int
		expected     models.TimeInterval
	}{
		{0, 0, models.IntervalNight},
		{5, 59, models.IntervalNight},
		{6, 0, models.IntervalMorning},
		{11, 59, models.IntervalMorning},
		{12, 0, models.IntervalAfternoon},
		{17, 59, models.IntervalAfternoon},
		{18, 0, models.IntervalEvening},
		{23, 59, models.IntervalEvening},
	}

	for _, tc := range cases {
		ts := time.Date(2018, 6, 24, tc.hour, tc.minute, 0, 0, time.UTC)
		if got := models.IntervalForTime(ts); got != tc.expected {
			t.Errorf("%02d:%02d: expected %s, got %s", tc.hour, tc.minute, tc.expected, got)
		}
	}
}

func TestVisibleFlightsTimeFilters(t *testing.T) {
	morning := transferFlight(1, "SU-100", 100, segment("SVO", "LED", "SU", 8, 10))
	evening := transferFlight(2, "SU-200", 90, segment("SVO", "LED", "SU", 19, 21))

	filters := noFilters()
	filters.DepartureTime[models.IntervalMorning] = true

	visible := VisibleFlights([]models.Flight{morning, evening}, filters, models.DefaultSort(), nil, true)
	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("expected departure-time filter to keep the morning flight, got %v", visible)
	}

	filters = noFilters()
	filters.ArrivalTime[models.IntervalEvening] = true

	visible = VisibleFlights([]models.Flight{morning, evening}, filters, models.DefaultSort(), nil, true)
	if len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("expected arrival-time filter to keep the evening flight, got %v", visible)
	}
}

// Filters intersect: adding a filter can only shrink the visible set.
func TestVisibleFlightsFiltersIntersect(t *testing.T) {
	flights := []models.Flight{
		transferFlight(1, "SU-100", 100, segment("SVO", "LED", "SU", 8, 10)),
		transferFlight(2, "SU-200", 90, segment("DME", "LED", "SU", 9, 11)),
		transferFlight(3, "AY-720", 80, segment("SVO", "LED", "AY", 19, 21)),
	}

	filters := noFilters()
	filters.DepartureAirports["SVO"] = true
	baseline := VisibleFlights(flights, filters, models.DefaultSort(), nil, true)

	filters.Airlines["SU"] = true
	narrowed := VisibleFlights(flights, filters, models.DefaultSort(), nil, true)

	if len(narrowed) > len(baseline) {
		t.Fatalf("enabling an extra filter grew the set: %d > %d", len(narrowed), len(baseline))
	}
}

func TestVisibleFlightsCap(t *testing.T) {
	flights := make([]models.Flight, 0, 20)
	for i := 0; i < 20; i++ {
		flights = append(flights, transferFlight(i+1, fmt.Sprintf("SU-%d", i), float64(100+i),
			segment("SVO", "LED", "SU", 8, 10)))
	}

	capped := VisibleFlights(flights, noFilters(), models.DefaultSort(), nil, false)
	if len(capped) != MaxVisibleFlights {
		t.Errorf("expected %d visible flights, got %d", MaxVisibleFlights, len(capped))
	}

	all := VisibleFlights(flights, noFilters(), models.DefaultSort(), nil, true)
	if len(all) != 20 {
		t.Errorf("expected all 20 flights with showAll, got %d", len(all))
	}

	if !HasHiddenFlights(false, flights, capped) {
		t.Error("expected hidden flights to be reported when the cap truncates")
	}
	if HasHiddenFlights(true, flights, all) {
		t.Error("expected no hidden flights with showAll")
	}
}

func TestVisibleFlightsIdempotent(t *testing.T) {
	flights := []models.Flight{
		transferFlight(1, "SU-100", 120, segment("SVO", "LED", "SU", 8, 10)),
		transferFlight(2, "SU-200", 90, segment("SVO", "LED", "SU", 9, 11)),
		transferFlight(3, "SU-300", 110, segment("SVO", "LED", "SU", 10, 12)),
	}

	first := VisibleFlights(flights, noFilters(), models.DefaultSort(), nil, false)
	second := VisibleFlights(flights, noFilters(), models.DefaultSort(), nil, false)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order differs at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

// Price sorting must follow the relative-price mapping, not absolute fares.
func TestVisibleFlightsSortByRelativePrice(t *testing.T) {
	expensive := transferFlight(1, "SU-100", 500, segment("SVO", "LED", "SU", 8, 10))
	cheap := transferFlight(2, "SU-200", 100, segment("SVO", "LED", "SU", 9, 11))

	prices := map[int]models.SelectedFlight{
		1: {Price: rub(0), OriginalFlightID: 1, NewFlightID: 1},
		2: {Price: rub(40), OriginalFlightID: 2, NewFlightID: 2},
	}

	visible := VisibleFlights([]models.Flight{cheap, expensive}, noFilters(), models.DefaultSort(), prices, true)

	if visible[0].ID != 1 {
		t.Fatalf("expected relative-price order (flight 1 first), got flight %d", visible[0].ID)
	}
}

func TestVisibleFlightsSortDirectionsAndTypes(t *testing.T) {
	early := transferFlight(1, "SU-100", 200, segment("SVO", "LED", "SU", 6, 11))
	late := transferFlight(2, "SU-200", 100, segment("SVO", "LED", "SU", 15, 16))

	byDeparture := VisibleFlights([]models.Flight{late, early}, noFilters(),
		models.SortSpec{Type: models.SortDepartureTime, Direction: models.SortAsc}, nil, true)
	if byDeparture[0].ID != 1 {
		t.Errorf("departureTime asc: expected flight 1 first, got %d", byDeparture[0].ID)
	}

	byDuration := VisibleFlights([]models.Flight{early, late}, noFilters(),
		models.SortSpec{Type: models.SortFlightTime, Direction: models.SortAsc}, nil, true)
	if byDuration[0].ID != 2 {
		t.Errorf("flightTime asc: expected flight 2 first, got %d", byDuration[0].ID)
	}

	descPrice := VisibleFlights([]models.Flight{late, early}, noFilters(),
		models.SortSpec{Type: models.SortPrice, Direction: models.SortDesc}, nil, true)
	if descPrice[0].ID != 1 {
		t.Errorf("price desc: expected flight 1 first, got %d", descPrice[0].ID)
	}
}

func TestHasAnyTransferFlights(t *testing.T) {
	direct := transferFlight(1, "SU-100", 100, segment("SVO", "LED", "SU", 8, 10))
	transferA := transferFlight(2, "SU-200_SU-201", 90,
		segment("SVO", "KZN", "SU", 8, 10), segment("KZN", "LED", "SU", 12, 14))
	transferB := transferFlight(3, "SU-300_SU-301", 95,
		segment("SVO", "KUF", "SU", 8, 10), segment("KUF", "LED", "SU", 12, 14))

	if !HasAnyTransferFlights([]models.Flight{direct, transferA, transferB}) {
		t.Error("expected mixed list to report transfer flights")
	}
	if HasAnyTransferFlights([]models.Flight{transferA, transferB}) {
		t.Error("expected all-transfer list not to report")
	}
	if HasAnyTransferFlights([]models.Flight{direct, transferA}) {
		t.Error("expected a single transfer flight not to report")
	}
}
