package store

import (
	"sync"
	"testing"
	"time"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

func rub(amount float64) money.Money {
	return money.Money{Amount: amount, Currency: "RUB"}
}

func testFlight(id int, uid string, amount float64, airline string) models.Flight {
	return models.Flight{
		ID:  id,
		UID: uid,
		Segments: []models.Segment{
			{
				DepAirport: models.Airport{IATA: "SVO"},
				ArrAirport: models.Airport{IATA: "LED"},
				DepTime:    time.Date(2018, 6, 24, 10, 0, 0, 0, time.UTC),
				ArrTime:    time.Date(2018, 6, 24, 11, 30, 0, 0, time.UTC),
				Airline:    models.Airline{IATA: airline},
				FlightTime: 90,
			},
		},
		TotalPrice: rub(amount),
	}
}

func twoLegSnapshot() *models.SearchSnapshot {
	out1 := testFlight(1, "SU-100_1pc", 100, "SU")
	out2 := testFlight(2, "AY-720_1pc", 150, "AY")
	ret1 := testFlight(3, "SU-200_1pc", 80, "SU")
	ret2 := testFlight(4, "AY-1071_1pc", 120, "AY")

	rtFlight := testFlight(10, "AY-720_1pc|AY-1071_1pc", 240, "AY")
	rtFlight.IsRT = true

	pool := models.NewRTPool()
	pool.Add(rtFlight.UID, rtFlight)

	return &models.SearchSnapshot{
		SearchID: 42,
		Legs: []models.Leg{
			{ID: 0, Departure: "Москва", Arrival: "Санкт-Петербург", Date: "2018-06-24"},
			{ID: 1, Departure: "Санкт-Петербург", Arrival: "Москва", Date: "2018-06-25"},
		},
		Flights: map[int]models.Flight{
			1: out1, 2: out2, 3: ret1, 4: ret2, 10: rtFlight,
		},
		FlightsByLegs: map[int][]int{
			0: {1, 2},
			1: {3, 4},
		},
		FlightsRT: pool,
		Currency:  "RUB",
	}
}

func TestNewStoreInitialState(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	state := s.Snapshot()
	if state.CurrentLeg != 0 {
		t.Errorf("expected funnel to start on leg 0, got %d", state.CurrentLeg)
	}
	if state.SelectionComplete() {
		t.Error("expected fresh state to be incomplete")
	}
	if state.Currency != "RUB" {
		t.Errorf("expected RUB, got %q", state.Currency)
	}
}

func TestSelectFlightAdvancesLeg(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.SelectFlight(0, 1)

	state := s.Snapshot()
	if state.CurrentLeg != 1 {
		t.Fatalf("expected funnel to advance to leg 1, got %d", state.CurrentLeg)
	}

	selection, ok := state.SelectedFlights[0]
	if !ok {
		t.Fatal("expected a selection for leg 0")
	}
	if selection.NewFlightID != 1 || selection.IsRT {
		t.Errorf("expected plain selection of flight 1, got %+v", selection)
	}
}

func TestSelectFlightUnknownIDIsNoOp(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.SelectFlight(0, 999)

	state := s.Snapshot()
	if len(state.SelectedFlights) != 0 || state.CurrentLeg != 0 {
		t.Fatalf("expected state untouched, got %+v", state.SelectedFlights)
	}
}

func TestSelectFlightAppliesRTSubstitution(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	// AY one-way pair sums to 270; the RT fare at 240 undercuts it.
	s.SelectFlight(0, 2)
	s.SelectFlight(1, 4)

	state := s.Snapshot()
	if !state.SelectionComplete() {
		t.Fatal("expected selection to be complete")
	}

	selection := state.SelectedFlights[1]
	if !selection.IsRT {
		t.Fatal("expected RT substitution on the last leg")
	}
	if selection.NewFlightID != 10 {
		t.Errorf("expected RT fare id 10, got %d", selection.NewFlightID)
	}
	if selection.OriginalFlightID != 4 {
		t.Errorf("expected original candidate id 4, got %d", selection.OriginalFlightID)
	}
}

func TestGoBackClearsSelections(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.SelectFlight(0, 1)
	s.GoBack()

	state := s.Snapshot()
	if state.CurrentLeg != 0 {
		t.Errorf("expected to return to leg 0, got %d", state.CurrentLeg)
	}
	if len(state.SelectedFlights) != 0 {
		t.Errorf("expected selections cleared, got %+v", state.SelectedFlights)
	}
}

func TestGoBackFromCompleteSelectionStays(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.SelectFlight(0, 1)
	s.SelectFlight(1, 3)
	s.SelectFamily(0, 0, "F1")
	s.GoBack()

	state := s.Snapshot()
	if state.CurrentLeg != 1 {
		t.Errorf("expected to stay on the last leg, got %d", state.CurrentLeg)
	}
	if _, ok := state.SelectedFlights[1]; ok {
		t.Error("expected the last leg's selection to be dropped")
	}
	if _, ok := state.SelectedFlights[0]; !ok {
		t.Error("expected earlier selections to survive")
	}
	if len(state.SelectedFamilies) != 0 {
		t.Error("expected fare-family choices to be discarded")
	}
}

func TestGoBackOnFirstLegClamps(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.GoBack()

	if leg := s.Snapshot().CurrentLeg; leg != 0 {
		t.Errorf("expected to stay on leg 0, got %d", leg)
	}
}

func TestDerivedMemoization(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	first := s.Derived()
	second := s.Derived()
	if first != second {
		t.Fatal("expected the same derived value for an unchanged state")
	}

	s.SelectFlight(0, 1)

	third := s.Derived()
	if third == first {
		t.Fatal("expected a mutation to invalidate the derived cache")
	}
}

func TestSetFiltersAffectsVisibleFlights(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	if visible := s.Derived().VisibleFlights; len(visible) != 2 {
		t.Fatalf("expected 2 visible flights before filtering, got %d", len(visible))
	}

	filters := models.NewFilterState()
	filters.Airlines["SU"] = true
	s.SetFilters(filters)

	visible := s.Derived().VisibleFlights
	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("expected only the SU flight, got %v", visible)
	}
}

func TestRelativePricesOnFirstLeg(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	derived := s.Derived()

	// Leg 0 display prices are "trip from" totals: own fare plus the min of
	// the remaining legs (80).
	if price := derived.RelativePrices[1].Price.Amount; price != 180 {
		t.Errorf("expected 100+80=180 for flight 1, got %v", price)
	}
	if price := derived.RelativePrices[2].Price.Amount; price != 230 {
		t.Errorf("expected 150+80=230 for flight 2, got %v", price)
	}
}

// Mutations are serialized: concurrent family selections on different
// segments must all be observed, with no lost updates.
func TestConcurrentMutationsSerialized(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	const segments = 16

	var wg sync.WaitGroup
	for i := 0; i < segments; i++ {
		wg.Add(1)
		go func(segmentID int) {
			defer wg.Done()
			s.SelectFamily(0, segmentID, "F1")
		}(i)
	}
	wg.Wait()

	families := s.Snapshot().SelectedFamilies[0]
	if len(families) != segments {
		t.Fatalf("expected %d family selections, got %d", segments, len(families))
	}
}

func TestSetSearchResultsResetsEverything(t *testing.T) {
	s := New(twoLegSnapshot())
	defer s.Close()

	s.SelectFlight(0, 1)
	s.SetShowAll(true)
	s.SetSearchResults(twoLegSnapshot())

	state := s.Snapshot()
	if state.CurrentLeg != 0 || len(state.SelectedFlights) != 0 || state.ShowAllFlights {
		t.Fatalf("expected a wholesale reset, got %+v", state)
	}
}
