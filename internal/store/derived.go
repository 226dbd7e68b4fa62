package store

import (
	"github.com/NemoTravel/results/internal/derive"
	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// Derived is the full derivation pipeline output for one state version.
// It is computed at most once per version: asking again without an
// intervening mutation returns the same value, so downstream consumers can
// compare by reference to skip redundant work.
type Derived struct {
	MinPrices         map[int]money.Money
	MinTotalPossible  map[int]money.Money
	LegFlights        []models.Flight
	LegPrices         map[int]models.SelectedFlight
	RelativePrices    map[int]models.SelectedFlight
	VisibleFlights    []models.Flight
	HasHidden         bool
	HasTransfers      bool
	TotalPrice        money.Money
	SelectedFlights   []models.Flight
	SelectedCombos    map[int]string
	CombinationsValid bool
	FamilyPrices      map[int]map[int]map[string]money.Money
}

// Derived returns the memoized derivation output for the current state.
func (s *Store) Derived() *Derived {
	cur := s.current.Load()

	s.derivedMu.Lock()
	defer s.derivedMu.Unlock()

	if s.derivedValid && s.derivedVersion == cur.version {
		return s.derived
	}

	s.derived = computeDerived(cur.state)
	s.derivedVersion = cur.version
	s.derivedValid = true

	return s.derived
}

// legPricesFor runs the price pipeline up to RT substitution for one leg.
// Used by the selection reducer, which needs the substituted replacement id.
func legPricesFor(state State, legID int) map[int]models.SelectedFlight {
	flights := derive.FlightsForLeg(state.Flights, state.FlightsByLegs, legID)
	selectedList := derive.SelectedFlightsList(state.Flights, state.SelectedFlights)
	selectedTotal := derive.TotalPriceOfSelectedFlights(state.Flights, state.SelectedFlights)
	isLast := len(state.Legs) > 0 && legID == len(state.Legs)-1

	return derive.LegPrices(flights, state.FlightsRT, isLast, selectedList, selectedTotal)
}

func computeDerived(state State) *Derived {
	minPrices := derive.MinPricesByLegs(state.Flights, state.FlightsByLegs, state.Currency)
	minTotals := derive.MinTotalPossibleByLegs(minPrices, state.Currency)

	legFlights := derive.FlightsForLeg(state.Flights, state.FlightsByLegs, state.CurrentLeg)
	legPrices := legPricesFor(state, state.CurrentLeg)

	selectedCombos := derive.SelectedCombinations(state.SelectedFamilies)

	totalPrice := derive.TotalPrice(
		state.Flights,
		state.SelectedFlights,
		state.SelectionComplete(),
		selectedCombos,
		state.FareFamilies,
		minTotals,
		state.Currency,
	)

	relativePrices := derive.RelativePrices(
		state.Flights,
		legPrices,
		minPrices,
		minTotals,
		totalPrice,
		state.CurrentLeg,
	)

	visible := derive.VisibleFlights(
		legFlights,
		state.Filters,
		state.Sorting,
		relativePrices,
		state.ShowAllFlights,
	)

	return &Derived{
		MinPrices:         minPrices,
		MinTotalPossible:  minTotals,
		LegFlights:        legFlights,
		LegPrices:         legPrices,
		RelativePrices:    relativePrices,
		VisibleFlights:    visible,
		HasHidden:         derive.HasHiddenFlights(state.ShowAllFlights, legFlights, visible),
		HasTransfers:      derive.HasAnyTransferFlights(legFlights),
		TotalPrice:        totalPrice,
		SelectedFlights:   derive.SelectedFlightsList(state.Flights, state.SelectedFlights),
		SelectedCombos:    selectedCombos,
		CombinationsValid: derive.CombinationsAreValid(selectedCombos, state.FareFamilies),
		FamilyPrices:      derive.FareFamiliesPrices(selectedCombos, state.FareFamilies),
	}
}
