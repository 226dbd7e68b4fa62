// Package store holds the funnel's mutable state: the current leg, the
// records of the active search, user selections and filters. Mutations are
// serialized through a single channel consumed by one goroutine, so a
// mutation always completes fully before the next one is observed. Reads
// work on immutable snapshots.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// State is one immutable snapshot of the funnel. Record maps are write-once
// (replaced wholesale on a new search); selection and filter maps are copied
// before every mutation.
type State struct {
	SearchID         int
	Currency         string
	CurrentLeg       int
	Legs             []models.Leg
	Flights          map[int]models.Flight
	FlightsByLegs    map[int][]int
	FlightsRT        *models.RTPool
	FareFamilies     map[int]models.FareFamiliesCombinations
	SelectedFlights  map[int]models.SelectedFlight
	SelectedFamilies map[int]map[int]string
	Filters          models.FilterState
	Sorting          models.SortSpec
	ShowAllFlights   bool
}

// SelectionComplete reports whether a flight has been chosen on every leg.
func (s State) SelectionComplete() bool {
	return len(s.Legs) > 0 && len(s.SelectedFlights) == len(s.Legs)
}

// IsLastLeg reports whether the current leg is the final one.
func (s State) IsLastLeg() bool {
	return len(s.Legs) > 0 && s.CurrentLeg == len(s.Legs)-1
}

type versioned struct {
	state   State
	version uint64
}

type command struct {
	apply func(State) State
	done  chan struct{}
}

// Store serializes mutations and memoizes derivations per state version.
type Store struct {
	commands chan command
	quit     chan struct{}
	once     sync.Once

	current atomic.Pointer[versioned]

	derivedMu      sync.Mutex
	derived        *Derived
	derivedVersion uint64
	derivedValid   bool
}

// New creates a store primed with a parsed search snapshot and starts its
// mutation loop.
func New(snapshot *models.SearchSnapshot) *Store {
	s := &Store{
		commands: make(chan command),
		quit:     make(chan struct{}),
	}

	s.current.Store(&versioned{state: stateFromSnapshot(snapshot)})

	go s.loop()

	return s
}

func stateFromSnapshot(snapshot *models.SearchSnapshot) State {
	currency := snapshot.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}

	return State{
		SearchID:         snapshot.SearchID,
		Currency:         currency,
		CurrentLeg:       0,
		Legs:             snapshot.Legs,
		Flights:          snapshot.Flights,
		FlightsByLegs:    snapshot.FlightsByLegs,
		FlightsRT:        snapshot.FlightsRT,
		FareFamilies:     snapshot.FareFamilies,
		SelectedFlights:  make(map[int]models.SelectedFlight),
		SelectedFamilies: make(map[int]map[int]string),
		Filters:          models.NewFilterState(),
		Sorting:          models.DefaultSort(),
	}
}

func (s *Store) loop() {
	for {
		select {
		case cmd := <-s.commands:
			cur := s.current.Load()
			next := cmd.apply(cur.state)
			s.current.Store(&versioned{state: next, version: cur.version + 1})
			close(cmd.done)
		case <-s.quit:
			return
		}
	}
}

// Close stops the mutation loop. Pending dispatches return without applying.
func (s *Store) Close() {
	s.once.Do(func() { close(s.quit) })
}

// dispatch applies a mutation and waits for it to complete.
func (s *Store) dispatch(apply func(State) State) {
	cmd := command{apply: apply, done: make(chan struct{})}

	select {
	case s.commands <- cmd:
		<-cmd.done
	case <-s.quit:
	}
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() State {
	return s.current.Load().state
}

// SetSearchResults replaces all records with a new search, resetting
// selections, filters and the current leg.
func (s *Store) SetSearchResults(snapshot *models.SearchSnapshot) {
	s.dispatch(func(State) State {
		return stateFromSnapshot(snapshot)
	})
}

// SelectFlight stores the user's choice for a leg, applying the RT
// substitution derived for that candidate, and advances the funnel to the
// next leg. Selections on legs after the one mutated are discarded. Unknown
// flight ids leave the state untouched.
func (s *Store) SelectFlight(legID, flightID int) {
	s.dispatch(func(state State) State {
		if legID < 0 || legID >= len(state.Legs) {
			return state
		}

		prices := legPricesFor(state, legID)
		selection, ok := prices[flightID]
		if !ok {
			return state
		}

		selected := make(map[int]models.SelectedFlight, len(state.SelectedFlights)+1)
		for l, sel := range state.SelectedFlights {
			if l < legID {
				selected[l] = sel
			}
		}
		selected[legID] = selection
		state.SelectedFlights = selected

		if legID == state.CurrentLeg && state.CurrentLeg < len(state.Legs)-1 {
			state.CurrentLeg++
		}

		return state
	})
}

// GoBack returns to the previous leg and clears the selections made from
// that leg on. When selection is already complete the funnel stays on the
// last leg — backing out of the fare-family step re-opens its results.
// Fare-family choices are discarded either way.
func (s *Store) GoBack() {
	s.dispatch(func(state State) State {
		newLeg := state.CurrentLeg
		if !state.SelectionComplete() {
			newLeg--
		}
		if newLeg < 0 {
			newLeg = 0
		}

		selected := make(map[int]models.SelectedFlight, len(state.SelectedFlights))
		for l, sel := range state.SelectedFlights {
			if l < newLeg {
				selected[l] = sel
			}
		}

		state.SelectedFlights = selected
		state.SelectedFamilies = make(map[int]map[int]string)
		state.CurrentLeg = newLeg

		return state
	})
}

// SelectFamily stores the chosen fare family for one segment of a leg.
func (s *Store) SelectFamily(legID, segmentID int, familyKey string) {
	s.dispatch(func(state State) State {
		families := make(map[int]map[int]string, len(state.SelectedFamilies)+1)
		for l, segments := range state.SelectedFamilies {
			copied := make(map[int]string, len(segments))
			for segID, key := range segments {
				copied[segID] = key
			}
			families[l] = copied
		}

		if families[legID] == nil {
			families[legID] = make(map[int]string)
		}
		families[legID][segmentID] = familyKey

		state.SelectedFamilies = families
		return state
	})
}

// SetFilters replaces the whole filter state.
func (s *Store) SetFilters(filters models.FilterState) {
	s.dispatch(func(state State) State {
		state.Filters = filters
		return state
	})
}

// SetSorting replaces the active sort spec.
func (s *Store) SetSorting(sorting models.SortSpec) {
	s.dispatch(func(state State) State {
		state.Sorting = sorting
		return state
	})
}

// SetShowAll toggles the visible-results cap.
func (s *Store) SetShowAll(showAll bool) {
	s.dispatch(func(state State) State {
		state.ShowAllFlights = showAll
		return state
	})
}
