package derive

import (
	"sort"

	"github.com/NemoTravel/results/internal/models"
)

// sortFlights orders flights in place by the active sort spec. Price sorting
// uses the relative-price mapping so the list order matches the prices shown
// next to each flight; a flight missing from the mapping falls back to its
// absolute price. Sorting is stable so equal values keep their order between
// recomputations.
func sortFlights(flights []models.Flight, sorting models.SortSpec, prices map[int]models.SelectedFlight) {
	if len(flights) < 2 {
		return
	}

	ascending := sorting.Direction != models.SortDesc

	less := func(a, b models.Flight) bool { return displayPrice(a, prices) < displayPrice(b, prices) }

	switch sorting.Type {
	case models.SortFlightTime:
		less = func(a, b models.Flight) bool { return a.TotalFlightTime() < b.TotalFlightTime() }

	case models.SortDepartureTime:
		less = func(a, b models.Flight) bool {
			return a.FirstSegment().DepTime.Before(b.FirstSegment().DepTime)
		}

	case models.SortArrivalTime:
		less = func(a, b models.Flight) bool {
			return a.LastSegment().ArrTime.Before(b.LastSegment().ArrTime)
		}
	}

	sort.SliceStable(flights, func(i, j int) bool {
		if ascending {
			return less(flights[i], flights[j])
		}
		return less(flights[j], flights[i])
	})
}

func displayPrice(flight models.Flight, prices map[int]models.SelectedFlight) float64 {
	if candidate, ok := prices[flight.ID]; ok {
		return candidate.Price.Amount
	}
	return flight.TotalPrice.Amount
}
