package derive

import (
	"strings"

	"github.com/NemoTravel/results/internal/models"
)

// MaxVisibleFlights caps the results list unless the user asked for all.
const MaxVisibleFlights = 15

// VisibleFlights applies the active filters to the current leg's candidates,
// sorts the survivors, and truncates to MaxVisibleFlights unless showAll is
// set. Filters intersect: a flight stays visible only if every active filter
// accepts it.
func VisibleFlights(
	flights []models.Flight,
	filters models.FilterState,
	sorting models.SortSpec,
	prices map[int]models.SelectedFlight,
	showAll bool,
) []models.Flight {
	visible := make([]models.Flight, 0, len(flights))
	if filters.IsEmpty() {
		visible = append(visible, flights...)
	} else {
		for _, flight := range flights {
			if matchesFilters(flight, filters) {
				visible = append(visible, flight)
			}
		}
	}

	sortFlights(visible, sorting, prices)

	if !showAll && len(visible) > MaxVisibleFlights {
		visible = visible[:MaxVisibleFlights]
	}

	return visible
}

func matchesFilters(flight models.Flight, filters models.FilterState) bool {
	firstSegment := flight.FirstSegment()
	lastSegment := flight.LastSegment()

	if filters.DirectOnly && !flight.IsDirect() {
		return false
	}

	if filters.FlightNumber != "" &&
		!strings.Contains(strings.ToLower(flight.UID), strings.ToLower(filters.FlightNumber)) {
		return false
	}

	if len(filters.DepartureAirports) > 0 && !filters.DepartureAirports[firstSegment.DepAirport.IATA] {
		return false
	}

	if len(filters.ArrivalAirports) > 0 && !filters.ArrivalAirports[lastSegment.ArrAirport.IATA] {
		return false
	}

	if len(filters.Airlines) > 0 {
		found := false
		for _, segment := range flight.Segments {
			if filters.Airlines[segment.Airline.IATA] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filters.DepartureTime) > 0 && !filters.DepartureTime[models.IntervalForTime(firstSegment.DepTime)] {
		return false
	}

	if len(filters.ArrivalTime) > 0 && !filters.ArrivalTime[models.IntervalForTime(lastSegment.ArrTime)] {
		return false
	}

	return true
}

// HasHiddenFlights reports whether the cap is concealing part of the result
// list.
func HasHiddenFlights(showAll bool, all, visible []models.Flight) bool {
	return !showAll && len(all) > MaxVisibleFlights && len(visible) >= MaxVisibleFlights
}

// HasAnyTransferFlights reports whether the list mixes direct and transfer
// flights, which is when the direct-only filter is worth showing.
func HasAnyTransferFlights(flights []models.Flight) bool {
	transfers := 0
	for _, flight := range flights {
		if len(flight.Segments) > 1 {
			transfers++
		}
	}

	return transfers > 1 && transfers != len(flights)
}
