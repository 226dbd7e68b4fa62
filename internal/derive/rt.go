package derive

import (
	"strings"

	"github.com/NemoTravel/results/internal/models"
)

// LegPrices computes the display price of every candidate flight on the
// current leg, with round-trip substitution applied when deriving the last
// leg.
//
// For a last-leg candidate the composite uid is the already-selected flight
// uids joined with the leg glue, followed by the candidate's own uid (just
// the candidate's uid on a single-leg search). A round-trip fare whose uid
// starts with that composite and whose total is strictly cheaper than the
// one-way sum replaces the candidate's price. The scan takes the first
// matching fare in pool order, not the cheapest one.
func LegPrices(
	flights []models.Flight,
	flightsRT *models.RTPool,
	isLastLeg bool,
	selectedFlights []models.Flight,
	selectedTotal float64,
) map[int]models.SelectedFlight {
	result := make(map[int]models.SelectedFlight, len(flights))

	selectedUIDs := make([]string, 0, len(selectedFlights))
	for _, flight := range selectedFlights {
		selectedUIDs = append(selectedUIDs, flight.UID)
	}
	selectedUID := strings.Join(selectedUIDs, models.UIDLegGlue)

	for _, flight := range flights {
		price := flight.TotalPrice
		newFlightID := flight.ID
		isRT := false

		candidateUID := flight.UID
		if selectedUID != "" {
			candidateUID = selectedUID + models.UIDLegGlue + flight.UID
		}
		possibleTotal := selectedTotal + price.Amount

		if isLastLeg {
			// An RT fare can undercut the sum of one-way fares. Offer the
			// first such fare found without asking the user to re-search.
			for _, uid := range flightsRT.UIDs() {
				rtFlight, ok := flightsRT.Get(uid)
				if !ok {
					continue
				}

				if strings.HasPrefix(uid, candidateUID) && rtFlight.TotalPrice.Amount < possibleTotal {
					price = rtFlight.TotalPrice
					newFlightID = rtFlight.ID
					isRT = true
					break
				}
			}
		}

		result[flight.ID] = models.SelectedFlight{
			Price:            price,
			IsRT:             isRT,
			OriginalFlightID: flight.ID,
			NewFlightID:      newFlightID,
		}
	}

	return result
}
