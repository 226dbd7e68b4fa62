package derive

import (
	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// RelativePrices converts each candidate's absolute (or RT-substituted)
// price into the value shown in the list:
//
//   - first leg, no substitution: candidate price plus the minimum total of
//     the remaining legs — an optimistic "trip from X" estimate;
//   - later legs, no substitution: candidate price minus the leg's minimum —
//     the surcharge over the cheapest option;
//   - substitution found: RT total minus the committed selection total — the
//     marginal cost of switching to the round trip.
//
// Currency always comes from the candidate's own price. Candidates whose
// flight is missing from the pool are dropped.
func RelativePrices(
	pool map[int]models.Flight,
	prices map[int]models.SelectedFlight,
	minPrices map[int]money.Money,
	minTotals map[int]money.Money,
	totalPrice money.Money,
	legID int,
) map[int]models.SelectedFlight {
	minPriceOnLeg := minPrices[legID]
	minTotalForNextLegs := minTotals[legID]

	result := make(map[int]models.SelectedFlight, len(prices))

	for flightID, candidate := range prices {
		if _, ok := pool[flightID]; !ok {
			continue
		}

		switch {
		case candidate.IsRT:
			candidate.Price = candidate.Price.Sub(totalPrice)
		case legID == 0:
			candidate.Price = candidate.Price.Add(minTotalForNextLegs)
		default:
			candidate.Price = candidate.Price.Sub(minPriceOnLeg)
		}

		result[flightID] = candidate
	}

	return result
}
