package derive

import (
	"sort"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// TotalPrice computes the committed total of the funnel so far.
//
// While flights are still being chosen, the total is the sum of selected
// flight prices padded with the optimistic minimum for each leg's remaining
// trip. Once a selected flight is an RT substitution, later selections are
// covered by that fare and are not added again. Once selection is complete
// and fare families are being chosen, a leg with a priced combination
// contributes that combination price instead of its flight price.
//
// Legs are processed in ascending id order.
func TotalPrice(
	pool map[int]models.Flight,
	selected map[int]models.SelectedFlight,
	selectionComplete bool,
	selectedCombinations map[int]string,
	combinations map[int]models.FareFamiliesCombinations,
	minTotals map[int]money.Money,
	currency string,
) money.Money {
	total := money.Zero(currency)
	rtFound := false

	legIDs := make([]int, 0, len(selected))
	for legID := range selected {
		legIDs = append(legIDs, legID)
	}
	sort.Ints(legIDs)

	for _, legID := range legIDs {
		selection := selected[legID]
		combination, hasCombination := selectedCombinations[legID]
		legCombinations, hasLegCombinations := combinations[legID]

		if selectionComplete && hasCombination && combination != "" && hasLegCombinations {
			if price, ok := legCombinations.CombinationsPrices[combination]; ok {
				total = total.AddAmount(price.Amount)
			}
		} else if flight, ok := pool[selection.NewFlightID]; ok {
			if !rtFound {
				total = total.AddAmount(flight.TotalPrice.Amount)
			}
			if flight.IsRT {
				rtFound = true
			}
		}

		if !rtFound && !selectionComplete {
			if minTotal, ok := minTotals[legID]; ok {
				total = total.AddAmount(minTotal.Amount)
			}
		}
	}

	return total
}

// TotalPriceOfSelectedFlights sums the absolute prices of the flights chosen
// on previous legs, in leg order. Ids without a pooled flight are skipped.
func TotalPriceOfSelectedFlights(pool map[int]models.Flight, selected map[int]models.SelectedFlight) float64 {
	total := 0.0
	for _, selection := range selected {
		if flight, ok := pool[selection.NewFlightID]; ok {
			total += flight.TotalPrice.Amount
		}
	}
	return total
}

// SelectedFlightsList resolves the chosen flight of every leg in ascending
// leg order.
func SelectedFlightsList(pool map[int]models.Flight, selected map[int]models.SelectedFlight) []models.Flight {
	legIDs := make([]int, 0, len(selected))
	for legID := range selected {
		legIDs = append(legIDs, legID)
	}
	sort.Ints(legIDs)

	result := make([]models.Flight, 0, len(legIDs))
	for _, legID := range legIDs {
		if flight, ok := pool[selected[legID].NewFlightID]; ok {
			result = append(result, flight)
		}
	}

	return result
}
