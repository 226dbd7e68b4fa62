// Package derive implements the pure derivation pipeline of the results
// funnel: per-leg minimum prices, optimistic trip totals, round-trip
// substitution, relative display prices, visible-flight filtering and
// sorting, and fare-family combination pricing.
//
// Every function takes immutable snapshots and returns new values. Given
// identical inputs the outputs are identical as well; nothing here blocks,
// logs, or touches shared state.
package derive

import (
	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// FlightsForLeg resolves a leg's candidate flight ids against the pool,
// preserving the id-list order. Ids without a pooled flight are skipped.
func FlightsForLeg(pool map[int]models.Flight, flightsByLegs map[int][]int, legID int) []models.Flight {
	ids := flightsByLegs[legID]
	result := make([]models.Flight, 0, len(ids))

	for _, id := range ids {
		if flight, ok := pool[id]; ok {
			result = append(result, flight)
		}
	}

	return result
}

// MinPricesByLegs returns the cheapest candidate price of every leg. On a
// tie the first flight in iteration order wins. A leg without candidates
// yields a zero-amount price in the given currency.
func MinPricesByLegs(pool map[int]models.Flight, flightsByLegs map[int][]int, currency string) map[int]money.Money {
	result := make(map[int]money.Money, len(flightsByLegs))

	for legID := range flightsByLegs {
		flights := FlightsForLeg(pool, flightsByLegs, legID)
		if len(flights) == 0 {
			result[legID] = money.Zero(currency)
			continue
		}

		minPrice := flights[0].TotalPrice
		for _, flight := range flights[1:] {
			if flight.TotalPrice.Less(minPrice) {
				minPrice = flight.TotalPrice
			}
		}
		result[legID] = minPrice
	}

	return result
}

// MinTotalPossibleByLegs returns, for every leg, the sum of the minimum
// prices of all strictly later legs: the cheapest way to finish the trip
// from that leg on. The last leg always maps to zero.
//
// Example: min prices {0: 120, 1: 80, 2: 100} derive to
// {0: 180, 1: 100, 2: 0}.
func MinTotalPossibleByLegs(minPrices map[int]money.Money, currency string) map[int]money.Money {
	result := make(map[int]money.Money, len(minPrices))

	for legID := range minPrices {
		total := money.Zero(currency)
		for otherLegID, price := range minPrices {
			if otherLegID > legID {
				total = total.AddAmount(price.Amount)
			}
		}
		result[legID] = total
	}

	return result
}
