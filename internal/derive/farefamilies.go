package derive

import (
	"sort"
	"strings"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

// SelectedCombinations builds each leg's combination key from the fare
// families chosen per segment, joined in ascending segment-id order.
func SelectedCombinations(selectedFamilies map[int]map[int]string) map[int]string {
	result := make(map[int]string, len(selectedFamilies))

	for legID, familiesBySegments := range selectedFamilies {
		segmentIDs := make([]int, 0, len(familiesBySegments))
		for segmentID := range familiesBySegments {
			segmentIDs = append(segmentIDs, segmentID)
		}
		sort.Ints(segmentIDs)

		parts := make([]string, 0, len(segmentIDs))
		for _, segmentID := range segmentIDs {
			parts = append(parts, familiesBySegments[segmentID])
		}

		result[legID] = strings.Join(parts, models.FamilyKeyGlue)
	}

	return result
}

// CombinationsAreValid reports whether fare-family selection is complete and
// purchasable: every leg with combination data has a selected combination and
// each key is listed among that leg's valid combinations. A search with no
// combination data at all is vacuously valid.
func CombinationsAreValid(selected map[int]string, combinations map[int]models.FareFamiliesCombinations) bool {
	if len(selected) != len(combinations) {
		return false
	}

	for legID, legCombinations := range combinations {
		key, ok := selected[legID]
		if !ok || !legCombinations.ValidCombinations[key] {
			return false
		}
	}

	return true
}

// FareFamiliesPrices computes the price delta of every alternative family
// choice, per leg and segment: substitute one segment's family into the
// current combination, keep the rest, and price the trial key. A trial key
// not present in the combination prices yields no delta at all — missing
// means unknown, not free.
//
// Result shape: leg id → segment id → family key → delta.
func FareFamiliesPrices(
	selected map[int]string,
	combinations map[int]models.FareFamiliesCombinations,
) map[int]map[int]map[string]money.Money {
	result := make(map[int]map[int]map[string]money.Money, len(selected))

	for legID, selectedCombination := range selected {
		legCombinations, ok := combinations[legID]
		if !ok {
			continue
		}

		currentPrice, ok := legCombinations.CombinationsPrices[selectedCombination]
		if !ok {
			currentPrice = money.Zero(money.DefaultCurrency)
		}

		selectedParts := strings.Split(selectedCombination, models.FamilyKeyGlue)

		if result[legID] == nil {
			result[legID] = make(map[int]map[string]money.Money)
		}

		for segmentKey, families := range legCombinations.FareFamiliesBySegments {
			segmentID, err := models.SegmentIDFromKey(segmentKey)
			if err != nil {
				continue
			}

			if result[legID][segmentID] == nil {
				result[legID][segmentID] = make(map[string]money.Money)
			}

			for familyIndex := range families {
				familyKey := models.FamilyKey(familyIndex)

				trialParts := make([]string, len(selectedParts))
				copy(trialParts, selectedParts)
				for len(trialParts) <= segmentID {
					trialParts = append(trialParts, "")
				}
				trialParts[segmentID] = familyKey

				trialCombination := strings.Join(trialParts, models.FamilyKeyGlue)

				if trialPrice, ok := legCombinations.CombinationsPrices[trialCombination]; ok {
					result[legID][segmentID][familyKey] = money.Money{
						Amount:   trialPrice.Amount - currentPrice.Amount,
						Currency: currentPrice.Currency,
					}
				}
			}
		}
	}

	return result
}
