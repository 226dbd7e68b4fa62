package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NemoTravel/results/internal/money"
)

const (
	// FamilyKeyGlue joins per-segment family keys into a combination key,
	// e.g. "F1_F2".
	FamilyKeyGlue = "_"

	segmentKeyPrefix = "S"
	familyKeyPrefix  = "F"
)

// FareFamily is a named fare tier purchasable per segment.
type FareFamily struct {
	Title string `json:"title"`
}

// FareFamiliesCombinations describes the purchasable fare-family space of
// one leg: the families offered on each segment, the price of every known
// combination, and the set of combinations that can be bought together.
type FareFamiliesCombinations struct {
	// FareFamiliesBySegments is keyed by segment key ("S0", "S1", ...).
	FareFamiliesBySegments map[string][]FareFamily `json:"fare_families_by_segments"`

	// CombinationsPrices is keyed by combination key ("F1_F2").
	CombinationsPrices map[string]money.Money `json:"combinations_prices"`

	// ValidCombinations holds the combination keys purchasable together.
	ValidCombinations map[string]bool `json:"valid_combinations"`
}

// SegmentKey formats a 0-based segment index as a segment key ("S0").
func SegmentKey(segmentID int) string {
	return fmt.Sprintf("%s%d", segmentKeyPrefix, segmentID)
}

// SegmentIDFromKey parses a segment key back into its 0-based index.
func SegmentIDFromKey(key string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, segmentKeyPrefix))
}

// FamilyKey formats a 0-based family index as a family key; index 0 maps to
// "F1", index 1 to "F2" and so on.
func FamilyKey(familyIndex int) string {
	return fmt.Sprintf("%s%d", familyKeyPrefix, familyIndex+1)
}
