// Package parser maps a completed search response into the write-once record
// set the derivation core consumes. It performs no I/O: the response document
// has already been fetched by the search backend collaborator.
package parser

import (
	json "github.com/goccy/go-json"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
	"github.com/NemoTravel/results/internal/timezone"
)

type searchResponse struct {
	SearchID     int                  `json:"search_id"`
	Currency     string               `json:"currency"`
	Legs         []legInfo            `json:"legs"`
	Flights      []flightResult       `json:"flights"`
	FlightsRT    []flightResult       `json:"flights_rt,omitempty"`
	FareFamilies []combinationsResult `json:"fare_families,omitempty"`
}

type legInfo struct {
	ID        int    `json:"id"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Date      string `json:"date"`
}

type flightResult struct {
	ID            int               `json:"id"`
	UID           string            `json:"uid"`
	LegID         int               `json:"leg_id"`
	SegmentGroups [][]segmentResult `json:"segment_groups"`
	Price         priceResult       `json:"price"`
}

type segmentResult struct {
	DepAirport   airportResult `json:"dep_airport"`
	ArrAirport   airportResult `json:"arr_airport"`
	DepTime      string        `json:"dep_time"`
	ArrTime      string        `json:"arr_time"`
	Airline      airlineResult `json:"airline"`
	FlightNumber string        `json:"flight_number"`
	Aircraft     string        `json:"aircraft"`
	FlightTime   int           `json:"flight_time_minutes"`
	WaitingTime  int           `json:"waiting_time_minutes"`
}

type airportResult struct {
	IATA string `json:"IATA"`
	Name string `json:"name"`
	City string `json:"city"`
}

type airlineResult struct {
	IATA string `json:"IATA"`
	Name string `json:"name"`
}

type priceResult struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type combinationsResult struct {
	LegID                  int                           `json:"leg_id"`
	FareFamiliesBySegments map[string][]fareFamilyResult `json:"fare_families_by_segments"`
	CombinationsPrices     map[string]priceResult        `json:"combinations_prices"`
	ValidCombinations      []string                      `json:"valid_combinations"`
}

type fareFamilyResult struct {
	Title string `json:"title"`
}

// Parse decodes a search response document into a snapshot. Flights whose
// segments cannot be normalized are skipped rather than failing the whole
// response.
func Parse(data []byte) (*models.SearchSnapshot, error) {
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	if len(resp.Legs) == 0 {
		return nil, models.ErrEmptySearchResults
	}

	currency := resp.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}

	snapshot := &models.SearchSnapshot{
		SearchID:      resp.SearchID,
		Legs:          make([]models.Leg, 0, len(resp.Legs)),
		Flights:       make(map[int]models.Flight, len(resp.Flights)),
		FlightsByLegs: make(map[int][]int, len(resp.Legs)),
		FlightsRT:     models.NewRTPool(),
		FareFamilies:  make(map[int]models.FareFamiliesCombinations, len(resp.FareFamilies)),
		Currency:      currency,
	}

	for _, leg := range resp.Legs {
		snapshot.Legs = append(snapshot.Legs, models.Leg{
			ID:        leg.ID,
			Departure: leg.Departure,
			Arrival:   leg.Arrival,
			Date:      leg.Date,
		})
		snapshot.FlightsByLegs[leg.ID] = []int{}
	}

	for _, result := range resp.Flights {
		flight, err := normalize(result, currency)
		if err != nil {
			continue
		}

		snapshot.Flights[flight.ID] = flight
		snapshot.FlightsByLegs[result.LegID] = append(snapshot.FlightsByLegs[result.LegID], flight.ID)
	}

	// RT fares keep response order; substitution scans depend on it.
	for _, result := range resp.FlightsRT {
		flight, err := normalize(result, currency)
		if err != nil {
			continue
		}
		flight.IsRT = true

		snapshot.FlightsRT.Add(flight.UID, flight)
	}

	for _, combinations := range resp.FareFamilies {
		snapshot.FareFamilies[combinations.LegID] = normalizeCombinations(combinations, currency)
	}

	return snapshot, nil
}

func normalize(result flightResult, currency string) (models.Flight, error) {
	groups := make([][]models.Segment, 0, len(result.SegmentGroups))
	segments := make([]models.Segment, 0)

	for _, group := range result.SegmentGroups {
		normalized := make([]models.Segment, 0, len(group))
		for _, segment := range group {
			s, err := normalizeSegment(segment)
			if err != nil {
				return models.Flight{}, err
			}
			normalized = append(normalized, s)
		}
		groups = append(groups, normalized)
		segments = append(segments, normalized...)
	}

	priceCurrency := result.Price.Currency
	if priceCurrency == "" {
		priceCurrency = currency
	}

	return models.Flight{
		ID:            result.ID,
		UID:           result.UID,
		Segments:      segments,
		SegmentGroups: groups,
		TotalPrice:    money.Money{Amount: result.Price.Amount, Currency: priceCurrency},
		IsRT:          len(groups) > 1,
	}, nil
}

func normalizeSegment(segment segmentResult) (models.Segment, error) {
	depTime, err := timezone.ParseAirportTime(segment.DepTime, segment.DepAirport.IATA)
	if err != nil {
		return models.Segment{}, err
	}

	arrTime, err := timezone.ParseAirportTime(segment.ArrTime, segment.ArrAirport.IATA)
	if err != nil {
		return models.Segment{}, err
	}

	depTime = timezone.ConvertToAirportTime(depTime, segment.DepAirport.IATA)
	arrTime = timezone.ConvertToAirportTime(arrTime, segment.ArrAirport.IATA)

	return models.Segment{
		DepAirport: models.Airport{
			IATA: segment.DepAirport.IATA,
			Name: segment.DepAirport.Name,
			City: segment.DepAirport.City,
		},
		ArrAirport: models.Airport{
			IATA: segment.ArrAirport.IATA,
			Name: segment.ArrAirport.Name,
			City: segment.ArrAirport.City,
		},
		DepTime: depTime,
		ArrTime: arrTime,
		Airline: models.Airline{
			IATA: segment.Airline.IATA,
			Name: segment.Airline.Name,
		},
		FlightNumber: segment.FlightNumber,
		Aircraft:     segment.Aircraft,
		FlightTime:   segment.FlightTime,
		WaitingTime:  segment.WaitingTime,
	}, nil
}

func normalizeCombinations(result combinationsResult, currency string) models.FareFamiliesCombinations {
	combinations := models.FareFamiliesCombinations{
		FareFamiliesBySegments: make(map[string][]models.FareFamily, len(result.FareFamiliesBySegments)),
		CombinationsPrices:     make(map[string]money.Money, len(result.CombinationsPrices)),
		ValidCombinations:      make(map[string]bool, len(result.ValidCombinations)),
	}

	for segmentKey, families := range result.FareFamiliesBySegments {
		normalized := make([]models.FareFamily, 0, len(families))
		for _, family := range families {
			normalized = append(normalized, models.FareFamily{Title: family.Title})
		}
		combinations.FareFamiliesBySegments[segmentKey] = normalized
	}

	for key, price := range result.CombinationsPrices {
		priceCurrency := price.Currency
		if priceCurrency == "" {
			priceCurrency = currency
		}
		combinations.CombinationsPrices[key] = money.Money{Amount: price.Amount, Currency: priceCurrency}
	}

	for _, key := range result.ValidCombinations {
		combinations.ValidCombinations[key] = true
	}

	return combinations
}
