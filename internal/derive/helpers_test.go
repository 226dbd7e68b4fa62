package derive

import (
	"time"

	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/money"
)

func rub(amount float64) money.Money {
	return money.Money{Amount: amount, Currency: "RUB"}
}

func testFlight(id int, uid string, amount float64) models.Flight {
	return models.Flight{
		ID:  id,
		UID: uid,
		Segments: []models.Segment{
			{
				DepAirport:   models.Airport{IATA: "SVO"},
				ArrAirport:   models.Airport{IATA: "LED"},
				DepTime:      time.Date(2018, 6, 24, 10, 0, 0, 0, time.UTC),
				ArrTime:      time.Date(2018, 6, 24, 11, 30, 0, 0, time.UTC),
				Airline:      models.Airline{IATA: "SU"},
				FlightNumber: uid,
				FlightTime:   90,
			},
		},
		TotalPrice: rub(amount),
	}
}

func poolOf(flights ...models.Flight) map[int]models.Flight {
	pool := make(map[int]models.Flight, len(flights))
	for _, flight := range flights {
		pool[flight.ID] = flight
	}
	return pool
}
