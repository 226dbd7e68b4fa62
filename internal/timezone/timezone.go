package timezone

import (
	"strings"
	"time"
)

var (
	MSK  *time.Location // UTC+3 - Moscow time (most of European Russia)
	KALT *time.Location // UTC+2 - Kaliningrad
	SAMT *time.Location // UTC+4 - Samara
	YEKT *time.Location // UTC+5 - Yekaterinburg
	OMST *time.Location // UTC+6 - Omsk
	KRAT *time.Location // UTC+7 - Krasnoyarsk
	IRKT *time.Location // UTC+8 - Irkutsk
	YAKT *time.Location // UTC+9 - Yakutsk
	VLAT *time.Location // UTC+10 - Vladivostok
	MAGT *time.Location // UTC+11 - Magadan
	PETT *time.Location // UTC+12 - Kamchatka
)

func init() {
	MSK = time.FixedZone("MSK", 3*60*60)
	KALT = time.FixedZone("KALT", 2*60*60)
	SAMT = time.FixedZone("SAMT", 4*60*60)
	YEKT = time.FixedZone("YEKT", 5*60*60)
	OMST = time.FixedZone("OMST", 6*60*60)
	KRAT = time.FixedZone("KRAT", 7*60*60)
	IRKT = time.FixedZone("IRKT", 8*60*60)
	YAKT = time.FixedZone("YAKT", 9*60*60)
	VLAT = time.FixedZone("VLAT", 10*60*60)
	MAGT = time.FixedZone("MAGT", 11*60*60)
	PETT = time.FixedZone("PETT", 12*60*60)
}

var airportTimezones = map[string]string{
	// MSK (UTC+3) - European Russia
	"SVO": "MSK", // Moscow - Sheremetyevo
	"DME": "MSK", // Moscow - Domodedovo
	"VKO": "MSK", // Moscow - Vnukovo
	"ZIA": "MSK", // Moscow - Zhukovsky
	"LED": "MSK", // Saint Petersburg - Pulkovo
	"AER": "MSK", // Sochi
	"KZN": "MSK", // Kazan
	"ROV": "MSK", // Rostov-on-Don - Platov
	"KRR": "MSK", // Krasnodar - Pashkovsky
	"GSV": "MSK", // Saratov - Gagarin
	"RTW": "MSK", // Saratov - Central
	"VOG": "MSK", // Volgograd
	"MRV": "MSK", // Mineralnye Vody
	"NBC": "MSK", // Nizhnekamsk - Begishevo
	"GOJ": "MSK", // Nizhny Novgorod - Strigino
	"MMK": "MSK", // Murmansk
	"ARH": "MSK", // Arkhangelsk - Talagi

	// KALT (UTC+2)
	"KGD": "KALT", // Kaliningrad - Khrabrovo

	// SAMT (UTC+4)
	"KUF": "SAMT", // Samara - Kurumoch
	"ASF": "SAMT", // Astrakhan
	"ULV": "SAMT", // Ulyanovsk - Baratayevka

	// YEKT (UTC+5)
	"SVX": "YEKT", // Yekaterinburg - Koltsovo
	"CEK": "YEKT", // Chelyabinsk
	"PEE": "YEKT", // Perm - Bolshoye Savino
	"UFA": "YEKT", // Ufa
	"TJM": "YEKT", // Tyumen - Roshchino

	// OMST (UTC+6)
	"OMS": "OMST", // Omsk - Tsentralny

	// KRAT (UTC+7)
	"OVB": "KRAT", // Novosibirsk - Tolmachevo
	"KJA": "KRAT", // Krasnoyarsk - Yemelyanovo
	"KEJ": "KRAT", // Kemerovo
	"TOF": "KRAT", // Tomsk - Bogashevo
	"BAX": "KRAT", // Barnaul

	// IRKT (UTC+8)
	"IKT": "IRKT", // Irkutsk
	"UUD": "IRKT", // Ulan-Ude - Baikal

	// YAKT (UTC+9)
	"YKS": "YAKT", // Yakutsk
	"HTA": "YAKT", // Chita - Kadala
	"BQS": "YAKT", // Blagoveshchensk - Ignatyevo

	// VLAT (UTC+10)
	"VVO": "VLAT", // Vladivostok - Knevichi
	"KHV": "VLAT", // Khabarovsk - Novy

	// MAGT (UTC+11)
	"GDX": "MAGT", // Magadan - Sokol
	"UUS": "MAGT", // Yuzhno-Sakhalinsk

	// PETT (UTC+12)
	"PKC": "PETT", // Petropavlovsk-Kamchatsky - Yelizovo
}

func GetTimezoneByAirport(code string) string {
	code = strings.ToUpper(code)
	if tz, ok := airportTimezones[code]; ok {
		return tz
	}
	return "MSK"
}

func GetLocationByAirport(code string) *time.Location {
	switch GetTimezoneByAirport(code) {
	case "KALT":
		return KALT
	case "SAMT":
		return SAMT
	case "YEKT":
		return YEKT
	case "OMST":
		return OMST
	case "KRAT":
		return KRAT
	case "IRKT":
		return IRKT
	case "YAKT":
		return YAKT
	case "VLAT":
		return VLAT
	case "MAGT":
		return MAGT
	case "PETT":
		return PETT
	default:
		return MSK
	}
}

// ParseAirportTime parses a timestamp as airport-local time. Timestamps that
// carry their own offset keep it; bare timestamps are interpreted in the
// airport's zone so time-of-day filters bucket by local clock.
func ParseAirportTime(timeStr, airportCode string) (time.Time, error) {
	withOffset := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
	}
	for _, format := range withOffset {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := GetLocationByAirport(airportCode)
	bare := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
	}
	for _, format := range bare {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

func ConvertToAirportTime(t time.Time, airportCode string) time.Time {
	return t.In(GetLocationByAirport(airportCode))
}
