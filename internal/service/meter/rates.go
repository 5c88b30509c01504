package meter

import (
	"time"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Quebec CTQ street-hail rate card. These are regulated amounts published by
// the Commission des transports du Québec; they change by decree, not by
// tariff file, which is why they are compiled in rather than loaded.
var (
	dayRates = models.MeterRates{
		Period:            types.PeriodDay,
		BaseFare:          types.MoneyFromFloat(5.15),
		PerKm:             types.MoneyFromFloat(2.05),
		WaitingPerMin:     types.MoneyFromFloat(0.77),
		SpeedThresholdKmh: 22.537,
	}

	nightRates = models.MeterRates{
		Period:            types.PeriodNight,
		BaseFare:          types.MoneyFromFloat(5.75),
		PerKm:             types.MoneyFromFloat(2.35),
		WaitingPerMin:     types.MoneyFromFloat(0.89),
		SpeedThresholdKmh: 22.723,
	}
)

// governmentFee is the flat per-trip regulatory charge. The published base
// fares already include it; breakdowns report it as a line item only.
var governmentFee = types.MoneyFromFloat(0.90)

const (
	nightStartHour = 23
	dayStartHour   = 5
)

// RatesFor returns the rate card in force at t. Day rates run 05:00 to 22:59
// local time, night rates otherwise. The card is locked in at meter start and
// never changes mid-trip.
func RatesFor(t time.Time) models.MeterRates {
	h := t.Hour()
	if h >= dayStartHour && h < nightStartHour {
		return dayRates
	}
	return nightRates
}

// RateCards returns the published day and night cards with the statutory fee,
// for the public rates endpoint.
func RateCards() (day, night models.MeterRates, fee types.Money) {
	return dayRates, nightRates, governmentFee
}
