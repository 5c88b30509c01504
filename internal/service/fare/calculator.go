package fare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// maxDistanceKm bounds a single trip. Anything above it is a coordinate or
// routing mistake, not a real booking.
const maxDistanceKm = 500.0

// Calculator produces the itemized fare for a trip under a given tariff
// revision. All arithmetic runs on decimals with half-to-even rounding, and
// each charge line is rounded independently before summing, so the printed
// line items always add up to the printed total.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute builds the fare breakdown for distanceKm and durationMin of vehicle
// class class. The vehicle multiplier scales the base, distance and time
// charges; the government fee is a flat regulatory pass-through and is never
// multiplied. GST and QST both apply to the same pre-tax subtotal (QST does
// not compound on GST).
func (c *Calculator) Compute(distanceKm float64, durationMin int, class types.VehicleClass, tariff *models.TariffTable) (*models.FareItemization, error) {
	if tariff == nil {
		return nil, types.ErrTariffNotLoaded
	}
	if distanceKm < 0 {
		return nil, fmt.Errorf("%w: %.2f km", types.ErrNegativeDistance, distanceKm)
	}
	if durationMin < 0 {
		return nil, fmt.Errorf("%w: %d min", types.ErrNegativeDuration, durationMin)
	}
	if distanceKm > maxDistanceKm {
		return nil, fmt.Errorf("%w: %.1f km exceeds %.0f km", types.ErrDistanceTooLong, distanceKm, maxDistanceKm)
	}

	multiplier, ok := tariff.Multiplier(class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownVehicleClass, class)
	}

	km := decimal.NewFromFloat(distanceKm)
	min := decimal.NewFromInt(int64(durationMin))

	base := types.NewMoney(tariff.BaseFare.Mul(multiplier))
	distCharge := types.NewMoney(km.Mul(tariff.PerKm).Mul(multiplier))
	timeCharge := types.NewMoney(min.Mul(tariff.PerMin).Mul(multiplier))
	govFee := types.NewMoney(tariff.GovernmentFee)

	subtotal := base.Add(distCharge).Add(timeCharge).Add(govFee)
	gst := types.NewMoney(subtotal.Decimal().Mul(tariff.GSTRate))
	qst := types.NewMoney(subtotal.Decimal().Mul(tariff.QSTRate))
	total := types.NewMoney(subtotal.Add(gst).Add(qst).Decimal())

	return &models.FareItemization{
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		BaseFare:       base,
		DistanceCharge: distCharge,
		TimeCharge:     timeCharge,
		GovernmentFee:  govFee,
		GST:            gst,
		QST:            qst,
		Total:          total,
		VehicleClass:   class,
		Currency:       tariff.Currency,
	}, nil
}
