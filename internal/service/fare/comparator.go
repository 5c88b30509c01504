package fare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Comparator derives advisory market reference prices from the tariff's
// competitor list. Figures are approximations for display next to our quote;
// nothing downstream may branch on them.
type Comparator struct{}

func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare estimates each configured competitor's price for the same trip. The
// reference is our pre-tax subtotal at vehicle multiplier 1.0, regardless of
// the class actually requested, scaled by the competitor's published
// multiplier and rounded half-to-even. Output order matches the tariff file.
func (c *Comparator) Compare(distanceKm float64, durationMin int, tariff *models.TariffTable) ([]models.CompetitorEstimate, error) {
	if tariff == nil {
		return nil, types.ErrTariffNotLoaded
	}
	if distanceKm < 0 {
		return nil, fmt.Errorf("%w: %.2f km", types.ErrNegativeDistance, distanceKm)
	}
	if durationMin < 0 {
		return nil, fmt.Errorf("%w: %d min", types.ErrNegativeDuration, durationMin)
	}
	if len(tariff.Competitors) == 0 {
		return []models.CompetitorEstimate{}, nil
	}

	km := decimal.NewFromFloat(distanceKm)
	min := decimal.NewFromInt(int64(durationMin))

	base := types.NewMoney(tariff.BaseFare)
	distCharge := types.NewMoney(km.Mul(tariff.PerKm))
	timeCharge := types.NewMoney(min.Mul(tariff.PerMin))
	govFee := types.NewMoney(tariff.GovernmentFee)
	subtotal := base.Add(distCharge).Add(timeCharge).Add(govFee).Decimal()

	out := make([]models.CompetitorEstimate, 0, len(tariff.Competitors))
	for _, comp := range tariff.Competitors {
		out = append(out, models.CompetitorEstimate{
			Provider:      comp.ProviderName,
			EstimatedFare: types.NewMoney(subtotal.Mul(comp.MultiplierVsBaseline)),
		})
	}

	return out, nil
}
