package models

import (
	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Competitor is one entry of the market comparison list. Order in the tariff
// file is the order the client renders.
type Competitor struct {
	ProviderName         string          `json:"provider_name"`
	MultiplierVsBaseline decimal.Decimal `json:"multiplier_vs_baseline"`
}

// TariffTable is the process-wide pricing configuration. It is loaded once at
// startup from TARIFF_CONFIG_PATH, validated, and never mutated afterwards;
// reloads swap in a fresh copy atomically.
type TariffTable struct {
	BaseFare               decimal.Decimal `json:"base_fare"`
	PerKm                  decimal.Decimal `json:"per_km"`
	PerMin                 decimal.Decimal `json:"per_min"`
	GovernmentFee          decimal.Decimal `json:"government_fee"`
	GSTRate                decimal.Decimal `json:"gst_rate"`
	QSTRate                decimal.Decimal `json:"qst_rate"`
	PlatformCommissionRate decimal.Decimal `json:"platform_commission_rate"`
	Currency               string          `json:"currency"`

	VehicleMultipliers map[types.VehicleClass]decimal.Decimal `json:"vehicle_multipliers"`
	Competitors        []Competitor                           `json:"competitors"`

	// Version identifies the loaded file revision (content hash).
	Version string `json:"version"`
}

// Multiplier returns the multiplier for class, or false for unknown classes.
func (t *TariffTable) Multiplier(class types.VehicleClass) (decimal.Decimal, bool) {
	m, ok := t.VehicleMultipliers[class]
	return m, ok
}
