package tariff

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/hasher"
)

// EnvConfigPath is the environment variable naming the tariff file.
const EnvConfigPath = "TARIFF_CONFIG_PATH"

var one = decimal.NewFromInt(1)

// defaultMultipliers applies when the tariff file omits vehicle_multipliers.
func defaultMultipliers() map[types.VehicleClass]decimal.Decimal {
	return map[types.VehicleClass]decimal.Decimal{
		types.ClassSedan: decimal.NewFromFloat(1.0),
		types.ClassSUV:   decimal.NewFromFloat(1.3),
		types.ClassVan:   decimal.NewFromFloat(1.5),
	}
}

// tariffFile mirrors the JSON schema with pointers, so a missing key can be
// told apart from an explicit zero.
type tariffFile struct {
	BaseFare               *decimal.Decimal           `json:"base_fare"`
	PerKm                  *decimal.Decimal           `json:"per_km"`
	PerMin                 *decimal.Decimal           `json:"per_min"`
	GovernmentFee          *decimal.Decimal           `json:"government_fee"`
	GSTRate                *decimal.Decimal           `json:"gst_rate"`
	QSTRate                *decimal.Decimal           `json:"qst_rate"`
	PlatformCommissionRate *decimal.Decimal           `json:"platform_commission_rate"`
	Currency               string                     `json:"currency"`
	VehicleMultipliers     map[string]decimal.Decimal `json:"vehicle_multipliers"`
	Competitors            []models.Competitor        `json:"competitors"`
}

// Load reads, parses and validates the tariff file at path. Any failure is a
// CONFIG_ERROR; the caller is expected to abort startup on it.
func Load(path string) (*models.TariffTable, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %s is not set", types.ErrTariffInvalid, EnvConfigPath)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", types.ErrTariffInvalid, path, err)
	}

	return Parse(raw)
}

// Parse builds a validated TariffTable from raw JSON. The table version is
// derived from the content hash, so identical files always produce the same
// version string.
func Parse(raw []byte) (*models.TariffTable, error) {
	var f tariffFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrTariffInvalid, err)
	}

	required := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"base_fare", f.BaseFare},
		{"per_km", f.PerKm},
		{"per_min", f.PerMin},
		{"government_fee", f.GovernmentFee},
		{"gst_rate", f.GSTRate},
		{"qst_rate", f.QSTRate},
		{"platform_commission_rate", f.PlatformCommissionRate},
	}
	for _, r := range required {
		if r.value == nil {
			return nil, fmt.Errorf("%w: %s", types.ErrTariffMissingKey, r.name)
		}
		if r.value.IsNegative() {
			return nil, fmt.Errorf("%w: %s", types.ErrTariffNegativeRate, r.name)
		}
	}

	for _, r := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"gst_rate", *f.GSTRate},
		{"qst_rate", *f.QSTRate},
		{"platform_commission_rate", *f.PlatformCommissionRate},
	} {
		if r.value.GreaterThanOrEqual(one) {
			return nil, fmt.Errorf("%w: %s must be a fraction below 1", types.ErrTariffInvalid, r.name)
		}
	}

	multipliers, err := parseMultipliers(f.VehicleMultipliers)
	if err != nil {
		return nil, err
	}

	for i, c := range f.Competitors {
		if c.ProviderName == "" {
			return nil, fmt.Errorf("%w: competitors[%d] has no provider_name", types.ErrTariffInvalid, i)
		}
		if !c.MultiplierVsBaseline.IsPositive() {
			return nil, fmt.Errorf("%w: competitor %s multiplier must be positive", types.ErrTariffInvalid, c.ProviderName)
		}
	}

	currency := f.Currency
	if currency == "" {
		currency = "CAD"
	}

	return &models.TariffTable{
		BaseFare:               *f.BaseFare,
		PerKm:                  *f.PerKm,
		PerMin:                 *f.PerMin,
		GovernmentFee:          *f.GovernmentFee,
		GSTRate:                *f.GSTRate,
		QSTRate:                *f.QSTRate,
		PlatformCommissionRate: *f.PlatformCommissionRate,
		Currency:               currency,
		VehicleMultipliers:     multipliers,
		Competitors:            f.Competitors,
		Version:                hasher.Short(raw),
	}, nil
}

// parseMultipliers checks the multiplier map covers exactly the known vehicle
// classes. An absent map falls back to the published defaults.
func parseMultipliers(raw map[string]decimal.Decimal) (map[types.VehicleClass]decimal.Decimal, error) {
	if raw == nil {
		return defaultMultipliers(), nil
	}

	out := make(map[types.VehicleClass]decimal.Decimal, len(raw))
	for name, m := range raw {
		class := types.VehicleClass(name)
		if !class.IsValid() {
			return nil, fmt.Errorf("%w: unknown vehicle class %q in vehicle_multipliers", types.ErrTariffInvalid, name)
		}
		if !m.IsPositive() {
			return nil, fmt.Errorf("%w: vehicle_multipliers.%s must be positive", types.ErrTariffNegativeRate, name)
		}
		out[class] = m
	}

	for _, class := range types.VehicleClasses() {
		if _, ok := out[class]; !ok {
			return nil, fmt.Errorf("%w: vehicle_multipliers.%s", types.ErrTariffMissingKey, class)
		}
	}

	return out, nil
}
