package fare

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

func TestCompare_MarketEstimates(t *testing.T) {
	comp := NewComparator()

	// same trip as the sedan itemization test: pre-tax subtotal 31.65
	estimates, err := comp.Compare(10.0, 15, testTable())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	want := []struct {
		provider string
		fare     string
	}{
		{"UberX", "29.12"},
		{"Lyft", "30.70"},
	}

	if len(estimates) != len(want) {
		t.Fatalf("got %d estimates, want %d", len(estimates), len(want))
	}
	for i, w := range want {
		if estimates[i].Provider != w.provider {
			t.Errorf("estimates[%d].provider = %s, want %s (order must match the tariff)", i, estimates[i].Provider, w.provider)
		}
		if got := estimates[i].EstimatedFare.String(); got != w.fare {
			t.Errorf("%s = %s, want %s", w.provider, got, w.fare)
		}
	}
}

func TestCompare_BaselineIgnoresClassMultipliers(t *testing.T) {
	comp := NewComparator()

	table := testTable()
	table.VehicleMultipliers[types.ClassSedan] = decimal.NewFromFloat(1.2)

	// the baseline is multiplier 1.0, not whatever sedan is configured at
	estimates, err := comp.Compare(10.0, 15, table)
	if err != nil {
		t.Fatal(err)
	}
	if got := estimates[0].EstimatedFare.String(); got != "29.12" {
		t.Errorf("UberX = %s, want 29.12", got)
	}
}

func TestCompare_NoCompetitors(t *testing.T) {
	comp := NewComparator()

	table := testTable()
	table.Competitors = nil

	estimates, err := comp.Compare(10.0, 15, table)
	if err != nil {
		t.Fatal(err)
	}
	if estimates == nil || len(estimates) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", estimates)
	}
}

func TestCompare_Rejections(t *testing.T) {
	comp := NewComparator()

	if _, err := comp.Compare(10.0, 15, nil); !errors.Is(err, types.ErrTariffNotLoaded) {
		t.Errorf("nil tariff: got %v", err)
	}
	if _, err := comp.Compare(-1, 15, testTable()); !errors.Is(err, types.ErrNegativeDistance) {
		t.Errorf("negative distance: got %v", err)
	}
	if _, err := comp.Compare(10, -1, testTable()); !errors.Is(err, types.ErrNegativeDuration) {
		t.Errorf("negative duration: got %v", err)
	}
}
