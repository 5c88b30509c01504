package fare

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// testTable mirrors the published Montreal tariff.
func testTable() *models.TariffTable {
	return &models.TariffTable{
		BaseFare:               decimal.NewFromFloat(3.50),
		PerKm:                  decimal.NewFromFloat(1.75),
		PerMin:                 decimal.NewFromFloat(0.65),
		GovernmentFee:          decimal.NewFromFloat(0.90),
		GSTRate:                decimal.NewFromFloat(0.05),
		QSTRate:                decimal.NewFromFloat(0.09975),
		PlatformCommissionRate: decimal.NewFromFloat(0.25),
		Currency:               "CAD",
		VehicleMultipliers: map[types.VehicleClass]decimal.Decimal{
			types.ClassSedan: decimal.NewFromFloat(1.0),
			types.ClassSUV:   decimal.NewFromFloat(1.3),
			types.ClassVan:   decimal.NewFromFloat(1.5),
		},
		Competitors: []models.Competitor{
			{ProviderName: "UberX", MultiplierVsBaseline: decimal.NewFromFloat(0.92)},
			{ProviderName: "Lyft", MultiplierVsBaseline: decimal.NewFromFloat(0.97)},
		},
		Version: "test",
	}
}

func assertMoney(t *testing.T, field string, got types.Money, want string) {
	t.Helper()
	if got.String() != want {
		t.Errorf("%s = %s, want %s", field, got.String(), want)
	}
}

func TestCompute_SedanItemization(t *testing.T) {
	calc := NewCalculator()

	fare, err := calc.Compute(10.0, 15, types.ClassSedan, testTable())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	assertMoney(t, "base_fare", fare.BaseFare, "3.50")
	assertMoney(t, "distance_charge", fare.DistanceCharge, "17.50")
	assertMoney(t, "time_charge", fare.TimeCharge, "9.75")
	assertMoney(t, "government_fee", fare.GovernmentFee, "0.90")
	assertMoney(t, "subtotal", fare.Subtotal(), "31.65")
	assertMoney(t, "gst", fare.GST, "1.58")
	assertMoney(t, "qst", fare.QST, "3.16")
	assertMoney(t, "total", fare.Total, "36.39")

	if fare.Currency != "CAD" {
		t.Errorf("currency = %s, want CAD", fare.Currency)
	}
	if fare.VehicleClass != types.ClassSedan {
		t.Errorf("vehicle_class = %s, want sedan", fare.VehicleClass)
	}
}

func TestCompute_ZeroDistance(t *testing.T) {
	calc := NewCalculator()

	fare, err := calc.Compute(0.0, 0, types.ClassSedan, testTable())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	assertMoney(t, "base_fare", fare.BaseFare, "3.50")
	assertMoney(t, "distance_charge", fare.DistanceCharge, "0.00")
	assertMoney(t, "time_charge", fare.TimeCharge, "0.00")
	assertMoney(t, "government_fee", fare.GovernmentFee, "0.90")
	assertMoney(t, "gst", fare.GST, "0.22")
	assertMoney(t, "qst", fare.QST, "0.44")
	assertMoney(t, "total", fare.Total, "5.06")
}

func TestCompute_SUVMultiplier(t *testing.T) {
	calc := NewCalculator()

	fare, err := calc.Compute(10.0, 15, types.ClassSUV, testTable())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	// multiplier scales base, distance and time; the government fee stays flat
	assertMoney(t, "base_fare", fare.BaseFare, "4.55")
	assertMoney(t, "distance_charge", fare.DistanceCharge, "22.75")
	assertMoney(t, "time_charge", fare.TimeCharge, "12.68")
	assertMoney(t, "government_fee", fare.GovernmentFee, "0.90")
	assertMoney(t, "gst", fare.GST, "2.04")
	assertMoney(t, "qst", fare.QST, "4.08")
	assertMoney(t, "total", fare.Total, "47.00")
}

func TestCompute_Rejections(t *testing.T) {
	calc := NewCalculator()
	table := testTable()

	tests := []struct {
		name    string
		km      float64
		min     int
		class   types.VehicleClass
		table   *models.TariffTable
		wantErr error
	}{
		{"negative distance", -1.0, 10, types.ClassSedan, table, types.ErrNegativeDistance},
		{"negative duration", 5.0, -1, types.ClassSedan, table, types.ErrNegativeDuration},
		{"distance too long", 500.1, 10, types.ClassSedan, table, types.ErrDistanceTooLong},
		{"unknown class", 5.0, 10, types.VehicleClass("bus"), table, types.ErrUnknownVehicleClass},
		{"nil tariff", 5.0, 10, types.ClassSedan, nil, types.ErrTariffNotLoaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Compute(tt.km, tt.min, tt.class, tt.table)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if !types.IsInvalidInput(err) && !errors.Is(err, types.ErrTariffNotLoaded) {
				t.Errorf("error must classify as INVALID_INPUT: %v", err)
			}
		})
	}
}

func TestCompute_MonotoneInDistance(t *testing.T) {
	calc := NewCalculator()
	table := testTable()

	prev := types.Money{}
	for km := 0.0; km <= 100.0; km += 2.5 {
		fare, err := calc.Compute(km, 15, types.ClassSedan, table)
		if err != nil {
			t.Fatalf("compute(%v): %v", km, err)
		}
		if fare.Total.Cmp(prev) < 0 {
			t.Fatalf("total decreased at km=%v: %s < %s", km, fare.Total, prev)
		}
		prev = fare.Total
	}
}

func TestCompute_MonotoneInVehicleClass(t *testing.T) {
	calc := NewCalculator()
	table := testTable()

	var totals []types.Money
	for _, class := range []types.VehicleClass{types.ClassSedan, types.ClassSUV, types.ClassVan} {
		fare, err := calc.Compute(12.3, 21, class, table)
		if err != nil {
			t.Fatalf("compute(%s): %v", class, err)
		}
		totals = append(totals, fare.Total)
	}

	if totals[0].Cmp(totals[1]) > 0 || totals[1].Cmp(totals[2]) > 0 {
		t.Fatalf("totals not ordered sedan ≤ suv ≤ van: %v", totals)
	}
}

func TestCompute_LineItemsSumToTotal(t *testing.T) {
	calc := NewCalculator()
	table := testTable()
	cent := decimal.NewFromFloat(0.01)

	for _, km := range []float64{0, 0.1, 1.7, 10, 33.3, 123.4} {
		for _, min := range []int{0, 1, 3, 15, 47} {
			for _, class := range types.VehicleClasses() {
				fare, err := calc.Compute(km, min, class, table)
				if err != nil {
					t.Fatalf("compute(%v,%v,%s): %v", km, min, class, err)
				}

				sum := fare.Subtotal().Add(fare.GST).Add(fare.QST)
				diff := sum.Decimal().Sub(fare.Total.Decimal()).Abs()
				if diff.GreaterThan(cent) {
					t.Errorf("compute(%v,%v,%s): items sum to %s, total %s",
						km, min, class, sum, fare.Total)
				}
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	calc := NewCalculator()
	table := testTable()

	a, err := calc.Compute(7.3, 11, types.ClassVan, table)
	if err != nil {
		t.Fatal(err)
	}
	b, err := calc.Compute(7.3, 11, types.ClassVan, table)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different itemizations:\n%+v\n%+v", a, b)
	}
}

func TestCompute_ZeroDistanceFloor(t *testing.T) {
	calc := NewCalculator()
	table := testTable()

	fare, err := calc.Compute(0, 0, types.ClassSedan, table)
	if err != nil {
		t.Fatal(err)
	}

	taxFactor := decimal.NewFromInt(1).Add(table.GSTRate).Add(table.QSTRate)
	floor := types.NewMoney(table.BaseFare.Mul(taxFactor)).
		Add(types.NewMoney(table.GovernmentFee.Mul(taxFactor)))

	if fare.Total.Cmp(floor) < 0 {
		t.Fatalf("zero-distance total %s below taxed flagfall floor %s", fare.Total, floor)
	}
}

func BenchmarkCompute(b *testing.B) {
	calc := NewCalculator()
	table := testTable()

	for b.Loop() {
		if _, err := calc.Compute(10.0, 15, types.ClassSedan, table); err != nil {
			b.Fatal(err)
		}
	}
}
