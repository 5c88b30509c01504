package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney_BankersRounding(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.675", "12.68"}, // half, previous digit odd: rounds up
		{"1.5825", "1.58"},  // below half: rounds down
		{"30.7005", "30.70"},
		{"2.125", "2.12"}, // half, previous digit even: stays
		{"2.135", "2.14"},
		{"0", "0.00"},
	}

	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("bad test input %q: %v", c.in, err)
		}
		got := NewMoney(d).String()
		if got != c.want {
			t.Errorf("NewMoney(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestMoney_MarshalJSON_TwoDecimalsAsNumber(t *testing.T) {
	m := MoneyFromFloat(3.5)

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "3.50" {
		t.Fatalf("expected bare number 3.50, got %s", raw)
	}

	// must round-trip as a number, not a string
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("money did not marshal as a JSON number: %v", err)
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte("17.505"), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.String() != "17.50" {
		t.Fatalf("expected 17.50 after banker's rounding, got %s", m)
	}

	if err := json.Unmarshal([]byte(`"oops"`), &m); err == nil {
		t.Fatal("expected error for non-numeric money")
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MoneyFromFloat(3.50)
	b := MoneyFromFloat(0.90)

	if got := a.Add(b).String(); got != "4.40" {
		t.Errorf("3.50 + 0.90 = %s, want 4.40", got)
	}
	if got := a.Sub(b).String(); got != "2.60" {
		t.Errorf("3.50 - 0.90 = %s, want 2.60", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering is wrong")
	}
}
