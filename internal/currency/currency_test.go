package currency

import (
	"math"
	"testing"
)

func TestToUSD(t *testing.T) {
	conv := NewConverter(map[string]float64{
		"EUR": 1.1,
		"GBP": 1.3,
		"jpy": 0.0067,
	})

	tests := []struct {
		name   string
		amount float64
		code   string
		want   float64
	}{
		{"usd identity", 100, "USD", 100},
		{"known rate", 100, "EUR", 110},
		{"lowercase table key", 1000, "JPY", 6.7},
		{"lowercase lookup", 100, "gbp", 130},
		{"unknown currency falls back to rate 1", 100, "ZZZ", 100},
		{"empty code is USD", 42.5, "", 42.5},
		{"zero amount", 0, "EUR", 0},
		{"negative amount passes through", -50, "USD", -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.ToUSD(tt.amount, tt.code)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ToUSD(%v, %q) = %v, want %v", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestToUSDNeverNaN(t *testing.T) {
	conv := NewConverter(nil)

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := conv.ToUSD(amount, "USD"); got != 0 {
			t.Errorf("ToUSD(%v) = %v, want 0", amount, got)
		}
	}
}

func TestNewConverterDefaults(t *testing.T) {
	conv := NewConverter(nil)
	if got := conv.ToUSD(100, "USD"); got != 100 {
		t.Errorf("nil table: ToUSD(100, USD) = %v, want 100", got)
	}
	if got := conv.ToUSD(100, "EUR"); got != 100 {
		t.Errorf("nil table: ToUSD(100, EUR) = %v, want 100 (fallback)", got)
	}

	// A zero rate in the table must not zero out revenue.
	conv = NewConverter(map[string]float64{"EUR": 0})
	if got := conv.ToUSD(100, "EUR"); got != 100 {
		t.Errorf("zero rate: ToUSD(100, EUR) = %v, want 100", got)
	}
}

func TestParseRates(t *testing.T) {
	rates, err := ParseRates(`{"EUR": 1.1, "GBP": 1.3}`)
	if err != nil {
		t.Fatalf("ParseRates failed: %v", err)
	}
	if rates["EUR"] != 1.1 || rates["GBP"] != 1.3 {
		t.Errorf("ParseRates = %v", rates)
	}

	if rates, err := ParseRates(""); err != nil || rates != nil {
		t.Errorf("ParseRates(empty) = %v, %v, want nil, nil", rates, err)
	}

	if _, err := ParseRates("{not json"); err == nil {
		t.Error("ParseRates(garbage) expected error")
	}
}
