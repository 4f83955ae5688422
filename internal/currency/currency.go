// Package currency normalizes monetary amounts to USD.
//
// Every monetary figure in the balance engine passes through a Converter
// before arithmetic, so USD is the single settlement currency everywhere
// downstream. The rate table is plain data handed to NewConverter; there is
// no package-level state, which keeps tests free to use whatever table they
// want.
package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Converter converts amounts in known currencies to USD.
type Converter struct {
	rates map[string]float64
}

// NewConverter builds a Converter from a code -> USD-rate table.
// A nil or empty table falls back to {USD: 1}.
func NewConverter(rates map[string]float64) *Converter {
	normalized := map[string]float64{"USD": 1}
	for code, rate := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		normalized[code] = rate
	}
	return &Converter{rates: normalized}
}

// ToUSD converts amount from the given currency to USD.
//
// An unknown or empty currency code is treated as already-USD (rate 1), not
// an error: stores report in currencies the rate table may lag behind, and a
// best-effort figure beats a failed statement. NaN or infinite amounts
// convert to 0 so the result is always a usable number.
func (c *Converter) ToUSD(amount float64, code string) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || rate == 0 {
		rate = 1
	}
	return amount * rate
}

// ParseRates parses a JSON object of currency code -> USD rate, the format
// the CURRENCY_RATES environment variable carries.
func ParseRates(s string) (map[string]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var rates map[string]float64
	if err := json.Unmarshal([]byte(s), &rates); err != nil {
		return nil, fmt.Errorf("failed to parse currency rates: %w", err)
	}
	return rates, nil
}
