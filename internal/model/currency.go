package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var minorUnitExponent = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"BHD": 3,
	"JOD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

const defaultExponent = 2

func CurrencyExponent(currency string) int32 {
	if exp, ok := minorUnitExponent[strings.ToUpper(currency)]; ok {
		return exp
	}

	return defaultExponent
}

// MinorUnits converts a major amount to minor units. Amounts finer than the
// currency allows are rejected rather than rounded.
func MinorUnits(amount decimal.Decimal, currency string) (int64, error) {
	scaled := amount.Shift(CurrencyExponent(currency))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more precision than %s allows", amount, currency)
	}

	return scaled.IntPart(), nil
}

func MajorUnits(minor int64, currency string) decimal.Decimal {
	return decimal.New(minor, -CurrencyExponent(currency))
}
