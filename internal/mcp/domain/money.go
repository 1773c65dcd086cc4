package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// milliunitsPerUnit is the upstream's fixed currency scale: 1000 milliunits
// equal one currency unit.
const milliunitsPerUnit = 1000

// currencyPrinter renders grouped decimal amounts ("1,234.56").
var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// milliunitsFromAmount converts a currency amount to milliunits, rounding to
// the nearest milliunit.
func milliunitsFromAmount(amount float64) int64 {
	return int64(math.Round(amount * milliunitsPerUnit))
}

// amountFromMilliunits converts milliunits to currency units.
func amountFromMilliunits(milliunits int64) float64 {
	return float64(milliunits) / milliunitsPerUnit
}

// formatMilliunits renders milliunits as a currency display string such as
// "$1,234.56" ("$-1,234.56" for outflows).
func formatMilliunits(milliunits int64) string {
	return currencyPrinter.Sprintf("$%.2f", amountFromMilliunits(milliunits))
}

// absMilliunits returns the magnitude of a milliunit amount.
func absMilliunits(milliunits int64) int64 {
	if milliunits < 0 {
		return -milliunits
	}
	return milliunits
}
