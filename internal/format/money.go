// Package format centralizes pt-BR display formatting so the JSON payloads
// and the exported report always agree.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL renders a monetary value with the Brazilian currency convention:
// "R$ 1.234,56".
func BRL(value float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// Date renders a time in the dd/mm/yyyy convention used across the app.
const DateLayout = "02/01/2006"

// DateTimeLayout is the convention for generation timestamps.
const DateTimeLayout = "02/01/2006 15:04:05"
