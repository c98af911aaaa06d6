// Package money formatea importes y cantidades para mostrarlos a personas.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format importe con separador de miles y dos decimales: 12,345.50 → "$12,345.50".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// Quantity cantidad con separador de miles y hasta dos decimales.
func Quantity(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
