// Package currency renders catalog amounts for display and maps a currency
// code to the product price field that carries it.
package currency

import (
	"errors"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Currency string

const (
	NPR Currency = "NPR"
	USD Currency = "USD"
)

var ErrUnknownCurrency = errors.New("currency: unknown currency code")

var printer = message.NewPrinter(language.English)

// Parse validates a currency code coming from a request.
func Parse(code string) (Currency, error) {
	switch Currency(code) {
	case NPR:
		return NPR, nil
	case USD:
		return USD, nil
	default:
		return "", ErrUnknownCurrency
	}
}

// Format renders an amount for display. NPR amounts show as grouped whole
// rupees, USD with a dollar sign and exactly two decimal places.
func Format(amount float64, c Currency) (string, error) {
	switch c {
	case NPR:
		return printer.Sprintf("NPR %d", int64(math.Round(amount))), nil
	case USD:
		return printer.Sprintf("$%.2f", amount), nil
	default:
		return "", ErrUnknownCurrency
	}
}

// PriceField maps a currency to the JSON price field on a product or line item.
func PriceField(c Currency) (string, error) {
	switch c {
	case NPR:
		return "priceNPR", nil
	case USD:
		return "priceUSD", nil
	default:
		return "", ErrUnknownCurrency
	}
}
