package service

import "strings"

// ShippingQuote is a shipping cost and lead-time estimate for a destination
// state
type ShippingQuote struct {
	Cost     float64 `json:"cost"`
	LeadTime string  `json:"lead_time"`
}

// Static region rate table keyed by state abbreviation. Unlisted states get
// the default quote.
var shippingRates = map[string]ShippingQuote{
	"SP": {Cost: 15.9, LeadTime: "2-3 dias úteis"},
	"RJ": {Cost: 22.5, LeadTime: "3-5 dias úteis"},
	"MG": {Cost: 24.9, LeadTime: "3-5 dias úteis"},
	"ES": {Cost: 26.5, LeadTime: "4-6 dias úteis"},
	"PR": {Cost: 21.9, LeadTime: "3-4 dias úteis"},
	"SC": {Cost: 25.9, LeadTime: "4-6 dias úteis"},
	"RS": {Cost: 28.9, LeadTime: "5-7 dias úteis"},
	"DF": {Cost: 29.9, LeadTime: "4-6 dias úteis"},
	"GO": {Cost: 30.5, LeadTime: "5-7 dias úteis"},
	"BA": {Cost: 32.9, LeadTime: "5-8 dias úteis"},
}

var defaultShippingQuote = ShippingQuote{Cost: 35.0, LeadTime: "7-10 dias úteis"}

// QuoteShipping resolves the shipping cost and lead time for a state
// abbreviation
func QuoteShipping(state string) ShippingQuote {
	if quote, ok := shippingRates[strings.ToUpper(strings.TrimSpace(state))]; ok {
		return quote
	}
	return defaultShippingQuote
}
