package currency

import (
	"maps"
	"slices"
)

// supported is the set of ISO-4217 codes the tool accepts. The provider
// may quote more, but pairs are validated against this list up front so
// typos fail before any network call.
var supported = map[string]string{
	"AED": "UAE Dirham",
	"ALL": "Albanian Lek",
	"AUD": "Australian Dollar",
	"BAM": "Bosnia-Herzegovina Convertible Mark",
	"BDT": "Bangladeshi Taka",
	"BGN": "Bulgarian Lev",
	"BND": "Brunei Dollar",
	"BRL": "Brazilian Real",
	"BTN": "Bhutanese Ngultrum",
	"BWP": "Botswana Pula",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CLP": "Chilean Peso",
	"CNY": "Chinese Yuan",
	"COP": "Colombian Peso",
	"CZK": "Czech Koruna",
	"DKK": "Danish Krone",
	"DZD": "Algerian Dinar",
	"EGP": "Egyptian Pound",
	"ETB": "Ethiopian Birr",
	"EUR": "Euro",
	"GBP": "British Pound",
	"GHS": "Ghanaian Cedi",
	"HKD": "Hong Kong Dollar",
	"HRK": "Croatian Kuna",
	"HUF": "Hungarian Forint",
	"IDR": "Indonesian Rupiah",
	"ILS": "Israeli Shekel",
	"INR": "Indian Rupee",
	"ISK": "Icelandic Krona",
	"JPY": "Japanese Yen",
	"KES": "Kenyan Shilling",
	"KHR": "Cambodian Riel",
	"KRW": "South Korean Won",
	"LAK": "Lao Kip",
	"LKR": "Sri Lankan Rupee",
	"MAD": "Moroccan Dirham",
	"MKD": "Macedonian Denar",
	"MMK": "Myanmar Kyat",
	"MVR": "Maldivian Rufiyaa",
	"MXN": "Mexican Peso",
	"MYR": "Malaysian Ringgit",
	"NAD": "Namibian Dollar",
	"NGN": "Nigerian Naira",
	"NOK": "Norwegian Krone",
	"NPR": "Nepalese Rupee",
	"NZD": "New Zealand Dollar",
	"PHP": "Philippine Peso",
	"PKR": "Pakistani Rupee",
	"PLN": "Polish Zloty",
	"RON": "Romanian Leu",
	"RUB": "Russian Ruble",
	"SAR": "Saudi Riyal",
	"SEK": "Swedish Krona",
	"SGD": "Singapore Dollar",
	"THB": "Thai Baht",
	"TND": "Tunisian Dinar",
	"TRY": "Turkish Lira",
	"TZS": "Tanzanian Shilling",
	"UAH": "Ukrainian Hryvnia",
	"UGX": "Ugandan Shilling",
	"USD": "US Dollar",
	"VND": "Vietnamese Dong",
	"ZAR": "South African Rand",
	"ZMW": "Zambian Kwacha",
}

// Supported reports whether code is a known ISO-4217 code. The code must
// already be uppercase.
func Supported(code string) bool {
	_, ok := supported[code]
	return ok
}

// Name returns the human-readable currency name, or "" for unknown codes.
func Name(code string) string { return supported[code] }

// Codes returns all supported codes, sorted.
func Codes() []string {
	return slices.Sorted(maps.Keys(supported))
}
