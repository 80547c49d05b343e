package pacing

// usd is a test shorthand for amounts in the reporting currency.
func usd(v float64) Money { return M(v, USD) }
