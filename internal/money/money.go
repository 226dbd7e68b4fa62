package money

// DefaultCurrency is used for derived placeholder prices when no other
// currency is available from the data itself.
const DefaultCurrency = "RUB"

// Money is an amount in a single currency. Arithmetic between two values
// assumes equal currency; no conversion is ever performed and the result
// inherits the receiver's currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Zero returns a zero-amount Money in the given currency.
func Zero(currency string) Money {
	return Money{Amount: 0, Currency: currency}
}

// Add returns m plus other's amount, keeping m's currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// AddAmount returns m with the given raw amount added.
func (m Money) AddAmount(amount float64) Money {
	return Money{Amount: m.Amount + amount, Currency: m.Currency}
}

// Sub returns m minus other's amount, keeping m's currency.
func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}
}

// Less reports whether m's amount is strictly smaller than other's.
func (m Money) Less(other Money) bool {
	return m.Amount < other.Amount
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}
