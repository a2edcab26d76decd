package entity

import "github.com/shopspring/decimal"

// Precisioni fisse: quantità a 3 decimali (NUMERIC(14,3)), importi a 2 (NUMERIC(10,2)).
const (
	QtyPrecision   = 3
	MoneyPrecision = 2
)

// QuantizeQty arrotonda una quantità alla precisione di magazzino.
func QuantizeQty(d decimal.Decimal) decimal.Decimal {
	return d.Round(QtyPrecision)
}

// QuantizeMoney arrotonda un importo alla precisione monetaria.
func QuantizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPrecision)
}
