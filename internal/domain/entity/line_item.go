package entity

import "github.com/shopspring/decimal"

// LineItem línea de un documento. El orden de inserción es el orden de impresión.
type LineItem struct {
	ID          string
	DocumentID  string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Total cantidad × precio unitario.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
