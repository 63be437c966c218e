package entity

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals montos calculados que imprimen ambos renderizadores.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	LateFee        decimal.Decimal
	TotalDue       decimal.Decimal // Total + LateFee; solo relevante si HasLateFee
}

// HasDiscount indica si se imprime la línea de descuento.
func (t Totals) HasDiscount() bool { return t.DiscountAmount.IsPositive() }

// HasLateFee indica si "Total Due" reemplaza a "Total".
func (t Totals) HasLateFee() bool { return t.LateFee.IsPositive() }

// ComputeTotals calcula subtotal, descuento, impuesto y total.
//
//	subtotal = Σ cantidad × precio (o el subtotal guardado si no hay líneas)
//	descuento = valor (amount) | subtotal × valor / 100 (percentage)
//	total = subtotal − descuento + impuesto
//	total due = total + recargo por mora (solo invoices con recargo > 0)
func ComputeTotals(doc *Document, items []LineItem) Totals {
	subtotal := doc.Subtotal
	if len(items) > 0 {
		subtotal = decimal.Zero
		for _, it := range items {
			subtotal = subtotal.Add(it.Total())
		}
	}

	discount := decimal.Zero
	if doc.DiscountValue.IsPositive() {
		if doc.DiscountType == DiscountAmount {
			discount = doc.DiscountValue
		} else {
			discount = subtotal.Mul(doc.DiscountValue).Div(hundred)
		}
	}

	total := subtotal.Sub(discount).Add(doc.TaxAmount)
	t := Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Tax:            doc.TaxAmount,
		Total:          total,
		TotalDue:       total,
	}
	if doc.Kind == KindInvoice && doc.LateFeeAmount.IsPositive() {
		t.LateFee = doc.LateFeeAmount
		t.TotalDue = total.Add(doc.LateFeeAmount)
	}
	return t
}
