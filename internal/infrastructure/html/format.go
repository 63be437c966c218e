package html

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencyFormatter formatea montos según el locale del renderizador
// ("$1,234.50" en en-US, "$1.234,50" en es-CO).
type currencyFormatter struct {
	printer *message.Printer
	symbol  string
}

func newCurrencyFormatter(locale, symbol string) currencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if symbol == "" {
		symbol = "$"
	}
	return currencyFormatter{printer: message.NewPrinter(tag), symbol: symbol}
}

func (f currencyFormatter) format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	n := f.printer.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return sign + f.symbol + n
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// formatRange "Mar 5, 2024 9:00 AM - 11:30 AM"; la fecha final se repite solo si cambia de día.
func formatRange(start, end *time.Time) string {
	const day, clock = "Jan 2, 2006", "3:04 PM"
	switch {
	case start == nil && end == nil:
		return ""
	case end == nil:
		return start.Format(day + " " + clock)
	case start == nil:
		return "until " + end.Format(day+" "+clock)
	}
	out := start.Format(day+" "+clock) + " - "
	if start.Format(day) == end.Format(day) {
		return out + end.Format(clock)
	}
	return out + end.Format(day+" "+clock)
}

// humanize "in_progress" → "In Progress".
// Un Caser guarda estado, así que se crea uno por llamada.
func humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// statusColor color del badge de estado.
func statusColor(status string) string {
	switch status {
	case "completed", "paid", "accepted", "approved":
		return "#16a34a"
	case "in_progress", "partially_paid":
		return "#d97706"
	case "cancelled", "overdue", "declined", "rejected":
		return "#dc2626"
	case "sent", "scheduled":
		return "#2563eb"
	default:
		return "#6b7280"
	}
}

// priorityColor color de la etiqueta de prioridad de un job.
func priorityColor(priority string) string {
	switch priority {
	case "urgent", "emergency":
		return "#dc2626"
	case "high":
		return "#ea580c"
	case "medium", "normal":
		return "#2563eb"
	default:
		return "#6b7280"
	}
}
