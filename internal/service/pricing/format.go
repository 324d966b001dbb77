package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice форматирует сумму для отображения: "UGX 160,000"
func FormatPrice(amount int64, currency string) string {
	p := message.NewPrinter(language.English)
	if currency == "" {
		return p.Sprintf("%d", amount)
	}
	return p.Sprintf("%s %d", currency, amount)
}
