// Package export holds the shared rendering helpers for the summary
// download adapters: label translation and display-currency conversion.
package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
)

// USDRate is the fixed IQD-per-USD display rate. Stored amounts are always
// IQD; conversion happens only while rendering.
var USDRate = decimal.NewFromInt(1550)

var (
	english = language.MustParse("en")
	arabic  = language.MustParse("ar")
	kurdish = language.MustParse("ckb") // Sorani, the app's Kurdish variant
)

func init() {
	for _, s := range []struct{ key, ar, ckb string }{
		{"Sales Summary", "ملخص المبيعات", "پوختەی فرۆشتن"},
		{"Total Sales", "إجمالي المبيعات", "کۆی فرۆشتن"},
		{"Monthly Target", "الهدف الشهري", "ئامانجی مانگانە"},
		{"Target Progress", "نسبة تحقيق الهدف", "پێشکەوتنی ئامانج"},
		{"Previous Month", "الشهر السابق", "مانگی پێشوو"},
		{"Growth", "النمو", "گەشە"},
		{"Top Product", "أفضل منتج", "باشترین بەرهەم"},
		{"Top Customer", "أفضل عميل", "باشترین کڕیار"},
		{"Rank", "الترتيب", "پلە"},
		{"Streak", "أيام متتالية", "ڕۆژە بەردەوامەکان"},
		{"Best Day", "أفضل يوم", "باشترین ڕۆژ"},
		{"Daily Sales", "المبيعات اليومية", "فرۆشتنی ڕۆژانە"},
		{"Leaderboard", "لوحة الصدارة", "خشتەی پێشەنگەکان"},
		{"Day", "اليوم", "ڕۆژ"},
		{"Amount", "المبلغ", "بڕ"},
		{"Seller", "البائع", "فرۆشیار"},
		{"Sales Count", "عدد المبيعات", "ژمارەی فرۆشتن"},
	} {
		_ = message.SetString(arabic, s.key, s.ar)
		_ = message.SetString(kurdish, s.key, s.ckb)
	}
}

// Locale translates labels and formats amounts for one export request.
type Locale struct {
	printer  *message.Printer
	currency string
}

// NewLocale builds the locale for the normalized export options.
func NewLocale(opts usecase.ExportOptions) *Locale {
	tag := english
	switch opts.Language {
	case "ar":
		tag = arabic
	case "ku":
		tag = kurdish
	}
	return &Locale{printer: message.NewPrinter(tag), currency: opts.Currency}
}

// T translates a label, falling back to the key itself for English.
func (l *Locale) T(key string) string {
	return l.printer.Sprintf(key)
}

// Currency returns the display currency code.
func (l *Locale) Currency() string {
	return l.currency
}

// Money converts a stored IQD amount to the display currency and formats it
// with the currency code.
func (l *Locale) Money(amount decimal.Decimal) string {
	if l.currency == usecase.CurrencyUSD {
		amount = amount.Div(USDRate).Round(2)
	}
	f, _ := amount.Float64()
	return l.printer.Sprintf("%.2f %s", f, l.currency)
}
