package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// DateLayout — фиксированный формат даты заказа (yyyy.MM.dd).
const DateLayout = "2006.01.02"

// ParseDate — строгий разбор даты, пробелы не допускаются.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, &domain.FormatError{Field: field, Value: raw, Err: err}
	}
	return t, nil
}

// ParseDecimal — число в инвариантной записи (разделитель — точка).
// Окружающие пробелы допускаются, разделители разрядов — нет.
func ParseDecimal(field, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &domain.FormatError{Field: field, Value: raw, Err: err}
	}
	return v, nil
}

// ParseCount — целое количество в диапазоне int32 (столбец INTEGER);
// допускаются окружающие пробелы и знак.
func ParseCount(field, raw string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, &domain.FormatError{Field: field, Value: raw, Err: err}
	}
	return int(v), nil
}
