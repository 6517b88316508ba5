package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/importer"
	"github.com/Gunvolt24/xmlorders/internal/usecase"
)

// Сообщения об успешном завершении.
const (
	MsgImported = "Данные успешно загружены!"
	MsgValid    = "Файл корректен"
)

var (
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	dim     = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)
	labelStyle   = lipgloss.NewStyle().Foreground(dim).Width(12)
	hintStyle    = lipgloss.NewStyle().Foreground(dim)
)

func renderSummary(s domain.ImportSummary) string {
	rows := [][2]string{
		{"файл", s.File},
		{"заказы", fmt.Sprint(s.Orders)},
		{"позиции", fmt.Sprint(s.LineItems)},
		{"покупатели", fmt.Sprint(s.Customers)},
		{"товары", fmt.Sprint(s.Products)},
		{"время", s.Duration.Round(time.Millisecond).String()},
		{"run_id", s.RunID.String()},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(labelStyle.Render(r[0]))
		sb.WriteString(r[1])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Ошибка:")+" "+err.Error())
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(w, hintStyle.Render(hint))
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, usecase.ErrSourceNotFound):
		return "укажите файл флагом --file или переменной XMLORDERS_IMPORT_FILE"
	case errors.Is(err, importer.ErrMalformedXML):
		return "файл не является корректным XML; база не изменялась"
	case errors.Is(err, domain.ErrInvalidInput):
		return "загрузка отменена, в базу ничего не записано"
	default:
		return ""
	}
}
