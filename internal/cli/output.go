package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// timeLayout — формат вывода дат.
const timeLayout = "2006-01-02 15:04:05"

// Output управляет форматированием вывода CLI.
type Output struct {
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для ошибок
	renderer *lipgloss.Renderer
}

// NewOutput создаёт Output. nil-писатели заменяются на stdout/stderr.
func NewOutput(w, errW io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}
	return &Output{
		w:        w,
		errW:     errW,
		renderer: lipgloss.NewRenderer(w),
	}
}

// Println выводит строку в stdout.
func (o *Output) Println(a ...any) {
	fmt.Fprintln(o.w, a...)
}

// Printf выводит форматированную строку в stdout.
func (o *Output) Printf(format string, a ...any) {
	fmt.Fprintf(o.w, format, a...)
}

// Section выводит заголовок раздела: "=== TITLE ===" с пустыми строками вокруг.
func (o *Output) Section(title string) {
	header := o.renderer.NewStyle().Bold(true).Render("=== " + title + " ===")
	fmt.Fprintf(o.w, "\n%s\n\n", header)
}

// Banner выводит заголовок в рамке.
func (o *Output) Banner(title string) {
	box := o.renderer.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 3).
		Bold(true).
		Render(title)
	fmt.Fprintf(o.w, "\n%s\n\n", box)
}

// Success выводит сообщение об успехе.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.w, "✅ "+msg)
}

// Warn выводит предупреждение.
func (o *Output) Warn(msg string) {
	fmt.Fprintln(o.w, "⚠️ "+msg)
}

// Error выводит сообщение об ошибке в stderr: "❌ prefix: err".
func (o *Output) Error(prefix string, err error) {
	fmt.Fprintf(o.errW, "❌ %s: %v\n", prefix, err)
}

// Fail выводит сообщение о неудаче без ошибки.
func (o *Output) Fail(msg string) {
	fmt.Fprintln(o.errW, "❌ "+msg)
}

// Table выводит строки, выровненные через tabwriter.
func (o *Output) Table(rows [][]string) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// compactJSON возвращает JSON в одну строку. Если значение не сериализуется,
// используется fmt.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// timestampLayouts — форматы дат, которые отдаёт сервер.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp разбирает ISO-8601 дату. Суффикс "Z" равнозначен "+00:00".
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// formatTimestamp приводит дату к виду "2006-01-02 15:04:05" в её собственном
// смещении. Неразборчивая строка возвращается как есть.
func formatTimestamp(s string) string {
	t, err := parseTimestamp(s)
	if err != nil {
		return s
	}
	return t.Format(timeLayout)
}

// formatInterval выводит интервал в минутах, если он кратен минуте.
func formatInterval(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d минут", int(d/time.Minute))
	}
	return d.String()
}
