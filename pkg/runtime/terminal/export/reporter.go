package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/library-reports/pkg/models/domain"
)

const NoDataText = "No data."

type TableConfig struct {
	MaxColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 40,
	}
}

// Reporter renders a report page as a bordered text table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type tableView struct {
	Title   string
	Page    int
	Headers []string
	Rows    [][]string
	Empty   bool
	Next    bool
}

func (c *Reporter) Handle(page *domain.ReportPage) error {
	view := tableView{
		Title: page.Report.Title,
		Page:  page.Request.Page,
		Empty: len(page.Result.Rows) == 0,
		Next:  page.HasNext,
	}
	for _, col := range page.Result.Columns {
		view.Headers = append(view.Headers, strings.ReplaceAll(col, "_", " "))
	}
	for _, row := range page.Result.Rows {
		cells := make([]string, 0, len(page.Result.Columns))
		for _, col := range page.Result.Columns {
			cells = append(cells, c.truncate(row[col]))
		}
		view.Rows = append(view.Rows, cells)
	}
	if view.Empty {
		view.Headers = []string{""}
		view.Rows = [][]string{{NoDataText}}
	}

	widths := columnWidths(view.Headers, view.Rows)

	funcMap := template.FuncMap{
		"inc": func(n int) int { return n + 1 },
		"formatRow": func(cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, cell := range cells {
				fmt.Fprintf(&b, " %s%s |", cell, strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
			return b.String()
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	tmpl := `
{{.Title}} (page {{.Page}})

{{separator}}
{{if not .Empty}}{{formatRow .Headers}}
{{separator}}
{{end}}{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{if .Next}}More rows on page {{inc .Page}}.
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

func (c *Reporter) truncate(s string) string {
	if c.config.MaxColumnWidth <= 0 || utf8.RuneCountInString(s) <= c.config.MaxColumnWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:c.config.MaxColumnWidth-1]) + "…"
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}
