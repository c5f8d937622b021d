package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/library-reports/pkg/models/domain"
)

// Reporter outputs one "column: value" block per row, for narrow terminals
// and piping into other tools.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(page *domain.ReportPage) error {
	tmpl := `{{.Report.Title}} (page {{.Request.Page}})
{{$columns := .Result.Columns}}{{range $i, $row := .Result.Rows}}
#{{inc $i}}
{{range $columns}}{{.}}: {{index $row .}}
{{end}}{{else}}
No data.
{{end}}`
	t, err := template.New("report").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, page)
}
