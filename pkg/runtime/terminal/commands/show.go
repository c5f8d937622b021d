package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/library-reports/pkg/models/domain"
	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Reporter renders a report page.
type Reporter interface {
	Handle(page *domain.ReportPage) error
}

// ConnectFunc opens the query executor. The returned closer releases it.
type ConnectFunc func(ctx context.Context) (reports.Executor, io.Closer, error)

type ShowCmd struct {
	registry  *reports.Registry
	connect   ConnectFunc
	reporters map[string]Reporter

	page    string
	search  string
	minDays string
	format  string
	timeout time.Duration
}

func NewShowCmd(registry *reports.Registry, connect ConnectFunc, reporters map[string]Reporter) *cobra.Command {
	sc := &ShowCmd{registry: registry, connect: connect, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Print one page of a report",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	// Kept as strings so they go through the same validation as HTTP parameters.
	cmd.Flags().StringVar(&sc.page, "page", "", "Page number (default 1)")
	cmd.Flags().StringVar(&sc.search, "search", "", "Filter by title or author")
	cmd.Flags().StringVar(&sc.minDays, "min-days", "", "Minimum days overdue")
	cmd.Flags().StringVar(&sc.format, "format", "table", "Output format: table or plain")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 60*time.Second, "Overall command timeout")

	return cmd
}

func (sc *ShowCmd) values(cmd *cobra.Command) url.Values {
	values := url.Values{}
	if cmd.Flags().Changed("page") {
		values.Set(reports.ParamPage, sc.page)
	}
	if cmd.Flags().Changed("search") {
		values.Set(reports.ParamSearch, sc.search)
	}
	if cmd.Flags().Changed("min-days") {
		values.Set(reports.ParamMinDays, sc.minDays)
	}
	return values
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	reporter, ok := sc.reporters[sc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q", sc.format)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	reportID := args[0]
	// Fail on unknown reports and bad flags before touching the database.
	if _, err := sc.registry.Resolve(reportID); err != nil {
		return fmt.Errorf("no report with id %s; run `list` to see available reports", strconv.Quote(reportID))
	}
	values := sc.values(cmd)
	if _, err := reports.ParseRequest(reportID, values); err != nil {
		return err
	}

	executor, closer, err := sc.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	svc, err := reports.NewService(sc.registry, executor)
	if err != nil {
		return err
	}

	page, err := svc.Run(ctx, reportID, values)
	if err != nil {
		return fmt.Errorf("failed to run report: %w", err)
	}

	return reporter.Handle(page)
}
