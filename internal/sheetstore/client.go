package sheetstore

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/chan22222/budget/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Months lists the ledger's month sheet names in calendar order.
var Months = []string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"}

// Ledger is the remote store surface the sync command depends on. The store
// behaves as an append-only log per month sheet; read errors and append
// errors propagate unchanged, retries belong to the caller.
type Ledger interface {
	ReadMonth(month string) ([][]string, error)
	Append(month string, rows []models.BudgetRow) (int, error)
	ListSheets() ([]string, error)
}

// Client is the Google Sheets implementation of Ledger.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	dataRange     string
	appendRange   string
}

// Options configures a Client. DataRange is the read window for duplicate
// checks, AppendRange the open-ended append window; both are sheet-relative
// (the month name is prefixed per call).
type Options struct {
	SpreadsheetID string
	DataRange     string
	AppendRange   string
}

// NewClient builds a Sheets client authenticated through the resolver.
func NewClient(ctx context.Context, resolver *CredentialResolver, opts Options) (*Client, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID not configured")
	}

	tok, source, err := resolver.Token()
	if err != nil {
		return nil, fmt.Errorf("google authentication required: %w", err)
	}
	cfg, err := resolver.OAuthConfig("")
	if err != nil {
		return nil, err
	}

	log.WithField("token_source", source).Debug("Resolved Google credentials")

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		dataRange:     opts.DataRange,
		appendRange:   opts.AppendRange,
	}, nil
}

// ReadMonth returns the data rows of one month sheet as cell strings. Rows
// whose day cell is empty are dropped; the ledger pads its window with
// blank formatting rows.
func (c *Client) ReadMonth(month string) ([][]string, error) {
	rangeSpec := fmt.Sprintf("%s!%s", month, c.dataRange)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeSpec).Do()
	if err != nil {
		return nil, fmt.Errorf("error reading range %s: %w", rangeSpec, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprintf("%v", v)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rows = append(rows, row)
	}

	log.WithFields(logrus.Fields{
		"month": month,
		"count": len(rows),
	}).Debug("Read ledger rows")
	return rows, nil
}

// Append writes rows after the month sheet's last data row and returns the
// number of rows written. Cells go in USER_ENTERED so the spreadsheet
// parses amounts as numbers.
func (c *Client) Append(month string, rows []models.BudgetRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row.Values()
	}

	rangeSpec := fmt.Sprintf("%s!%s", month, c.appendRange)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeSpec, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return 0, fmt.Errorf("error appending to %s: %w", rangeSpec, err)
	}

	appended := len(rows)
	if resp.Updates != nil {
		appended = int(resp.Updates.UpdatedRows)
	}

	log.WithFields(logrus.Fields{
		"month": month,
		"count": appended,
	}).Info("Appended ledger rows")
	return appended, nil
}

// ListSheets returns the spreadsheet's sheet titles.
func (c *Client) ListSheets() ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("error fetching spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}
