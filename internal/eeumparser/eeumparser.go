// Package eeumparser extracts normalized transactions from Incheon e-um
// card exports.
//
// Column layout: 거래일시, 카드번호, 결제처, 거래방식, 승인번호, 거래금액,
// 총 결제금액, 충전잔액, 내 캐시, 공급가액.
package eeumparser

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/parsererror"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const headerMarker = "거래일시"

// Timestamps look like "2025/12/19 21:14:46".
var datePattern = regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})`)

// 거래방식 value that marks a card top-up. Top-ups are funds moved onto the
// card, not spending, and are excluded entirely to avoid double counting.
const txTypeTopUp = "충전"

const (
	colDate    = 0
	colTxType  = 3
	colAmount  = 5
	colBalance = 7
)

const description = "인천e음 결제"

// Parser extracts Incheon e-um rows. The instrument is expense-only: every
// retained row books as spending.
type Parser struct {
	cat *categorizer.Categorizer
}

// New creates an e-um parser that classifies via the given categorizer.
func New(cat *categorizer.Categorizer) *Parser {
	return &Parser{cat: cat}
}

// Source returns the institution this parser handles.
func (p *Parser) Source() models.SourceType {
	return models.SourceTypeEeum
}

// Extract converts the sheet rows into normalized transactions. Blank first
// cells and unparseable timestamps are skipped silently; top-up rows are
// dropped.
func (p *Parser) Extract(rows [][]string) ([]models.Transaction, error) {
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, &parsererror.HeaderNotFoundError{
			Source: models.SourceEeum,
			Marker: headerMarker,
		}
	}

	var transactions []models.Transaction
	for _, row := range rows[headerIdx+1:] {
		if cell(row, colDate) == "" {
			continue
		}

		parts := datePattern.FindStringSubmatch(cell(row, colDate))
		if parts == nil {
			continue
		}
		date := parts[1] + "-" + parts[2] + "-" + parts[3]

		if cell(row, colTxType) == txTypeTopUp {
			continue
		}

		amount := models.ParseAmount(cell(row, colAmount)).Abs()
		balance := models.ParseAmount(cell(row, colBalance))

		cat := p.cat.Categorize(description, "", false)

		transactions = append(transactions, models.Transaction{
			Date:          date,
			Category:      cat.Main,
			Subcategory:   cat.Sub,
			Description:   description,
			ExpenseAmount: amount,
			PaymentMethod: models.SourceEeum,
			ExpenseType:   models.ExpenseTypeVariable,
			Memo:          models.SourceEeum,
			Source:        models.SourceEeum,
			Balance:       balance,
		})
	}

	log.WithField("count", len(transactions)).Info("Parsed Incheon e-um export")
	return transactions, nil
}

func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, c := range row {
			if strings.Contains(c, headerMarker) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
