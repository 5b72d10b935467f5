// Package tossparser extracts normalized transactions from Toss Bank
// account-history exports.
//
// Column layout: 거래 일시, 적요, 거래 유형, 거래 기관, 계좌번호, 거래 금액,
// 거래 후 잔액, 메모.
package tossparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
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

const headerMarker = "거래 일시"

// Timestamps look like "2026.01.08 12:49:10"; only the date part is kept.
var datePattern = regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})`)

const (
	colDate        = 0
	colDescription = 1
	colTxType      = 2
	colAmount      = 5
	colBalance     = 6
	colMemo        = 7
)

// Parser extracts Toss Bank rows.
type Parser struct {
	cat *categorizer.Categorizer
}

// New creates a Toss Bank parser that classifies via the given categorizer.
func New(cat *categorizer.Categorizer) *Parser {
	return &Parser{cat: cat}
}

// Source returns the institution this parser handles.
func (p *Parser) Source() models.SourceType {
	return models.SourceTypeTossBank
}

// Extract converts the sheet rows into normalized transactions. Rows whose
// first cell is empty or whose timestamp does not match the expected
// pattern are skipped; they are blank trailers or footer summaries, not
// errors.
func (p *Parser) Extract(rows [][]string) ([]models.Transaction, error) {
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, &parsererror.HeaderNotFoundError{
			Source: models.SourceTossBank,
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

		description := cell(row, colDescription)
		txType := cell(row, colTxType)
		memo := cell(row, colMemo)
		amount := models.ParseAmount(cell(row, colAmount))
		balance := models.ParseAmount(cell(row, colBalance))

		isIncome := amount.IsPositive()
		var incomeAmount, expenseAmount decimal.Decimal
		if isIncome {
			incomeAmount = amount
		} else {
			expenseAmount = amount.Abs()
		}

		cat := p.cat.Categorize(description, memo, isIncome)

		expenseType := models.ExpenseTypeVariable
		if isIncome {
			expenseType = ""
		}

		transactions = append(transactions, models.Transaction{
			Date:          date,
			Category:      cat.Main,
			Subcategory:   cat.Sub,
			Description:   mergeDescription(description, memo),
			IncomeAmount:  incomeAmount,
			ExpenseAmount: expenseAmount,
			PaymentMethod: paymentMethod(txType),
			ExpenseType:   expenseType,
			Memo:          "[토스뱅크]",
			Source:        models.SourceTossBank,
			Balance:       balance,
		})
	}

	log.WithField("count", len(transactions)).Info("Parsed Toss Bank export")
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

// paymentMethod maps the transaction-type text onto an instrument label.
// Transfers and withdrawals book as 이체, deposits as 입금; everything else
// is a debit-card payment.
func paymentMethod(txType string) string {
	switch {
	case strings.Contains(txType, "송금") || strings.Contains(txType, "출금"):
		return models.PaymentMethodTransfer
	case strings.Contains(txType, "입금"):
		return models.PaymentMethodDeposit
	default:
		return models.PaymentMethodDebitCard
	}
}

// mergeDescription appends the memo when it adds information beyond the
// primary description.
func mergeDescription(description, memo string) string {
	if memo != "" && memo != description {
		return description + " (" + memo + ")"
	}
	return description
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
