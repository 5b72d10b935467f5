package eeumparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/parsererror"
)

func sampleRows() [][]string {
	return [][]string{
		{"인천e음 거래내역 조회"},
		{"거래일시", "카드번호", "결제처", "거래방식", "승인번호", "거래금액", "총 결제금액", "충전잔액", "내 캐시", "공급가액"},
		{"2025/12/19 21:14:46", "****-1234", "동네식당", "결제", "A001", "-18,000", "-18,000", "82,000", "0", ""},
		{"2025/12/20 10:00:00", "****-1234", "", "충전", "A002", "100,000", "100,000", "182,000", "0", ""},
		{"2025/12/21 13:30:00", "****-1234", "약국", "결제", "A003", "-6,500", "-6,500", "175,500", "0", ""},
		{},
	}
}

func TestExtract(t *testing.T) {
	p := New(categorizer.New())
	transactions, err := p.Extract(sampleRows())
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, "2025-12-19", first.Date)
	assert.Equal(t, "인천e음 결제", first.Description)
	assert.Equal(t, "18000", first.ExpenseAmount.String())
	assert.True(t, first.IncomeAmount.IsZero())
	assert.Equal(t, models.SourceEeum, first.PaymentMethod)
	assert.Equal(t, models.SourceEeum, first.Memo)
	assert.Equal(t, models.SourceEeum, first.Source)
	assert.Equal(t, models.ExpenseTypeVariable, first.ExpenseType)
}

func TestExtractSkipsTopUps(t *testing.T) {
	p := New(categorizer.New())
	transactions, err := p.Extract(sampleRows())
	require.NoError(t, err)

	// The 충전 row moves money onto the card; booking it as spending
	// would double-count the later payments.
	for _, tx := range transactions {
		assert.NotEqual(t, "2025-12-20", tx.Date)
	}
	assert.Len(t, transactions, 2)
}

func TestExtractIsExpenseOnly(t *testing.T) {
	p := New(categorizer.New())
	transactions, err := p.Extract(sampleRows())
	require.NoError(t, err)

	for _, tx := range transactions {
		assert.True(t, tx.IncomeAmount.IsZero())
		assert.False(t, tx.ExpenseAmount.IsNegative())
	}
}

func TestExtractMissingHeader(t *testing.T) {
	p := New(categorizer.New())
	_, err := p.Extract([][]string{
		{"다른", "양식의", "파일"},
	})

	var headerErr *parsererror.HeaderNotFoundError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, models.SourceEeum, headerErr.Source)
}
