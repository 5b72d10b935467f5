package pipeline

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/parsererror"
	"github.com/chan22222/budget/internal/workbook"
)

func writeWorkbook(t *testing.T, dir, name, passphrase string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, value))
		}
	}

	path := filepath.Join(dir, name)
	opts := excelize.Options{}
	if passphrase != "" {
		opts.Password = passphrase
	}
	require.NoError(t, f.SaveAs(path, opts))
	require.NoError(t, f.Close())
	return path
}

func tossRows(date, description, amount string) [][]string {
	return [][]string{
		{"토스뱅크 거래내역"},
		{"거래 일시", "적요", "거래 유형", "거래 기관", "계좌번호", "거래 금액", "거래 후 잔액", "메모"},
		{date, description, "체크카드", "", "", amount, "100,000", ""},
	}
}

func newPipeline() *Pipeline {
	return New(workbook.NewOpener(nil), categorizer.New())
}

func TestDetectAndExtract(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "toss.xlsx", "", tossRows("2026.01.08 12:49:10", "스타벅스", "-4,500"))

	transactions, err := newPipeline().DetectAndExtract(path, "")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "2026-01-08", transactions[0].Date)
	assert.Equal(t, "스타벅스", transactions[0].Description)
}

func TestDetectAndExtractUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "statement.xlsx", "", [][]string{
		{"기타", "은행", "내역"},
	})

	_, err := newPipeline().DetectAndExtract(path, "")

	var unknownErr *parsererror.UnknownFormatError
	require.ErrorAs(t, err, &unknownErr)
}

func TestProcessFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeWorkbook(t, dir, "toss.xlsx", "", tossRows("2026.01.08 12:49:10", "스타벅스", "-4,500"))
	locked := writeWorkbook(t, dir, "locked.xlsx", "secret", tossRows("2026.01.09 10:00:00", "다이소", "-8,000"))
	unknown := writeWorkbook(t, dir, "statement.xlsx", "", [][]string{{"기타 은행"}})

	batch := newPipeline().ProcessFiles([]string{good, locked, unknown}, "")
	require.Len(t, batch.Files, 3)

	byName := make(map[string]FileResult)
	for _, f := range batch.Files {
		byName[f.Name] = f
	}

	assert.Equal(t, StatusOK, byName["toss.xlsx"].Status)
	assert.Equal(t, 1, byName["toss.xlsx"].Count)
	assert.Equal(t, StatusNeedPassphrase, byName["locked.xlsx"].Status)
	assert.Equal(t, StatusError, byName["statement.xlsx"].Status)

	// The good file's transactions survive the neighbours' failures.
	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, []string{"locked.xlsx"}, batch.NeedPassphrase())
}

func TestProcessFilesMergesSortedByDate(t *testing.T) {
	dir := t.TempDir()
	later := writeWorkbook(t, dir, "toss_feb.xlsx", "", tossRows("2026.02.01 09:00:00", "이마트", "-30,000"))
	earlier := writeWorkbook(t, dir, "toss_jan.xlsx", "", tossRows("2026.01.08 12:49:10", "스타벅스", "-4,500"))

	batch := newPipeline().ProcessFiles([]string{later, earlier}, "")
	require.Len(t, batch.Transactions, 2)

	dates := []string{batch.Transactions[0].Date, batch.Transactions[1].Date}
	assert.True(t, sort.StringsAreSorted(dates), "merged transactions ordered by date: %v", dates)
	assert.Equal(t, "2026-01-08", dates[0])
}

func TestProcessFilesWithPassphrase(t *testing.T) {
	dir := t.TempDir()
	locked := writeWorkbook(t, dir, "locked.xlsx", "secret", tossRows("2026.01.09 10:00:00", "다이소", "-8,000"))

	batch := newPipeline().ProcessFiles([]string{locked}, "secret")
	require.Len(t, batch.Files, 1)
	assert.Equal(t, StatusOK, batch.Files[0].Status)
	assert.Len(t, batch.Transactions, 1)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeWorkbook(t, dir, "a.xlsx", "", tossRows("2026.01.08 12:49:10", "스타벅스", "-4,500"))
	writeWorkbook(t, dir, "b.XLSX", "", tossRows("2026.01.09 10:00:00", "다이소", "-8,000"))

	// Directories expand to their .xlsx entries, case-insensitively.
	files, err := CollectFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// Plain files pass through untouched.
	files, err = CollectFiles([]string{a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)

	_, err = CollectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
