package workbook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chan22222/budget/internal/parsererror"
)

// writeFixture builds an xlsx file with the given rows, optionally encrypted.
func writeFixture(t *testing.T, name, passphrase string, rows [][]string) string {
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

	path := filepath.Join(t.TempDir(), name)
	opts := excelize.Options{}
	if passphrase != "" {
		opts.Password = passphrase
	}
	require.NoError(t, f.SaveAs(path, opts))
	require.NoError(t, f.Close())
	return path
}

func TestOpenPlainWorkbook(t *testing.T) {
	path := writeFixture(t, "plain.xlsx", "", [][]string{
		{"거래 일시", "적요"},
		{"2026.01.08 12:49:10", "스타벅스"},
	})

	o := NewOpener(nil)
	wb, err := o.Open(path, "")
	require.NoError(t, err)

	rows := wb.FirstSheetRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "거래 일시", rows[0][0])
	assert.Equal(t, "스타벅스", rows[1][1])
}

func TestOpenProtectedWorkbookWithPassphrase(t *testing.T) {
	path := writeFixture(t, "protected.xlsx", "secret123", [][]string{
		{"거래일시", "거래금액"},
	})

	o := NewOpener(nil)
	wb, err := o.Open(path, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "거래일시", wb.FirstSheetRows()[0][0])
}

func TestOpenProtectedWorkbookViaFallback(t *testing.T) {
	path := writeFixture(t, "protected.xlsx", "secret123", [][]string{
		{"거래일시"},
	})

	// No explicit passphrase; the fallback list carries the right one.
	o := NewOpener([]string{"wrong", "secret123"})
	wb, err := o.Open(path, "")
	require.NoError(t, err)
	assert.Equal(t, "거래일시", wb.FirstSheetRows()[0][0])
}

func TestOpenProtectedWorkbookExhaustsCandidates(t *testing.T) {
	path := writeFixture(t, "protected.xlsx", "secret123", [][]string{
		{"거래일시"},
	})

	o := NewOpener([]string{"wrong1", "wrong2"})
	_, err := o.Open(path, "also-wrong")

	var passErr *parsererror.PassphraseError
	require.ErrorAs(t, err, &passErr)
	assert.Equal(t, "protected.xlsx", passErr.Filename)
	// explicit + empty + two fallbacks
	assert.Equal(t, 4, passErr.Attempts)
	assert.NotEmpty(t, passErr.Diagnostic())
}

func TestOpenMissingFile(t *testing.T) {
	o := NewOpener(nil)
	_, err := o.Open(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)

	// A missing file is not a passphrase problem and must not prompt.
	var passErr *parsererror.PassphraseError
	assert.False(t, errors.As(err, &passErr))
}

func TestIsPassphraseRelated(t *testing.T) {
	assert.True(t, isPassphraseRelated(excelize.ErrWorkbookPassword))
	assert.False(t, isPassphraseRelated(os.ErrPermission))
}
