package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/parsererror"
)

func TestDetectByContent(t *testing.T) {
	toss := [][]string{{"토스뱅크 거래내역"}, {"거래 일시", "적요"}}
	source, err := Detect(toss, "download.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeTossBank, source)

	eeum := [][]string{{"인천e음 거래내역 조회"}}
	source, err = Detect(eeum, "download.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeEeum, source)
}

func TestDetectByFilename(t *testing.T) {
	// Content carries no marker, so the filename decides.
	rows := [][]string{{"거래내역"}}

	source, err := Detect(rows, "/exports/toss_2026-01.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeTossBank, source)

	source, err = Detect(rows, "/exports/인천e음_12월.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeEeum, source)
}

func TestDetectFilenameIsCaseInsensitive(t *testing.T) {
	source, err := Detect(nil, "TOSS-Export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeTossBank, source)
}

func TestDetectContentWinsOverFilename(t *testing.T) {
	// A Toss export saved under a misleading name still detects as Toss.
	rows := [][]string{{"토스뱅크"}}
	source, err := Detect(rows, "eeum.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeTossBank, source)
}

func TestDetectUnknownFormat(t *testing.T) {
	_, err := Detect([][]string{{"기타", "은행"}}, "/tmp/statement.xlsx")

	var unknownErr *parsererror.UnknownFormatError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "statement.xlsx", unknownErr.Filename)
}

func TestFactoryCoversAllSources(t *testing.T) {
	cat := categorizer.New()

	for _, source := range []models.SourceType{models.SourceTypeTossBank, models.SourceTypeEeum} {
		extractor, err := New(source, cat)
		require.NoError(t, err)
		assert.Equal(t, source, extractor.Source())
	}

	_, err := New("unknown", cat)
	assert.Error(t, err)
}
