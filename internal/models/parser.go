package models

// SourceType identifies which institution's column layout applies to a file.
type SourceType string

const (
	SourceTypeTossBank SourceType = "tossbank"
	SourceTypeEeum     SourceType = "eeum"
)

// Extractor converts the raw cell grid of one institution's export into
// normalized transactions. Implementations preserve source row order and
// never mutate the input rows.
type Extractor interface {
	Source() SourceType
	Extract(rows [][]string) ([]Transaction, error)
}
