package parser

import (
	"fmt"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/eeumparser"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/tossparser"
)

// New returns the extractor for the given source type. It acts as a factory
// for Extractor implementations; all extractors share the one categorizer.
func New(source models.SourceType, cat *categorizer.Categorizer) (models.Extractor, error) {
	switch source {
	case models.SourceTypeTossBank:
		return tossparser.New(cat), nil
	case models.SourceTypeEeum:
		return eeumparser.New(cat), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", source)
	}
}
