// Package parser provides institution detection and the extractor factory.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/parsererror"
)

// detectionRule maps one institution to its marker substrings. Content
// markers are matched against the flattened cell text of the first sheet,
// filename markers against the lowercased base filename.
type detectionRule struct {
	source          models.SourceType
	contentMarkers  []string
	filenameMarkers []string
}

// Rule order is detection priority: first match wins, no scoring.
var detectionRules = []detectionRule{
	{
		source:          models.SourceTypeTossBank,
		contentMarkers:  []string{"토스뱅크"},
		filenameMarkers: []string{"토스", "toss"},
	},
	{
		source:          models.SourceTypeEeum,
		contentMarkers:  []string{"e음", "인천"},
		filenameMarkers: []string{"인천e음", "eeum"},
	},
}

// Detect decides which institution produced the given sheet. All cell values
// are flattened into one blob and checked against content markers first;
// when nothing matches, the filename is checked case-insensitively. A file
// matching no rule fails with UnknownFormatError and must not be extracted.
func Detect(rows [][]string, filename string) (models.SourceType, error) {
	content := flatten(rows)

	for _, rule := range detectionRules {
		for _, marker := range rule.contentMarkers {
			if strings.Contains(content, marker) {
				return rule.source, nil
			}
		}
	}

	base := strings.ToLower(filepath.Base(filename))
	for _, rule := range detectionRules {
		for _, marker := range rule.filenameMarkers {
			if strings.Contains(base, strings.ToLower(marker)) {
				return rule.source, nil
			}
		}
	}

	return "", &parsererror.UnknownFormatError{Filename: filepath.Base(filename)}
}

func flatten(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			sb.WriteString(cell)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
