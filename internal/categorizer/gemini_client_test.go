package categorizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCategoryFromResponse(t *testing.T) {
	cat := extractCategoryFromResponse("대분류: 식비\n소분류: 음료간식")
	assert.Equal(t, Category{Main: "식비", Sub: "음료간식"}, cat)

	// Models sometimes echo the bracket placeholders back.
	cat = extractCategoryFromResponse("대분류: [건강문화]\n소분류: [교육비]\n")
	assert.Equal(t, Category{Main: "건강문화", Sub: "교육비"}, cat)

	cat = extractCategoryFromResponse("분류할 수 없습니다")
	assert.Empty(t, cat.Main)
	assert.Empty(t, cat.Sub)
}

func TestTaxonomyPromptListsEveryPair(t *testing.T) {
	prompt := taxonomyPrompt()
	assert.Contains(t, prompt, "식비 > 음료간식")
	assert.Contains(t, prompt, "저축 > 주택청약")
	assert.Greater(t, len(strings.Split(prompt, "\n")), 30)
}

func TestGeminiClientRequiresAPIKey(t *testing.T) {
	g := NewGeminiClient("", "gemini-2.0-flash")
	_, _, err := g.Categorize(context.Background(), "스타벅스", "", false)
	assert.Error(t, err)
}
