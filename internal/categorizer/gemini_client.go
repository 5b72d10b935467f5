package categorizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chan22222/budget/internal/models"
)

// GeminiClient implements AIClient against the Google Gemini API. The client
// is lazy: the underlying connection is created on first use so that a
// configured-but-unused client never touches the network.
type GeminiClient struct {
	apiKey    string
	modelName string

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a GeminiClient for the given API key and model.
func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	return &GeminiClient{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

func (g *GeminiClient) ensureClient(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("gemini API key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return nil
}

// Close releases the underlying API client.
func (g *GeminiClient) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	g.model = nil
	return err
}

// Categorize asks Gemini for a taxonomy pair. Answers outside the taxonomy
// are reported as not found rather than passed through.
func (g *GeminiClient) Categorize(ctx context.Context, description, memo string, isIncome bool) (Category, bool, error) {
	if err := g.ensureClient(ctx); err != nil {
		return Category{}, false, err
	}

	kind := "지출"
	if isIncome {
		kind = "수입"
	}

	prompt := fmt.Sprintf(`다음 %s 거래를 분류하세요.
내용: %s
비고: %s

아래 "대분류 > 소분류" 목록에서 정확히 하나를 선택하세요:
%s

다음 형식으로만 답하세요:
대분류: [선택한 대분류]
소분류: [선택한 소분류]`,
		kind, description, memo, taxonomyPrompt())

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Category{}, false, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Category{}, false, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	cat := extractCategoryFromResponse(responseText)
	if cat.Main == "" || cat.Sub == "" {
		return Category{}, false, nil
	}
	return cat, true, nil
}

func taxonomyPrompt() string {
	var lines []string
	for _, group := range models.Taxonomy {
		for _, sub := range group.Subcategories {
			lines = append(lines, fmt.Sprintf("%s > %s", group.Name, sub))
		}
	}
	return strings.Join(lines, "\n")
}

// extractCategoryFromResponse parses the "대분류: … / 소분류: …" answer lines.
func extractCategoryFromResponse(response string) Category {
	var cat Category
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "대분류:"):
			cat.Main = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "대분류:")), "[]")
		case strings.HasPrefix(line, "소분류:"):
			cat.Sub = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "소분류:")), "[]")
		}
	}
	return cat
}
