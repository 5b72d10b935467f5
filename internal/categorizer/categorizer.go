// Package categorizer maps free-text transaction descriptions to the budget
// taxonomy using ordered keyword rule tables, with an optional AI fallback
// for text no rule matches.
package categorizer

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chan22222/budget/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Category is a (main category, subcategory) pair from the budget taxonomy.
type Category struct {
	Main string
	Sub  string
}

// AIClient categorizes a transaction description when the rule tables have
// no answer. Returning ok=false (with or without an error) means "no
// usable answer" and is never fatal.
type AIClient interface {
	Categorize(ctx context.Context, description, memo string, isIncome bool) (Category, bool, error)
}

// Categorizer classifies description/memo text. Categorize is total: every
// input maps to a valid taxonomy pair, falling back to the "other" defaults.
type Categorizer struct {
	incomeRules  []Rule
	expenseRules []Rule
	ai           AIClient
	aiTimeout    time.Duration
}

// New creates a rule-only Categorizer.
func New() *Categorizer {
	return &Categorizer{
		incomeRules:  incomeRules,
		expenseRules: expenseRules,
	}
}

// NewWithAI creates a Categorizer that consults the AI client for text the
// rule tables cannot place, before falling back to the defaults.
func NewWithAI(ai AIClient, timeout time.Duration) *Categorizer {
	c := New()
	c.ai = ai
	c.aiTimeout = timeout
	return c
}

// Categorize returns the taxonomy pair for the given text. The income flag
// selects the rule table; matching is plain substring containment on the
// lowercased "description memo" text, first matching rule wins.
func (c *Categorizer) Categorize(description, memo string, isIncome bool) Category {
	text := strings.ToLower(description + " " + memo)

	rules := c.expenseRules
	fallback := Category{Main: models.CategoryOtherExpense, Sub: models.SubcategoryOtherExpense}
	if isIncome {
		rules = c.incomeRules
		fallback = Category{Main: "부수입", Sub: "부업"}
	}

	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				log.WithFields(logrus.Fields{
					"rule":     rule.ID,
					"keyword":  keyword,
					"category": rule.Category,
				}).Debug("Rule matched")
				return Category{Main: rule.Category, Sub: rule.Subcategory}
			}
		}
	}

	if c.ai != nil {
		if cat, ok := c.aiCategorize(description, memo, isIncome); ok {
			return cat
		}
	}

	return fallback
}

// aiCategorize asks the AI client for a category. Any failure or answer
// outside the taxonomy degrades to "not found" so Categorize stays total.
func (c *Categorizer) aiCategorize(description, memo string, isIncome bool) (Category, bool) {
	ctx := context.Background()
	if c.aiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.aiTimeout)
		defer cancel()
	}

	cat, ok, err := c.ai.Categorize(ctx, description, memo, isIncome)
	if err != nil {
		log.WithError(err).Warn("AI categorization failed")
		return Category{}, false
	}
	if !ok || !isValidPair(cat) {
		return Category{}, false
	}

	log.WithFields(logrus.Fields{
		"category":    cat.Main,
		"subcategory": cat.Sub,
	}).Debug("Transaction categorized by AI")
	return cat, true
}

// isValidPair checks the pair against the fixed taxonomy.
func isValidPair(cat Category) bool {
	for _, group := range models.Taxonomy {
		if group.Name != cat.Main {
			continue
		}
		for _, sub := range group.Subcategories {
			if sub == cat.Sub {
				return true
			}
		}
	}
	return false
}
