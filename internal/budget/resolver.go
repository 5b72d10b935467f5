package budget

import (
	"strings"

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

// Strictness selects the duplicate-detection strategy.
type Strictness string

const (
	// StrictKey matches on exact string equality of
	// date|description|income|expense. Fast and free of false positives,
	// but brittle to formatting differences such as "1,000" vs "1000".
	StrictKey Strictness = "strict"

	// Fuzzy matches on equal dates, numerically equal amounts after
	// separator stripping, and a minimal description overlap. Preferred
	// default: it tolerates description rewording between the export and
	// the stored ledger entry.
	Fuzzy Strictness = "fuzzy"
)

// Positions of the comparison fields inside a ledger row (the B..J window:
// day, category, subcategory, description, income, expense, method, nature,
// memo).
const (
	ledgerColDay         = 0
	ledgerColDescription = 3
	ledgerColIncome      = 4
	ledgerColExpense     = 5
)

// DefaultMinOverlap is the fuzzy strategy's required description overlap in
// runes. It is a heuristic threshold, deliberately permissive; treat it as
// tunable, not a law.
const DefaultMinOverlap = 2

// Match records one detected duplicate pair for audit output.
type Match struct {
	Candidate     models.BudgetRow
	Existing      []string
	ExistingIndex int
}

// Result is the outcome of one duplicate resolution pass.
type Result struct {
	ToAppend      []models.BudgetRow
	Duplicates    []Match
	ExistingCount int
	SkippedCount  int
}

// Resolver decides which candidate rows are already present in the ledger.
// It never mutates the ledger; appending is the caller's job.
type Resolver struct {
	mode       Strictness
	minOverlap int
}

// NewResolver creates a Resolver. An unrecognized mode falls back to Fuzzy;
// a non-positive overlap falls back to DefaultMinOverlap.
func NewResolver(mode Strictness, minOverlap int) *Resolver {
	if mode != StrictKey {
		mode = Fuzzy
	}
	if minOverlap < 1 {
		minOverlap = DefaultMinOverlap
	}
	return &Resolver{mode: mode, minOverlap: minOverlap}
}

// Resolve filters candidates against the existing ledger rows. A candidate
// is excluded as soon as one existing row matches (first-match, not
// best-match). An empty existing set means no duplicates are possible and
// every candidate passes.
func (r *Resolver) Resolve(candidates []models.BudgetRow, existing [][]string) Result {
	result := Result{
		ToAppend:      make([]models.BudgetRow, 0, len(candidates)),
		ExistingCount: len(existing),
	}

	var strictKeys map[string]struct{}
	if r.mode == StrictKey {
		strictKeys = buildStrictKeys(existing)
	}

	for _, candidate := range candidates {
		idx := -1
		switch r.mode {
		case StrictKey:
			if _, ok := strictKeys[strictKey(candidate.Day, candidate.Description, candidate.IncomeAmount, candidate.ExpenseAmount)]; ok {
				idx = 0 // key set loses the row index; Existing stays nil
			}
		default:
			idx = r.findFuzzyMatch(candidate, existing)
		}

		if idx < 0 {
			result.ToAppend = append(result.ToAppend, candidate)
			continue
		}

		match := Match{Candidate: candidate, ExistingIndex: idx}
		if r.mode == Fuzzy {
			match.Existing = existing[idx]
		}
		result.Duplicates = append(result.Duplicates, match)
		result.SkippedCount++

		log.WithFields(logrus.Fields{
			"day":         candidate.Day,
			"description": candidate.Description,
		}).Debug("Skipping duplicate row")
	}

	return result
}

func buildStrictKeys(existing [][]string) map[string]struct{} {
	keys := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		if ledgerCell(row, ledgerColDay) == "" {
			continue
		}
		keys[strictKey(
			ledgerCell(row, ledgerColDay),
			ledgerCell(row, ledgerColDescription),
			ledgerCell(row, ledgerColIncome),
			ledgerCell(row, ledgerColExpense),
		)] = struct{}{}
	}
	return keys
}

func strictKey(day, description, income, expense string) string {
	return day + "|" + description + "|" + income + "|" + expense
}

func (r *Resolver) findFuzzyMatch(candidate models.BudgetRow, existing [][]string) int {
	candIncome := models.ParseAmount(candidate.IncomeAmount)
	candExpense := models.ParseAmount(candidate.ExpenseAmount)

	for i, row := range existing {
		if ledgerCell(row, ledgerColDay) == "" {
			continue
		}
		if ledgerCell(row, ledgerColDay) != candidate.Day {
			continue
		}
		if !models.ParseAmount(ledgerCell(row, ledgerColIncome)).Equal(candIncome) {
			continue
		}
		if !models.ParseAmount(ledgerCell(row, ledgerColExpense)).Equal(candExpense) {
			continue
		}
		if descriptionsOverlap(candidate.Description, ledgerCell(row, ledgerColDescription), r.minOverlap) {
			return i
		}
	}
	return -1
}

// descriptionsOverlap reports whether any contiguous window of n runes from
// the candidate description appears in the existing description,
// case-insensitively. With the default n of 2 this is deliberately
// permissive: short generic fragments shared by both texts count as
// overlap.
func descriptionsOverlap(candidate, existing string, n int) bool {
	c := []rune(strings.ToLower(candidate))
	e := strings.ToLower(existing)
	if len(c) < n || e == "" {
		return false
	}
	for i := 0; i+n <= len(c); i++ {
		if strings.Contains(e, string(c[i:i+n])) {
			return true
		}
	}
	return false
}

func ledgerCell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
