// Package models provides the data structures used throughout the application.
package models

import "github.com/shopspring/decimal"

// Transaction is the normalized record produced by the per-institution
// extractors. Exactly one of IncomeAmount/ExpenseAmount is nonzero (both may
// be zero only when the source amount itself was zero). Transactions are
// transient: they are built once during extraction and transformed into
// BudgetRow before anything is persisted.
type Transaction struct {
	Date          string          // ISO date, YYYY-MM-DD
	Category      string          // budget taxonomy main category
	Subcategory   string          // budget taxonomy subcategory
	Description   string          // merchant/memo text, possibly merged
	IncomeAmount  decimal.Decimal // non-negative
	ExpenseAmount decimal.Decimal // non-negative
	PaymentMethod string
	ExpenseType   string // fixed vs variable, empty for income
	Memo          string // fixed provenance tag, e.g. "[토스뱅크]"
	Source        string // institution name
	Balance       decimal.Decimal // running balance, informational only
}

// IsIncome reports whether the transaction carries an income amount.
func (t Transaction) IsIncome() bool {
	return t.IncomeAmount.IsPositive()
}

// BudgetRow is a Transaction reshaped into the ledger's display schema.
// Day replaces the full date; FullDate is kept on the side for
// month-bucketing and never written to the ledger.
type BudgetRow struct {
	Day           string `csv:"날짜"`
	Category      string `csv:"대분류"`
	Subcategory   string `csv:"소분류"`
	Description   string `csv:"내용"`
	IncomeAmount  string `csv:"수입금액"`
	ExpenseAmount string `csv:"지출금액"`
	PaymentMethod string `csv:"지출수단"`
	ExpenseType   string `csv:"지출성격"`
	Memo          string `csv:"비고"`
	FullDate      string `csv:"-"`
}

// Values returns the row as the ledger's positional cell sequence
// (day, category, subcategory, description, income, expense, method,
// nature, memo). The order matches the B..J column window.
func (r BudgetRow) Values() []interface{} {
	return []interface{}{
		r.Day,
		r.Category,
		r.Subcategory,
		r.Description,
		r.IncomeAmount,
		r.ExpenseAmount,
		r.PaymentMethod,
		r.ExpenseType,
		r.Memo,
	}
}

// Institution names as they appear in Source/PaymentMethod fields.
const (
	SourceTossBank = "토스뱅크"
	SourceEeum     = "인천e음"
)

// Payment instrument labels.
const (
	PaymentMethodDebitCard = "체크카드"
	PaymentMethodTransfer  = "이체"
	PaymentMethodDeposit   = "입금"
)

// Expense nature flags. Income rows carry an empty ExpenseType.
const (
	ExpenseTypeVariable = "변동"
	ExpenseTypeFixed    = "고정"
)

// Default category pair for anything the rule tables do not match.
const (
	CategoryOtherExpense    = "기타지출"
	SubcategoryOtherExpense = "기타지출"
)

// CategoryGroup is one main category with its fixed subcategories.
type CategoryGroup struct {
	Name          string
	Subcategories []string
}

// Taxonomy is the fixed two-level budget vocabulary of the ledger. Order
// matches the ledger's own category sheet.
var Taxonomy = []CategoryGroup{
	{Name: "주수입", Subcategories: []string{"급여", "인센티브"}},
	{Name: "부수입", Subcategories: []string{"이자캐시백", "부업", "포인트적립"}},
	{Name: "식비", Subcategories: []string{"식자재", "외식배달", "음료간식", "술/유흥", "업무식사"}},
	{Name: "주거통신", Subcategories: []string{"임대료", "관리비", "도시가스", "이동통신", "TV인터넷"}},
	{Name: "생활용품", Subcategories: []string{"가구가전", "주방욕실", "생활용품"}},
	{Name: "의복미용", Subcategories: []string{"의류잡화", "헤어뷰티", "세탁수선"}},
	{Name: "건강문화", Subcategories: []string{"운동취미", "문화생활", "병원/약", "멤버쉽", "교육비"}},
	{Name: "육아교육", Subcategories: []string{"육아용품", "육아병원비"}},
	{Name: "차량교통", Subcategories: []string{"주유비", "차량유지비", "대중교통비", "주차톨게비", "택시비"}},
	{Name: "경조회비", Subcategories: []string{"경조사비", "모임회비", "선물비"}},
	{Name: "금융지출", Subcategories: []string{"보험", "대출", "주식"}},
	{Name: "기타지출", Subcategories: []string{"세금과태료", "수수료", "기타지출", "국내여행", "해외여행"}},
	{Name: "저축", Subcategories: []string{"적금", "예금", "주택청약"}},
}
