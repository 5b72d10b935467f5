package categorizer

// Rule is one ordered keyword rule. A rule matches when any of its keywords
// appears as a substring of the lowercased "description memo" text. Rules
// are evaluated top to bottom and the first match wins, so broad keywords
// belong below specific ones. This table is the single place new merchant
// patterns are added.
type Rule struct {
	ID          string
	Keywords    []string
	Category    string
	Subcategory string
}

// incomeRules classify credited amounts. Evaluated before any expense rule
// is considered.
var incomeRules = []Rule{
	{ID: "salary", Keywords: []string{"급여", "월급"}, Category: "주수입", Subcategory: "급여"},
	{ID: "bonus", Keywords: []string{"인센티브", "성과급", "상여"}, Category: "주수입", Subcategory: "인센티브"},
	{ID: "interest-cashback", Keywords: []string{"이자", "캐시백"}, Category: "부수입", Subcategory: "이자캐시백"},
	{ID: "points", Keywords: []string{"포인트", "적립"}, Category: "부수입", Subcategory: "포인트적립"},
}

// expenseRules classify debited amounts, grouped by spending domain.
var expenseRules = []Rule{
	// 식비
	{ID: "dining-delivery", Keywords: []string{"쿠팡이츠", "배민", "요기요", "배달"}, Category: "식비", Subcategory: "외식배달"},
	{ID: "groceries", Keywords: []string{"마트", "롯데", "이마트", "홈플러스", "식자재"}, Category: "식비", Subcategory: "식자재"},
	{ID: "cafe-snacks", Keywords: []string{"스타벅스", "카페", "커피", "빵"}, Category: "식비", Subcategory: "음료간식"},

	// 생활용품
	{ID: "online-retail", Keywords: []string{"쿠팡", "네이버페이", "11번가", "지마켓"}, Category: "생활용품", Subcategory: "생활용품"},
	{ID: "drugstore", Keywords: []string{"다이소", "올리브영"}, Category: "생활용품", Subcategory: "생활용품"},

	// 차량교통
	{ID: "fuel", Keywords: []string{"주유", "기름", "gs칼텍스", "sk에너지"}, Category: "차량교통", Subcategory: "주유비"},
	{ID: "taxi", Keywords: []string{"택시", "카카오t"}, Category: "차량교통", Subcategory: "택시비"},
	{ID: "transit", Keywords: []string{"버스", "지하철", "교통"}, Category: "차량교통", Subcategory: "대중교통비"},
	{ID: "parking-toll", Keywords: []string{"주차", "톨게이트", "하이패스"}, Category: "차량교통", Subcategory: "주차톨게비"},

	// 주거통신
	{ID: "telecom", Keywords: []string{"skt", "kt", "lg u+", "통신"}, Category: "주거통신", Subcategory: "이동통신"},
	{ID: "city-gas", Keywords: []string{"가스", "도시가스"}, Category: "주거통신", Subcategory: "도시가스"},

	// 금융지출
	{ID: "insurance", Keywords: []string{"보험", "삼성화재", "현대해상"}, Category: "금융지출", Subcategory: "보험"},

	// 건강문화
	{ID: "medical", Keywords: []string{"병원", "약국", "의원"}, Category: "건강문화", Subcategory: "병원/약"},
	{ID: "fitness", Keywords: []string{"헬스", "gym", "피트니스"}, Category: "건강문화", Subcategory: "운동취미"},
	{ID: "culture", Keywords: []string{"넷플릭스", "왓챠", "영화", "cgv", "롯데시네마"}, Category: "건강문화", Subcategory: "문화생활"},

	// 경조회비
	{ID: "family-events", Keywords: []string{"축의금", "부의금", "경조사"}, Category: "경조회비", Subcategory: "경조사비"},
}
