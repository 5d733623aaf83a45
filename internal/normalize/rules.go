package normalize

import (
	"regexp"
	"strings"
)

// CheckGlyphs 체크마크 글리프 집합
// 사이트가 "해당 기능 있음"을 표시할 때 쓰는 문자들로, 그 외 정보는 없다
var CheckGlyphs = []string{"○", "O", "o", "●"}

// IsCheckGlyph 값 전체가 체크마크 글리프인지 판별
func IsCheckGlyph(s string) bool {
	t := strings.TrimSpace(s)
	for _, g := range CheckGlyphs {
		if t == g {
			return true
		}
	}
	return false
}

// 값 정제 설정
// 문구 목록은 사이트에서 실측한 것을 그대로 유지한다. 새 문구를 추론해 넣지 않는다
var (
	// TruncateMarkers 이 문구가 나오면 그 앞까지만 값으로 사용
	TruncateMarkers = []string{"인증번호 확인", "바로가기"}

	// RemovePhrases 값에서 통째로 제거할 문구
	RemovePhrases = []string{"제조사 웹사이트", "웹사이트"}

	// embeddedGlyphs 값 중간에 섞인 체크마크 제거 대상
	// 라틴 O/o는 일반 텍스트와 겹치므로 값 전체 일치일 때만 글리프로 취급한다
	embeddedGlyphs = []string{"○", "●"}
)

var (
	parenRe = regexp.MustCompile(`\s*\([^)]*\)`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// CleanValue 셀 값 정제
// 꼬리 문구 절단 → 괄호 제거 → 안내 문구 제거 → 공백 정리 순서로 적용한다
// 값 전체가 체크마크 글리프면 그대로 반환한다 (존재 표시 의미 보존)
func CleanValue(s string) string {
	v := strings.TrimSpace(s)

	for _, marker := range TruncateMarkers {
		if idx := strings.Index(v, marker); idx >= 0 {
			v = v[:idx]
		}
	}

	v = parenRe.ReplaceAllString(v, "")

	for _, phrase := range RemovePhrases {
		v = strings.ReplaceAll(v, phrase, "")
	}

	v = strings.TrimSpace(v)
	if IsCheckGlyph(v) {
		return v
	}

	for _, g := range embeddedGlyphs {
		v = strings.ReplaceAll(v, g, "")
	}

	return strings.TrimSpace(wsRe.ReplaceAllString(v, " "))
}

// KeyAliases 항목명 단순화 별칭표
var KeyAliases = map[string]string{
	"재료 종류": "재료",
	"반찬종류":  "종류",
}

// SimplifyKey 항목명 정리: 별칭 치환 후 대괄호 제거
func SimplifyKey(key string) string {
	k := strings.TrimSpace(key)
	if alias, ok := KeyAliases[k]; ok {
		k = alias
	}
	k = strings.ReplaceAll(k, "[", "")
	k = strings.ReplaceAll(k, "]", "")
	return k
}

// 연령 표현 패턴
var (
	ageRangeRe = regexp.MustCompile(`(세|개월).*(부터|이상)`)
	ageTokens  = []string{"세부터", "세 이상", "세이상", "개월 이상", "개월이상"}
)

// isAgeKey 항목명이 대상연령 표현인지 판별
func isAgeKey(key string) bool {
	if ageRangeRe.MatchString(key) {
		return true
	}
	for _, token := range ageTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return strings.Contains(key, "연령")
}

// BaseCategoryRules 정적 기본 매핑
// 학습된 매핑보다 우선순위가 낮다
var BaseCategoryRules = map[string]string{
	"국내산":   "원산지",
	"수입산":   "원산지",
	"국물조림용": "용도",
	"비빔무침용": "용도",
}

// toyTokens 완구류 판별 토큰
var toyTokens = []string{"완구", "놀이", "블럭", "블록", "로봇", "카드", "퍼즐", "인형"}

// checkRule 체크마크 항목 분류 규칙 1개
// 위에서부터 평가해 처음 매칭되는 규칙의 카테고리를 쓴다
type checkRule struct {
	match    func(key, originalKey string) bool
	category string
}

// checkRules 체크마크 항목 분류 캐스케이드
// 매핑표에 없는 항목에만 적용되는 마지막 수단이다
var checkRules = []checkRule{
	{func(k, _ string) bool { return strings.Contains(k, "단계") || k == "프레" }, "단계"},
	{func(k, _ string) bool { return strings.Contains(k, "분유") }, "품목"},
	{func(k, _ string) bool { return strings.HasSuffix(k, "개월~") || strings.HasSuffix(k, "개월") }, "최소연령"},
	{func(k, _ string) bool { return oneOf(k, "분말", "액상", "미음", "죽", "진밥", "아기밥") }, "형태"},
	{func(k, _ string) bool { return oneOf(k, "상온", "냉장", "냉동") }, "보관방식"},
	{func(k, _ string) bool { return oneOf(k, "파우치", "플라스틱병") }, "포장용기"},
	{func(k, _ string) bool { return containsAny(k, toyTokens) }, "품목"},
	{func(k, o string) bool { return strings.Contains(o, "캐릭터") || strings.Contains(k, "캐릭터") }, "캐릭터"},
	{func(k, o string) bool { return isAgeKey(o) || k == "대상연령" }, "대상연령"},
}

// classifyCheckKey 체크마크 항목의 카테고리 결정
func classifyCheckKey(key, originalKey string) (string, bool) {
	for _, rule := range checkRules {
		if rule.match(key, originalKey) {
			return rule.category, true
		}
	}
	return "", false
}

// AnalyzeVocabulary 학습된 체크마크 항목 어휘에서 카테고리 매핑 유도
// 분류할 수 없는 항목은 매핑에 넣지 않는다
func AnalyzeVocabulary(items []string) map[string]string {
	mapping := make(map[string]string)

	for _, item := range items {
		category := ""

		switch {
		case strings.Contains(item, "단계") || item == "프레":
			category = "단계"
		case item == "분유":
			category = "품목"
		case oneOf(item, "일반분유", "특수분유", "산양분유", "조제분유"):
			category = "종류"
		case strings.Contains(item, "분유"):
			category = "종류"
		case strings.HasSuffix(item, "개월~") || strings.HasSuffix(item, "개월"):
			category = "최소연령"
		case oneOf(item, "분말", "액상", "미음", "죽", "진밥", "아기밥"):
			category = "형태"
		case oneOf(item, "상온", "냉장", "냉동"):
			category = "보관방식"
		case oneOf(item, "파우치", "플라스틱병", "병", "캔"):
			category = "포장용기"
		case strings.Contains(item, "이유식") || oneOf(item, "양념", "반찬", "아기국", "수제이유식"):
			category = "품목"
		case oneOf(item, "국내산", "수입산"):
			category = "원산지"
		case strings.Contains(item, "인증"):
			category = "인증"
		case containsAny(item, toyTokens):
			category = "품목"
		case ageRangeRe.MatchString(item):
			category = "대상연령"
		case strings.HasSuffix(item, "세"):
			category = "대상연령"
		}

		if category != "" {
			mapping[item] = category
		}
	}

	return mapping
}

// oneOf s가 후보 중 하나와 정확히 일치하는지
func oneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

// containsAny s가 토큰 중 하나라도 포함하는지
func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
