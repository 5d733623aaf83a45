package normalize

import (
	"testing"
)

// TestIsCheckGlyph 체크마크 글리프 판별 검증
func TestIsCheckGlyph(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"흰 원", "○", true},
		{"검은 원", "●", true},
		{"라틴 대문자 O", "O", true},
		{"라틴 소문자 o", "o", true},
		{"공백이 둘러싼 글리프", "  ○  ", true},
		{"글리프가 섞인 문장", "○ 가능", false},
		{"일반 텍스트", "국내산", false},
		{"빈 문자열", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCheckGlyph(tt.value); got != tt.expected {
				t.Errorf("IsCheckGlyph(%q) = %v, 기대값 %v", tt.value, got, tt.expected)
			}
		})
	}
}

// TestCleanValue 값 정제 검증
func TestCleanValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"괄호 내용 제거", "한빛식품 (주)", "한빛식품"},
		{"인증번호 확인 꼬리 절단", "식약처 인증번호 확인 12345", "식약처"},
		{"바로가기 꼬리 절단", "상세 페이지 바로가기", "상세 페이지"},
		{"웹사이트 안내 문구 제거", "제조사 웹사이트 참조", "참조"},
		{"값 전체가 글리프면 보존", "○", "○"},
		{"라틴 글리프도 전체 일치면 보존", "O", "O"},
		{"문장에 섞인 원형 글리프 제거", "가능○", "가능"},
		{"라틴 O는 문장 안에서 제거하지 않음", "COOL 보관", "COOL 보관"},
		{"연속 공백 정리", "쌀   당근", "쌀 당근"},
		{"정제 후 빈 값", "(주)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanValue(tt.value); got != tt.expected {
				t.Errorf("CleanValue(%q) = %q, 기대값 %q", tt.value, got, tt.expected)
			}
		})
	}
}

// TestSimplifyKey 항목명 정리 검증
func TestSimplifyKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"별칭 치환", "재료 종류", "재료"},
		{"반찬종류 별칭", "반찬종류", "종류"},
		{"대괄호 제거", "[기본정보]", "기본정보"},
		{"그대로 유지", "원산지", "원산지"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimplifyKey(tt.key); got != tt.expected {
				t.Errorf("SimplifyKey(%q) = %q, 기대값 %q", tt.key, got, tt.expected)
			}
		})
	}
}

// TestClassifyCheckKey 체크마크 항목 분류 캐스케이드 검증
func TestClassifyCheckKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		originalKey string
		category    string
		matched     bool
	}{
		{"단계 표현", "1단계", "1단계", "단계", true},
		{"프레 단계", "프레", "프레", "단계", true},
		{"분유는 품목", "산양분유", "산양분유", "품목", true},
		{"개월 접미사는 최소연령", "6개월", "6개월", "최소연령", true},
		{"형태 토큰", "분말", "분말", "형태", true},
		{"보관방식 토큰", "냉동", "냉동", "보관방식", true},
		{"포장용기 토큰", "파우치", "파우치", "포장용기", true},
		{"완구 토큰은 품목", "블록놀이", "블록놀이", "품목", true},
		{"캐릭터 항목", "뽀로로캐릭터", "뽀로로캐릭터", "캐릭터", true},
		{"연령 범위 표현은 대상연령", "12개월 이상", "12개월 이상", "대상연령", true},
		{"분류 불가", "알수없음", "알수없음", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, matched := classifyCheckKey(tt.key, tt.originalKey)
			if category != tt.category || matched != tt.matched {
				t.Errorf("classifyCheckKey(%q) = (%q, %v), 기대값 (%q, %v)",
					tt.key, category, matched, tt.category, tt.matched)
			}
		})
	}
}

// TestAnalyzeVocabulary 어휘 기반 매핑 유도 검증
func TestAnalyzeVocabulary(t *testing.T) {
	items := []string{
		"3단계",
		"분유",
		"산양분유",
		"12개월",
		"액상",
		"냉장",
		"파우치",
		"이유식",
		"국내산",
		"유기농인증",
		"퍼즐",
		"외계어항목",
	}

	mapping := AnalyzeVocabulary(items)

	expected := map[string]string{
		"3단계":   "단계",
		"분유":    "품목",
		"산양분유":  "종류",
		"12개월":  "최소연령",
		"액상":    "형태",
		"냉장":    "보관방식",
		"파우치":   "포장용기",
		"이유식":   "품목",
		"국내산":   "원산지",
		"유기농인증": "인증",
		"퍼즐":    "품목",
	}

	for item, category := range expected {
		if got := mapping[item]; got != category {
			t.Errorf("mapping[%q] = %q, 기대값 %q", item, got, category)
		}
	}

	if _, ok := mapping["외계어항목"]; ok {
		t.Error("분류 불가 항목이 매핑에 포함됐습니다")
	}
}
