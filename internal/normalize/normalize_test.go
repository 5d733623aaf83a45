package normalize

import (
	"reflect"
	"sync"
	"testing"

	"github.com/seojaehong1/crawlerV6/internal/models"
)

func testMapping(learned map[string]string) CategoryMapping {
	return NewCategoryMapping(BaseCategoryRules, learned)
}

// TestNormalize 스펙 정규화 시나리오 검증
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		learned  map[string]string
		entries  []models.RawSpecEntry
		expected string
	}{
		{
			name: "일반 항목은 항목명:값으로",
			entries: []models.RawSpecEntry{
				{Key: "원산지", Value: "국내산"},
				{Key: "형태", Value: "분말"},
			},
			expected: "원산지:국내산/형태:분말",
		},
		{
			name: "체크마크 항목은 매핑 카테고리 아래로 이동",
			learned: map[string]string{
				"3단계": "단계",
			},
			entries: []models.RawSpecEntry{
				{Key: "3단계", Value: "○"},
				{Key: "국내산", Value: "○"},
			},
			expected: "단계:3단계/원산지:국내산",
		},
		{
			name: "매핑에 없는 체크마크는 규칙 캐스케이드로 분류",
			entries: []models.RawSpecEntry{
				{Key: "냉동", Value: "○"},
				{Key: "파우치", Value: "●"},
			},
			expected: "보관방식:냉동/포장용기:파우치",
		},
		{
			name: "분류 불가 체크마크는 버림",
			entries: []models.RawSpecEntry{
				{Key: "알수없음", Value: "○"},
				{Key: "원산지", Value: "국내산"},
			},
			expected: "원산지:국내산",
		},
		{
			name: "인증 체크마크는 인증 버킷, HACCP은 인증정보",
			entries: []models.RawSpecEntry{
				{Key: "원산지", Value: "국내산"},
				{Key: "유기농인증", Value: "○"},
				{Key: "HACCP", Value: "○"},
			},
			expected: "원산지:국내산/인증:유기농인증/인증정보:HACCP",
		},
		{
			name: "인증번호 값은 인증정보로",
			entries: []models.RawSpecEntry{
				{Key: "인증번호", Value: "제2023-123호 인증번호 확인"},
			},
			expected: "인증정보:제2023-123호",
		},
		{
			name: "등록년월은 맨 끝에",
			entries: []models.RawSpecEntry{
				{Key: "등록년월", Value: "2023.05"},
				{Key: "원산지", Value: "국내산"},
			},
			expected: "원산지:국내산/등록년월일:2023.05",
		},
		{
			name: "연령 항목명은 대상연령으로 치환",
			entries: []models.RawSpecEntry{
				{Key: "사용연령", Value: "12개월부터"},
			},
			expected: "대상연령:12개월부터",
		},
		{
			name: "캐릭터 항목명은 캐릭터로 치환",
			entries: []models.RawSpecEntry{
				{Key: "캐릭터 종류", Value: "뽀로로"},
			},
			expected: "캐릭터:뽀로로",
		},
		{
			name: "같은 카테고리 값은 쉼표로 합침",
			entries: []models.RawSpecEntry{
				{Key: "국내산", Value: "○"},
				{Key: "수입산", Value: "○"},
			},
			expected: "원산지:국내산,수입산",
		},
		{
			name: "항목명과 값이 같으면 버림",
			entries: []models.RawSpecEntry{
				{Key: "분말", Value: "분말"},
				{Key: "원산지", Value: "국내산"},
			},
			expected: "원산지:국내산",
		},
		{
			name: "빈 값은 버림",
			entries: []models.RawSpecEntry{
				{Key: "원산지", Value: ""},
				{Key: "형태", Value: "액상"},
			},
			expected: "형태:액상",
		},
		{
			name:     "빈 입력은 빈 문자열",
			entries:  nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(testMapping(tt.learned))
			if got := n.Normalize(tt.entries); got != tt.expected {
				t.Errorf("Normalize() = %q, 기대값 %q", got, tt.expected)
			}
		})
	}
}

// TestNormalizeDeterministic 같은 입력에는 항상 같은 출력
func TestNormalizeDeterministic(t *testing.T) {
	entries := []models.RawSpecEntry{
		{Key: "원산지", Value: "국내산"},
		{Key: "3단계", Value: "○"},
		{Key: "HACCP", Value: "○"},
		{Key: "등록년월", Value: "2023.05"},
	}
	n := NewNormalizer(testMapping(map[string]string{"3단계": "단계"}))

	first := n.Normalize(entries)
	for i := 0; i < 10; i++ {
		if got := n.Normalize(entries); got != first {
			t.Fatalf("반복 %d회차 출력이 다릅니다: %q != %q", i, got, first)
		}
	}
}

// TestCategoryMappingLayers 매핑 레이어 우선순위 검증
func TestCategoryMappingLayers(t *testing.T) {
	base := map[string]string{"국내산": "원산지", "파우치": "포장용기"}
	learned := map[string]string{"국내산": "재료원산지"}

	m := NewCategoryMapping(base, learned)

	if got, _ := m.Lookup("국내산"); got != "재료원산지" {
		t.Errorf("뒤 레이어가 앞 레이어를 덮어야 합니다: %q", got)
	}
	if got, _ := m.Lookup("파우치"); got != "포장용기" {
		t.Errorf("덮이지 않은 항목은 유지돼야 합니다: %q", got)
	}
	if _, ok := m.Lookup("없는항목"); ok {
		t.Error("없는 항목 조회가 성공했습니다")
	}
}

// TestOrderedMap 순서 유지와 병합 멱등성 검증
func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap()
	m.Merge("형태", "분말")
	m.Merge("원산지", "국내산")
	m.Merge("형태", "액상")
	m.Merge("형태", "분말") // 중복
	m.Merge("원산지", "국내산") // 중복

	expected := []Entry{
		{Key: "형태", Values: []string{"분말", "액상"}},
		{Key: "원산지", Values: []string{"국내산"}},
	}

	if got := m.Entries(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Entries() = %v, 기대값 %v", got, expected)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, 기대값 2", m.Len())
	}
}

// TestVocabulary 어휘 집합의 동시 추가 안전성 검증
func TestVocabulary(t *testing.T) {
	v := NewVocabulary()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.AddAll([]string{"HACCP", "유기농인증", "3단계"})
		}()
	}
	wg.Wait()

	if v.Len() != 3 {
		t.Errorf("Len() = %d, 기대값 3", v.Len())
	}

	expected := []string{"3단계", "HACCP", "유기농인증"}
	if got := v.Snapshot(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Snapshot() = %v, 기대값 %v", got, expected)
	}

	if v.Add("") {
		t.Error("빈 항목 추가가 성공했습니다")
	}
}
