package normalize

import (
	"sort"
	"sync"
)

// CategoryMapping 원시 항목명 → 카테고리 변환표
// 생성 이후 변하지 않으므로 여러 고루틴에서 동시에 조회해도 안전하다
type CategoryMapping struct {
	table map[string]string
}

// NewCategoryMapping 레이어를 합쳐 매핑 생성
// 뒤에 오는 레이어가 앞 레이어를 덮어쓴다 (기본 규칙 → 학습 결과 → 수동 보정 순서로 전달)
func NewCategoryMapping(layers ...map[string]string) CategoryMapping {
	table := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			table[k] = v
		}
	}
	return CategoryMapping{table: table}
}

// Lookup 항목명으로 카테고리 조회
func (m CategoryMapping) Lookup(key string) (string, bool) {
	category, ok := m.table[key]
	return category, ok
}

// Len 매핑 항목 수
func (m CategoryMapping) Len() int {
	return len(m.table)
}

// Vocabulary 학습 단계에서 수집되는 체크마크 항목명 집합
// 여러 탭이 동시에 추가하므로 뮤텍스로 보호한다
// 추가만 가능하고 제거는 없다
type Vocabulary struct {
	mu    sync.Mutex
	items map[string]bool
}

// NewVocabulary 빈 어휘 집합 생성
func NewVocabulary() *Vocabulary {
	return &Vocabulary{items: make(map[string]bool)}
}

// Add 항목명 추가, 새 항목이면 true
func (v *Vocabulary) Add(item string) bool {
	if item == "" {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.items[item] {
		return false
	}
	v.items[item] = true
	return true
}

// AddAll 항목명 일괄 추가, 새로 추가된 수를 반환
func (v *Vocabulary) AddAll(items []string) int {
	added := 0
	for _, item := range items {
		if v.Add(item) {
			added++
		}
	}
	return added
}

// Len 현재 항목 수
func (v *Vocabulary) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

// Snapshot 정렬된 항목 목록 사본
func (v *Vocabulary) Snapshot() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]string, 0, len(v.items))
	for item := range v.items {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
