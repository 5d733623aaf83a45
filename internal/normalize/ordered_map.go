package normalize

// Entry 카테고리 하나와 그에 속한 값 목록
type Entry struct {
	Key    string
	Values []string
}

// OrderedMap 삽입 순서를 유지하는 카테고리별 값 목록
// 역할: 정규화 결과를 첫 등장 순서대로 누적한다
// 같은 카테고리에 같은 값을 다시 넣어도 결과가 변하지 않는다 (병합 멱등)
type OrderedMap struct {
	keys   []string
	values map[string][]string
}

// NewOrderedMap 빈 맵 생성
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string][]string)}
}

// Merge 카테고리에 값 추가
// 카테고리가 처음 등장하면 순서 목록 끝에 붙는다
// 이미 같은 값이 있으면 아무 일도 하지 않는다
func (m *OrderedMap) Merge(key, value string) {
	existing, ok := m.values[key]
	if !ok {
		m.keys = append(m.keys, key)
		m.values[key] = []string{value}
		return
	}

	for _, v := range existing {
		if v == value {
			return
		}
	}
	m.values[key] = append(existing, value)
}

// Get 카테고리의 값 목록 조회
func (m *OrderedMap) Get(key string) ([]string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len 카테고리 수
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Entries 첫 등장 순서대로 전체 항목 반환
func (m *OrderedMap) Entries() []Entry {
	entries := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, Entry{Key: k, Values: m.values[k]})
	}
	return entries
}
