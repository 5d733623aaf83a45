package scraper

import (
	"reflect"
	"testing"

	"github.com/seojaehong1/crawlerV6/internal/browser"
)

// TestLinkCollectorCollect 상품 링크 수집 동작 검증
func TestLinkCollectorCollect(t *testing.T) {
	tests := []struct {
		name     string
		elements map[string][]browser.Element
		maxLinks int
		expected []string
	}{
		{
			name: "첫 등장 순서를 유지하며 중복 제거",
			elements: map[string][]browser.Element{
				"li.prod_item div.prod_info a.prod_link": {
					linkElement("https://prod.danawa.com/info/?pcode=1", "상품A"),
					linkElement("https://prod.danawa.com/info/?pcode=2", "상품B"),
					linkElement("https://prod.danawa.com/info/?pcode=1", "상품A 다시"),
					linkElement("https://prod.danawa.com/info/?pcode=3", "상품C"),
				},
			},
			maxLinks: 0,
			expected: []string{
				"https://prod.danawa.com/info/?pcode=1",
				"https://prod.danawa.com/info/?pcode=2",
				"https://prod.danawa.com/info/?pcode=3",
			},
		},
		{
			name: "최대 수집 수에서 멈춤",
			elements: map[string][]browser.Element{
				"li.prod_item div.prod_info a.prod_link": {
					linkElement("https://prod.danawa.com/info/?pcode=1", "상품A"),
					linkElement("https://prod.danawa.com/info/?pcode=2", "상품B"),
					linkElement("https://prod.danawa.com/info/?pcode=3", "상품C"),
				},
			},
			maxLinks: 2,
			expected: []string{
				"https://prod.danawa.com/info/?pcode=1",
				"https://prod.danawa.com/info/?pcode=2",
			},
		},
		{
			name: "javascript 링크와 외부 링크 제외, 상대경로 허용",
			elements: map[string][]browser.Element{
				"li.prod_item div.prod_info a.prod_link": {
					linkElement("javascript:void(0)", "상품A"),
					linkElement("https://ad.example.com/banner", "광고"),
					linkElement("/info/?pcode=7", "상품B"),
				},
			},
			maxLinks: 0,
			expected: []string{"/info/?pcode=7"},
		},
		{
			name: "가격비교류 링크 텍스트 제외",
			elements: map[string][]browser.Element{
				"li.prod_item div.prod_info a.prod_link": {
					linkElement("https://prod.danawa.com/info/?pcode=1", "가격비교"),
					linkElement("https://prod.danawa.com/info/?pcode=2", "옵션 선택"),
					linkElement("https://prod.danawa.com/info/?pcode=3", "상품C"),
				},
			},
			maxLinks: 0,
			expected: []string{"https://prod.danawa.com/info/?pcode=3"},
		},
		{
			name: "첫 번째로 매칭된 셀렉터만 사용",
			elements: map[string][]browser.Element{
				"li.prod_item div.prod_info a.prod_link": {
					linkElement("https://prod.danawa.com/info/?pcode=1", "상품A"),
				},
				"li.prod_item .prod_name a": {
					linkElement("https://prod.danawa.com/info/?pcode=99", "다른 셀렉터 상품"),
				},
			},
			maxLinks: 0,
			expected: []string{"https://prod.danawa.com/info/?pcode=1"},
		},
		{
			name: "상위 셀렉터가 비면 하위 셀렉터로 내려감",
			elements: map[string][]browser.Element{
				"a[href*='/product/']": {
					linkElement("https://prod.danawa.com/product/5", "상품E"),
				},
			},
			maxLinks: 0,
			expected: []string{"https://prod.danawa.com/product/5"},
		},
		{
			name:     "매칭 셀렉터가 없으면 빈 목록",
			elements: map[string][]browser.Element{},
			maxLinks: 0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLinkCollector("danawa.com")
			p := &fakePage{elements: tt.elements}

			got := c.Collect(p, tt.maxLinks)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Collect() = %v, 기대값 %v", got, tt.expected)
			}
		})
	}
}
