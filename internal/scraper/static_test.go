package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleListingHTML = `<!DOCTYPE html>
<html>
<body>
	<div class="list_tab_summary"><strong class="list_num">(전체 1,234개)</strong></div>
	<ul class="product_list">
		<li class="prod_item"><div class="prod_info"><a class="prod_link" href="/info/?pcode=1">상품A</a></div></li>
		<li class="prod_item"><div class="prod_info"><a class="prod_link" href="/info/?pcode=2">상품B</a></div></li>
		<li class="prod_item"><div class="prod_info"><a class="prod_link" href="/info/?pcode=3">상품C</a></div></li>
	</ul>
</body>
</html>`

// TestProbeCategory 카테고리 정적 조사 검증
func TestProbeCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sampleListingHTML))
	}))
	defer server.Close()

	probe := NewCategoryProbe("test-agent")
	result, err := probe.ProbeCategory(server.URL)
	if err != nil {
		t.Fatalf("ProbeCategory() 실패: %v", err)
	}

	if result.ItemsOnPage != 3 {
		t.Errorf("ItemsOnPage = %d, 기대값 3", result.ItemsOnPage)
	}
	if result.TotalCount != 1234 {
		t.Errorf("TotalCount = %d, 기대값 1234", result.TotalCount)
	}
}

// TestProbeCategoryServerError 서버 오류는 에러로 전파
func TestProbeCategoryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewCategoryProbe("test-agent").ProbeCategory(server.URL); err == nil {
		t.Error("서버 오류인데 에러가 없습니다")
	}
}

// TestEstimatePages 순회 페이지 수 산정 검증
func TestEstimatePages(t *testing.T) {
	tests := []struct {
		name         string
		totalCount   int
		itemsPerPage int
		expected     int
	}{
		{"전체 수를 모르면 1페이지", 0, 40, 1},
		{"한 페이지 분량 이하", 39, 40, 1},
		{"한 페이지를 살짝 넘김", 41, 40, 2},
		{"정확히 나누어떨어짐", 120, 40, 3},
		{"상한 10페이지", 10000, 40, 10},
		{"페이지당 수가 0이면 기본값 40", 80, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatePages(tt.totalCount, tt.itemsPerPage); got != tt.expected {
				t.Errorf("EstimatePages(%d, %d) = %d, 기대값 %d",
					tt.totalCount, tt.itemsPerPage, got, tt.expected)
			}
		})
	}
}
