package scraper

import (
	"strings"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// linkSelectors 상품 링크 셀렉터 우선순위 목록
// 사이트 개편으로 구조가 바뀌어도 아래쪽 셀렉터가 받쳐준다
var linkSelectors = []string{
	"li.prod_item div.prod_info a.prod_link",
	"li.prod_item .prod_name a",
	"div.prod_info a.prod_link",
	"a[href*='/product/']",
	"a[href*='product/view.html']",
}

// skipLinkLabels 상품 상세가 아닌 링크의 표시 텍스트 (가격비교/옵션 선택 등)
var skipLinkLabels = []string{"가격", "비교", "옵션", "구성"}

// LinkCollector 목록 페이지에서 상품 상세 링크 수집기
// 역할: 셀렉터를 우선순위대로 시도해 처음 매칭된 셀렉터의 링크만 수집한다
// 중복 제거는 첫 등장 순서를 유지한다
type LinkCollector struct {
	// siteMarker 대상 사이트 식별 문자열, 외부 링크 필터용
	siteMarker string
}

// NewLinkCollector 링크 수집기 생성
func NewLinkCollector(siteMarker string) *LinkCollector {
	return &LinkCollector{siteMarker: siteMarker}
}

// Collect 상품 상세 링크 수집
// maxLinks가 0보다 크면 그 수에서 멈춘다
// 매칭되는 셀렉터가 하나도 없으면 빈 목록 (이 페이지에 상품 없음, 에러 아님)
func (c *LinkCollector) Collect(p browser.Page, maxLinks int) []string {
	links := make([]string, 0)
	seen := make(map[string]bool)

	for _, selector := range linkSelectors {
		els, err := p.Elements(selector)
		if err != nil {
			utils.Debugf("셀렉터 조회 실패 [%s]: %v", selector, err)
			continue
		}
		if len(els) == 0 {
			continue
		}

		for _, el := range els {
			if maxLinks > 0 && len(links) >= maxLinks {
				break
			}

			href, err := el.Attribute("href")
			if err != nil || href == "" {
				continue
			}
			if strings.HasPrefix(href, "javascript:") {
				continue
			}
			// 대상 사이트 링크가 아니면 제외 (상대경로는 허용)
			if !strings.Contains(href, c.siteMarker) && !strings.HasPrefix(href, "/") {
				continue
			}
			if seen[href] {
				continue
			}

			text, err := el.Text()
			if err != nil {
				continue
			}
			if isSkipLabel(text) {
				continue
			}

			seen[href] = true
			links = append(links, href)
		}

		// 우선순위가 가장 높은 매칭 셀렉터만 사용, 아래 셀렉터는 보지 않음
		break
	}

	return links
}

// isSkipLabel 상품 상세가 아닌 링크 텍스트인지 판별
func isSkipLabel(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, label := range skipLinkLabels {
		if strings.Contains(lowered, label) {
			return true
		}
	}
	return false
}
