package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// totalCountSelectors 카테고리 전체 상품 수 표기 셀렉터 후보
var totalCountSelectors = []string{
	"strong.list_num",
	"span.list_num",
	"div.list_tab_summary strong",
}

var countDigitsRe = regexp.MustCompile(`[\d,]+`)

// ProbeResult 카테고리 정적 조사 결과
type ProbeResult struct {
	// ItemsOnPage 첫 페이지에 보이는 상품 수
	ItemsOnPage int

	// TotalCount 표기된 전체 상품 수, 못 읽으면 0
	TotalCount int
}

// CategoryProbe 카테고리 규모 정적 조사기
// 역할: 브라우저 없이 HTTP 요청 한 번으로 카테고리 크기를 추정한다
// 순회할 페이지 수를 자동으로 정할 때 쓴다
type CategoryProbe struct {
	userAgent string
	timeout   time.Duration
}

// NewCategoryProbe 조사기 생성
func NewCategoryProbe(userAgent string) *CategoryProbe {
	return &CategoryProbe{
		userAgent: userAgent,
		timeout:   15 * time.Second,
	}
}

// ProbeCategory 카테고리 첫 페이지를 받아 상품 수 집계
func (cp *CategoryProbe) ProbeCategory(url string) (ProbeResult, error) {
	c := colly.NewCollector(
		colly.UserAgent(cp.userAgent),
	)
	c.SetRequestTimeout(cp.timeout)

	result := ProbeResult{}

	c.OnHTML("li.prod_item", func(_ *colly.HTMLElement) {
		result.ItemsOnPage++
	})

	for _, selector := range totalCountSelectors {
		c.OnHTML(selector, func(e *colly.HTMLElement) {
			if result.TotalCount > 0 {
				return
			}
			if n := parseCountText(e.Text); n > 0 {
				result.TotalCount = n
			}
		})
	}

	if err := c.Visit(url); err != nil {
		return ProbeResult{}, err
	}

	utils.Debugf("카테고리 조사 완료: 첫 페이지 %d개, 전체 표기 %d개", result.ItemsOnPage, result.TotalCount)
	return result, nil
}

// parseCountText "(전체 1,234개)" 같은 표기에서 숫자 추출
func parseCountText(text string) int {
	m := countDigitsRe.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// EstimatePages 전체 상품 수로 순회할 페이지 수 추정
// 페이지당 상품 수로 나누고 1 이상 10 이하로 자른다
// 전체 수를 못 읽었으면 1페이지만 본다
func EstimatePages(totalCount, itemsPerPage int) int {
	if itemsPerPage < 1 {
		itemsPerPage = 40
	}
	if totalCount < 1 {
		return 1
	}

	pages := totalCount / itemsPerPage
	if totalCount%itemsPerPage != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	if pages > 10 {
		pages = 10
	}
	return pages
}
