package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/normalize"
	"github.com/seojaehong1/crawlerV6/internal/scraper"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// detailURLMarkers 목록 탭이 상세 페이지로 이탈했는지 판별하는 URL 조각
var detailURLMarkers = []string{"/info/", "pcode="}

// Crawler 본 수집 오케스트레이터
// 역할: 카테고리 목록을 페이지 단위로 순회하며 상품 상세를 추출해 레코드로 만든다
// 탐지 회피를 위해 전 과정이 순차 실행이며 요청 사이에 사람 같은 지연을 둔다
type Crawler struct {
	browser    browser.Browser
	collector  *scraper.LinkCollector
	paginator  *scraper.Paginator
	extractor  *scraper.DetailExtractor
	normalizer *normalize.Normalizer
	config     models.CrawlConfig
}

// NewCrawler 오케스트레이터 생성
func NewCrawler(b browser.Browser, mapping normalize.CategoryMapping, config models.CrawlConfig) *Crawler {
	return &Crawler{
		browser:    b,
		collector:  scraper.NewLinkCollector(config.SiteMarker),
		paginator:  scraper.NewPaginator(),
		extractor:  scraper.NewDetailExtractor(),
		normalizer: normalize.NewNormalizer(mapping),
		config:     config,
	}
}

// CrawlResult 수집 결과
type CrawlResult struct {
	Records []models.ProductRecord
	Stats   models.CrawlStats
}

// Run 수집 실행
// 페이지 이동이 막히면 그때까지 모은 레코드로 정상 종료한다
func (c *Crawler) Run() (*CrawlResult, error) {
	start := time.Now()
	result := &CrawlResult{Records: make([]models.ProductRecord, 0)}
	seen := make(map[string]bool)

	navTimeout := time.Duration(c.config.NavTimeoutMs) * time.Millisecond
	baseDelay := time.Duration(c.config.BaseDelayMs) * time.Millisecond

	listing, err := c.browser.NewPage(browser.PageOptions{Timeout: navTimeout})
	if err != nil {
		return nil, fmt.Errorf("목록 탭 생성 실패: %w", err)
	}
	defer listing.Close()

	if err := listing.Navigate(c.config.CategoryURL); err != nil {
		return nil, fmt.Errorf("카테고리 이동 실패: %w", err)
	}
	listing.WaitIdle(3 * time.Second)

	utils.Infof("본 수집 시작: %s (최대 %d페이지)", c.config.CategoryURL, c.config.MaxPages)

	capReached := false

	for pageNum := 1; pageNum <= c.config.MaxPages && !capReached; pageNum++ {
		if pageNum > 1 {
			if !c.paginator.Advance(listing, pageNum) {
				utils.Warnf("%d페이지 이동 실패, %d페이지까지의 결과로 마감합니다", pageNum, pageNum-1)
				break
			}
		}

		browser.SlowScroll(listing, 4, 800, func() {
			utils.HumanDelay(300 * time.Millisecond)
		})

		links := c.collector.Collect(listing, c.config.ItemsPerPage)
		if len(links) == 0 {
			utils.Infof("%d페이지에 상품이 없어 수집을 마감합니다", pageNum)
			break
		}
		result.Stats.PagesVisited++

		bar := utils.NewProgressBar(len(links), fmt.Sprintf("%d페이지 수집", pageNum))

		for _, link := range links {
			if c.config.MaxTotal > 0 && result.Stats.ItemsTotal >= c.config.MaxTotal {
				utils.Infof("최대 수집 수 %d개 도달", c.config.MaxTotal)
				capReached = true
				break
			}

			target := resolveLink(c.config.CategoryURL, link)
			if seen[target] {
				_ = bar.Add(1)
				continue
			}
			seen[target] = true

			record, ok := c.crawlOne(target, navTimeout)
			_ = bar.Add(1)
			if !ok {
				result.Stats.ItemsFailed++
			} else {
				result.Records = append(result.Records, record)
				result.Stats.ItemsTotal++
			}

			utils.HumanDelay(baseDelay)

			// 상품 하나를 끝낼 때마다 목록 탭 이탈 여부를 확인한다
			c.recoverListing(listing, pageNum)
		}
	}

	result.Stats.Duration = time.Since(start).Seconds()
	utils.Infof("본 수집 완료: %d건 수집, %d건 실패, %d페이지, %.1f초",
		result.Stats.ItemsTotal, result.Stats.ItemsFailed,
		result.Stats.PagesVisited, result.Stats.Duration)

	return result, nil
}

// crawlOne 상품 1개 수집
// 패닉 포함 모든 실패는 이 상품 하나만 건너뛰게 한다
func (c *Crawler) crawlOne(target string, navTimeout time.Duration) (record models.ProductRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			utils.Errorf("상품 수집 중 패닉 [%s]: %v", target, r)
			ok = false
		}
	}()

	p, err := c.browser.NewPage(browser.PageOptions{Timeout: navTimeout})
	if err != nil {
		utils.Warnf("상세 탭 생성 실패 [%s]: %v", target, err)
		return record, false
	}
	defer p.Close()

	if err := p.Navigate(target); err != nil {
		utils.Warnf("상세 페이지 이동 실패 [%s]: %v", target, err)
		return record, false
	}
	p.WaitIdle(2 * time.Second)

	detail := c.extractor.Extract(p)

	record = models.ProductRecord{
		Title:      detail.Title,
		URL:        target,
		ImageURL:   detail.ImageURL,
		MinPrice:   detail.MinPrice,
		MaxPrice:   detail.MaxPrice,
		PriceTrend: detail.Trend,
		Attributes: c.normalizer.Normalize(detail.Specs),
	}

	if err := record.Validate(); err != nil {
		utils.Warnf("레코드 검증 실패, 건너뜀 [%s]: %v", target, err)
		return record, false
	}

	return record, true
}

// recoverListing 목록 탭 이탈 복구
// 목록 탭이 상세 페이지를 가리키고 있으면 카테고리를 다시 열고 현재 페이지로 돌아간다
func (c *Crawler) recoverListing(listing browser.Page, pageNum int) {
	current := listing.URL()
	drifted := false
	for _, marker := range detailURLMarkers {
		if strings.Contains(current, marker) {
			drifted = true
			break
		}
	}
	if !drifted {
		return
	}

	utils.Warnf("목록 탭이 상세 페이지로 이탈했습니다, 카테고리를 다시 엽니다: %s", current)
	if err := listing.Navigate(c.config.CategoryURL); err != nil {
		utils.Errorf("카테고리 복귀 실패: %v", err)
		return
	}
	listing.WaitIdle(3 * time.Second)

	if pageNum > 1 {
		c.paginator.Advance(listing, pageNum)
	}
}

// resolveLink 상대 경로 링크를 절대 URL로 변환
func resolveLink(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
