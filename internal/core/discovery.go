package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/normalize"
	"github.com/seojaehong1/crawlerV6/internal/scraper"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// Discoverer 패턴 학습 오케스트레이터
// 역할: 카테고리 목록을 순회하며 상품 상세 페이지에서 체크마크 항목명을 모은다
// 목록 순회는 순차, 상세 스캔은 게이트 제한 아래 동시 실행
type Discoverer struct {
	browser   browser.Browser
	gate      *browser.TabGate
	collector *scraper.LinkCollector
	paginator *scraper.Paginator
	scanner   *scraper.CheckmarkScanner
	config    models.DiscoveryConfig
}

// NewDiscoverer 오케스트레이터 생성
func NewDiscoverer(b browser.Browser, gate *browser.TabGate, config models.DiscoveryConfig) *Discoverer {
	return &Discoverer{
		browser:   b,
		gate:      gate,
		collector: scraper.NewLinkCollector(config.SiteMarker),
		paginator: scraper.NewPaginator(),
		scanner:   scraper.NewCheckmarkScanner(),
		config:    config,
	}
}

// Run 학습 실행
// 반환값은 정렬된 체크마크 항목명 목록
// 개별 상세 페이지의 실패는 학습을 멈추지 않는다
func (d *Discoverer) Run() ([]string, error) {
	vocab := normalize.NewVocabulary()

	maxPages := d.config.MaxPages
	if maxPages == 0 {
		maxPages = d.autoSizePages()
	}

	listing, err := d.browser.NewPage(browser.PageOptions{})
	if err != nil {
		return nil, fmt.Errorf("목록 탭 생성 실패: %w", err)
	}
	defer listing.Close()

	if err := listing.Navigate(d.config.CategoryURL); err != nil {
		return nil, fmt.Errorf("카테고리 이동 실패: %w", err)
	}
	listing.WaitIdle(3 * time.Second)

	utils.Infof("패턴 학습 시작: %s (최대 %d페이지, 동시 탭 %d개)",
		d.config.CategoryURL, maxPages, d.gate.Size())

	var wg sync.WaitGroup
	scanned := 0
	capReached := false

	for pageNum := 1; pageNum <= maxPages && !capReached; pageNum++ {
		if pageNum > 1 {
			if !d.paginator.Advance(listing, pageNum) {
				utils.Warnf("%d페이지 이동 실패, 학습을 %d페이지까지로 마감합니다", pageNum, pageNum-1)
				break
			}
		}

		browser.SlowScroll(listing, 4, 800, func() {
			utils.HumanDelay(200 * time.Millisecond)
		})

		links := d.collector.Collect(listing, 0)
		if len(links) == 0 {
			utils.Infof("%d페이지에 상품이 없어 학습을 마감합니다", pageNum)
			break
		}
		utils.Infof("%d페이지: 상품 링크 %d개", pageNum, len(links))

		for _, link := range links {
			if d.config.MaxTotal > 0 && scanned >= d.config.MaxTotal {
				capReached = true
				break
			}
			scanned++

			target := resolveLink(d.config.CategoryURL, link)

			// 탭을 닫은 다음에 슬롯을 반납해야 동시 탭 수가 게이트 크기를 넘지 않는다
			d.gate.Acquire()
			wg.Add(1)
			go func(url string) {
				defer wg.Done()
				defer d.gate.Release()
				d.scanOne(url, vocab)
			}(target)
		}
	}

	wg.Wait()

	utils.Infof("패턴 학습 완료: %d개 상세 페이지에서 %d개 항목 수집", scanned, vocab.Len())
	return vocab.Snapshot(), nil
}

// autoSizePages 정적 조사로 순회 페이지 수 산정
func (d *Discoverer) autoSizePages() int {
	probe := scraper.NewCategoryProbe(browser.DefaultUserAgent)
	result, err := probe.ProbeCategory(d.config.CategoryURL)
	if err != nil {
		utils.Warnf("카테고리 정적 조사 실패, 1페이지만 학습합니다: %v", err)
		return 1
	}

	pages := scraper.EstimatePages(result.TotalCount, 40)
	utils.Infof("카테고리 전체 %d개 상품, %d페이지 학습 예정", result.TotalCount, pages)
	return pages
}

// scanOne 상세 페이지 1개에서 체크마크 항목 수집
// 패닉 포함 모든 실패는 이 작업 하나로 격리된다
func (d *Discoverer) scanOne(url string, vocab *normalize.Vocabulary) {
	defer func() {
		if r := recover(); r != nil {
			utils.Errorf("체크마크 스캔 중 패닉 [%s]: %v", url, r)
		}
	}()

	p, err := d.browser.NewPage(browser.PageOptions{BlockHeavyResources: true})
	if err != nil {
		utils.Warnf("스캔 탭 생성 실패 [%s]: %v", url, err)
		return
	}
	defer p.Close()

	if err := p.Navigate(url); err != nil {
		utils.Warnf("상세 페이지 이동 실패 [%s]: %v", url, err)
		return
	}
	p.WaitIdle(3 * time.Second)

	keys := d.scanner.Scan(p)
	if added := vocab.AddAll(keys); added > 0 {
		utils.Debugf("새 체크마크 항목 %d개 발견 [%s]", added, url)
	}
}
