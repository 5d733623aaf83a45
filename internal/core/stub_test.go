package core

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
)

// stubElement 테스트용 Element 구현
type stubElement struct {
	text  string
	attrs map[string]string
}

func (e *stubElement) Text() (string, error) { return e.text, nil }

func (e *stubElement) Attribute(name string) (string, error) { return e.attrs[name], nil }

func (e *stubElement) Click(_ time.Duration) error { return nil }

func stubLink(href string) *stubElement {
	return &stubElement{text: "상품", attrs: map[string]string{"href": href}}
}

// stubBrowser 테스트용 Browser 구현
// 상세 탭(리소스 차단 옵션이 켜진 탭)의 동시 개수와 누적 개수를 기록한다
type stubBrowser struct {
	mu sync.Mutex

	// elements 모든 탭이 공유하는 셀렉터 → 요소 맵
	elements map[string][]browser.Element

	// pagedListing 페이지 번호별 목록 링크
	// nil이 아니면 목록 셀렉터 조회는 elements 대신 현재 목록 페이지의 링크를 돌려준다
	pagedListing map[int][]browser.Element

	// specRowsJSON 스펙 테이블 평가 결과로 돌려줄 JSON
	specRowsJSON string

	// mallPricesJSON 판매가 목록 평가 결과로 돌려줄 JSON
	mallPricesJSON string

	// hasMovePage 목록이 movePage 함수를 노출하는 것처럼 행동할지 여부
	hasMovePage bool

	// listPage 현재 목록 페이지 번호, movePage 평가가 갱신한다
	listPage int

	// movePageCalls movePage 호출 평가 횟수
	movePageCalls int

	// driftURL driftOnURLCall번째 목록 URL 조회에서 돌려줄 이탈 주소
	driftURL       string
	driftOnURLCall int
	urlCalls       int

	// pages 생성 순서대로의 모든 탭 (첫 탭이 목록 탭)
	pages []*stubPage

	openDetail    int
	maxOpenDetail int
	totalDetail   int
}

func (b *stubBrowser) NewPage(opts browser.PageOptions) (browser.Page, error) {
	b.mu.Lock()
	page := &stubPage{owner: b, detail: opts.BlockHeavyResources, index: len(b.pages)}
	b.pages = append(b.pages, page)

	if opts.BlockHeavyResources {
		b.openDetail++
		b.totalDetail++
		if b.openDetail > b.maxOpenDetail {
			b.maxOpenDetail = b.openDetail
		}
	}
	b.mu.Unlock()

	return page, nil
}

func (b *stubBrowser) Close() {}

// stubPage 테스트용 Page 구현
type stubPage struct {
	owner     *stubBrowser
	detail    bool
	index     int
	url       string
	navigated []string
}

func (p *stubPage) Navigate(url string) error {
	p.url = url
	p.navigated = append(p.navigated, url)
	// 동시 실행이 실제로 겹치도록 약간의 처리 시간을 흉내 낸다
	time.Sleep(2 * time.Millisecond)
	return nil
}

func (p *stubPage) WaitDOMReady() error { return nil }

func (p *stubPage) WaitIdle(_ time.Duration) {}

func (p *stubPage) URL() string {
	if p.index == 0 && p.owner.driftOnURLCall > 0 {
		p.owner.mu.Lock()
		defer p.owner.mu.Unlock()
		p.owner.urlCalls++
		if p.owner.urlCalls == p.owner.driftOnURLCall {
			return p.owner.driftURL
		}
	}
	return p.url
}

func (p *stubPage) Title() (string, error) { return "테스트 문서", nil }

func (p *stubPage) Eval(js string, args ...interface{}) ([]byte, error) {
	switch {
	case strings.Contains(js, "mall-price"):
		if p.owner.mallPricesJSON != "" {
			return []byte(p.owner.mallPricesJSON), nil
		}
		return []byte("[]"), nil
	case strings.Contains(js, "table tr"):
		if p.owner.specRowsJSON != "" {
			return []byte(p.owner.specRowsJSON), nil
		}
		return []byte("[]"), nil
	case strings.Contains(js, "typeof movePage"):
		if p.owner.hasMovePage {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case strings.Contains(js, "movePage("):
		p.owner.mu.Lock()
		p.owner.movePageCalls++
		if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(js, "() => movePage("), ")")); err == nil {
			p.owner.listPage = n
		}
		p.owner.mu.Unlock()
		return []byte("null"), nil
	default:
		return []byte("null"), nil
	}
}

func (p *stubPage) Elements(selector string) ([]browser.Element, error) {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	if p.owner.pagedListing != nil && selector == listingSelector {
		return p.owner.pagedListing[p.owner.listPage], nil
	}
	return p.owner.elements[selector], nil
}

func (p *stubPage) ClickText(_ string) (bool, error) { return false, nil }

func (p *stubPage) ScrollBy(_ int) error { return nil }

func (p *stubPage) Close() error {
	if p.detail {
		p.owner.mu.Lock()
		p.owner.openDetail--
		p.owner.mu.Unlock()
	}
	return nil
}
