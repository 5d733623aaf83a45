package scraper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// Paginator 목록 페이지네이션 컨트롤러
// 역할: 목록 페이지를 지정 페이지 번호로 이동시킨다
// 전략을 우선순위대로 시도하고 하나라도 성공하면 true
// 모든 전략이 실패하면 false를 반환하고 페이지 상태는 바꾸지 않는다
type Paginator struct {
	// clickTimeout 개별 클릭 시도의 타임아웃
	clickTimeout time.Duration

	// settle 페이지 전환 후 안정화 대기 시간
	settle time.Duration
}

// NewPaginator 페이지네이터 생성
func NewPaginator() *Paginator {
	return &Paginator{
		clickTimeout: 2 * time.Second,
		settle:       3 * time.Second,
	}
}

// Advance 지정 페이지 번호로 이동
// 이미 해당 페이지에 있어도 에러 없이 true를 반환한다 (재진입 안전)
func (pg *Paginator) Advance(p browser.Page, pageNum int) bool {
	// 전략 1: 페이지가 노출하는 movePage 함수 직접 호출
	if pg.callMovePage(p, pageNum) {
		utils.Debugf("movePage(%d) 직접 실행 성공", pageNum)
		return true
	}

	// 전략 2: 번호 버튼 클릭
	if pg.clickPageButton(p, pageNum) {
		utils.Debugf("movePage(%d) 버튼 클릭 성공", pageNum)
		return true
	}

	// 전략 3: 다음 페이지 그룹으로 이동 후 번호 버튼 재시도
	if pg.clickNextGroup(p) {
		if pg.clickPageButton(p, pageNum) {
			utils.Debugf("페이지 그룹 이동 후 movePage(%d) 버튼 클릭 성공", pageNum)
			return true
		}
	}

	utils.Warnf("movePage(%d) 실패 — 페이지 버튼과 함수 호출 모두 불가", pageNum)
	return false
}

// callMovePage movePage 함수가 있으면 직접 호출
func (pg *Paginator) callMovePage(p browser.Page, pageNum int) bool {
	raw, err := p.Eval(`() => typeof movePage === 'function'`)
	if err != nil {
		return false
	}

	var isFn bool
	if err := json.Unmarshal(raw, &isFn); err != nil || !isFn {
		return false
	}

	if _, err := p.Eval(fmt.Sprintf(`() => movePage(%d)`, pageNum)); err != nil {
		return false
	}

	if err := p.WaitDOMReady(); err != nil {
		return false
	}
	p.WaitIdle(pg.settle)
	return true
}

// clickPageButton 대상 페이지 번호가 걸린 버튼 클릭
func (pg *Paginator) clickPageButton(p browser.Page, pageNum int) bool {
	selector := fmt.Sprintf("a.num[onclick*='movePage(%d)']", pageNum)
	els, err := p.Elements(selector)
	if err != nil || len(els) == 0 {
		return false
	}

	if err := els[0].Click(pg.clickTimeout); err != nil {
		return false
	}

	if err := p.WaitDOMReady(); err != nil {
		return false
	}
	p.WaitIdle(pg.settle)
	return true
}

// clickNextGroup 다음 페이지 그룹 네비게이션 클릭
func (pg *Paginator) clickNextGroup(p browser.Page) bool {
	els, err := p.Elements("a.edge_nav.nav_next, a[class*='nav_next'], a[onclick*='movePage']")
	if err != nil || len(els) == 0 {
		return false
	}

	// 네비게이션 영역 마지막 요소가 "다음 그룹" 컨트롤
	if err := els[len(els)-1].Click(pg.clickTimeout); err != nil {
		return false
	}

	if err := p.WaitDOMReady(); err != nil {
		return false
	}
	p.WaitIdle(pg.settle)
	return true
}
