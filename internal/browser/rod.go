package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// defaultOpTimeout 개별 브라우저 조작의 기본 타임아웃
const defaultOpTimeout = 10 * time.Second

// DefaultUserAgent 실제 브라우저와 동일한 UA 문자열
// 기본 헤드리스 UA는 차단 대상이 되기 쉽다
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

// heavyResourceTypes 차단 대상 리소스 유형
var heavyResourceTypes = map[proto.NetworkResourceType]bool{
	proto.NetworkResourceTypeImage:      true,
	proto.NetworkResourceTypeFont:       true,
	proto.NetworkResourceTypeStylesheet: true,
	proto.NetworkResourceTypeMedia:      true,
}

// RodBrowser go-rod 기반 Browser 구현
type RodBrowser struct {
	browser *rod.Browser
}

// Launch 브라우저 기동 후 연결
func Launch(headless bool) (*RodBrowser, error) {
	l := launcher.New().Headless(headless)

	// 자체 서명/만료 인증서 사이트도 접근 가능하도록 인증서 검증을 건너뜀
	l = l.Set("ignore-certificate-errors")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("브라우저 기동 실패: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("브라우저 연결 실패: %w", err)
	}

	utils.Debugf("브라우저 기동 완료: %s", controlURL)
	return &RodBrowser{browser: b}, nil
}

// NewPage 새 탭 생성
func (rb *RodBrowser) NewPage(opts PageOptions) (Page, error) {
	page, err := rb.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("탭 생성 실패(브라우저가 종료됐을 수 있음): %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}

	// UA와 언어를 실제 사용자 환경에 맞춤
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: "ko-KR",
	}); err != nil {
		utils.Warnf("UA 설정 실패: %v", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1366,
		Height:            800,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		utils.Warnf("뷰포트 설정 실패: %v", err)
	}

	rp := &rodPage{page: page, timeout: timeout}

	if opts.BlockHeavyResources {
		rp.blockHeavyResources()
	}

	return rp, nil
}

// Close 브라우저 종료
func (rb *RodBrowser) Close() {
	if rb.browser != nil {
		rb.browser.MustClose()
		utils.Debugf("브라우저 종료 완료")
	}
}

// rodPage go-rod 기반 Page 구현
type rodPage struct {
	page    *rod.Page
	timeout time.Duration
}

// blockHeavyResources 무거운 리소스 요청을 하이재킹으로 차단
func (p *rodPage) blockHeavyResources() {
	router := p.page.HijackRequests()

	router.MustAdd("*", func(ctx *rod.Hijack) {
		if heavyResourceTypes[ctx.Request.Type()] {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	go router.Run()
}

// Navigate 지정 URL로 이동 후 DOM 로드 대기
func (p *rodPage) Navigate(url string) error {
	if err := p.page.Timeout(p.timeout).Navigate(url); err != nil {
		return fmt.Errorf("페이지 이동 실패 [%s]: %w", url, err)
	}
	return p.WaitDOMReady()
}

// WaitDOMReady DOM 로드 완료 대기
func (p *rodPage) WaitDOMReady() error {
	if err := p.page.Timeout(p.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("페이지 로드 대기 실패: %w", err)
	}
	return nil
}

// WaitIdle DOM 안정화 대기, 초과해도 무시
func (p *rodPage) WaitIdle(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	_ = p.page.Timeout(timeout).WaitDOMStable(300*time.Millisecond, 0)
}

// URL 현재 표시 중인 URL
func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Title 문서 제목
func (p *rodPage) Title() (string, error) {
	raw, err := p.Eval(`() => document.title`)
	if err != nil {
		return "", err
	}
	var title string
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", err
	}
	return title, nil
}

// Eval 페이지 안에서 스크립트 실행
func (p *rodPage) Eval(js string, args ...interface{}) ([]byte, error) {
	res, err := p.page.Timeout(p.timeout).Eval(js, args...)
	if err != nil {
		return nil, fmt.Errorf("스크립트 실행 실패: %w", err)
	}
	return json.Marshal(res.Value)
}

// Elements 셀렉터 매칭 요소 목록
func (p *rodPage) Elements(selector string) ([]Element, error) {
	els, err := p.page.Timeout(p.timeout).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("요소 조회 실패 [%s]: %w", selector, err)
	}

	result := make([]Element, 0, len(els))
	for _, el := range els {
		result = append(result, &rodElement{el: el})
	}
	return result, nil
}

// clickTextJS 표시 텍스트 일치 요소를 버튼→링크→일반 요소 순으로 찾아 클릭
const clickTextJS = `(label) => {
	const sels = ['button', 'a', '*'];
	for (const sel of sels) {
		const els = document.querySelectorAll(sel);
		for (const el of els) {
			if (el.childElementCount !== 0) {
				continue;
			}
			const text = (el.innerText || '').trim();
			if (text === label) {
				el.click();
				return true;
			}
		}
	}
	return false;
}`

// ClickText 표시 텍스트가 일치하는 요소 클릭
func (p *rodPage) ClickText(label string) (bool, error) {
	raw, err := p.Eval(clickTextJS, label)
	if err != nil {
		return false, err
	}
	var clicked bool
	if err := json.Unmarshal(raw, &clicked); err != nil {
		return false, err
	}
	return clicked, nil
}

// ScrollBy 세로 스크롤
func (p *rodPage) ScrollBy(px int) error {
	_, err := p.Eval(`(step) => window.scrollBy(0, step)`, px)
	return err
}

// Close 탭 닫기
func (p *rodPage) Close() error {
	return p.page.Close()
}

// rodElement go-rod 기반 Element 구현
type rodElement struct {
	el *rod.Element
}

// Text 표시 텍스트
func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

// Attribute 속성값, 없으면 빈 문자열
func (e *rodElement) Attribute(name string) (string, error) {
	val, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

// Click 클릭
func (e *rodElement) Click(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return e.el.Timeout(timeout).Click(proto.InputMouseButtonLeft, 1)
}
