package scraper

import (
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
)

// fakeElement 테스트용 Element 구현
type fakeElement struct {
	text     string
	attrs    map[string]string
	clicks   int
	clickErr error
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Click(_ time.Duration) error {
	e.clicks++
	return e.clickErr
}

// fakePage 테스트용 Page 구현
// Eval 동작은 evalFn으로, 요소 조회는 elements 맵으로 정의한다
type fakePage struct {
	url       string
	title     string
	elements  map[string][]browser.Element
	evalFn    func(js string, args ...interface{}) ([]byte, error)
	clickText map[string]bool
	navigated []string
}

func (p *fakePage) Navigate(url string) error {
	p.navigated = append(p.navigated, url)
	p.url = url
	return nil
}

func (p *fakePage) WaitDOMReady() error { return nil }

func (p *fakePage) WaitIdle(_ time.Duration) {}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Title() (string, error) { return p.title, nil }

func (p *fakePage) Eval(js string, args ...interface{}) ([]byte, error) {
	if p.evalFn == nil {
		return []byte("null"), nil
	}
	return p.evalFn(js, args...)
}

func (p *fakePage) Elements(selector string) ([]browser.Element, error) {
	return p.elements[selector], nil
}

func (p *fakePage) ClickText(label string) (bool, error) {
	return p.clickText[label], nil
}

func (p *fakePage) ScrollBy(_ int) error { return nil }

func (p *fakePage) Close() error { return nil }

// linkElement href와 표시 텍스트를 가진 링크 요소 생성
func linkElement(href, text string) *fakeElement {
	return &fakeElement{text: text, attrs: map[string]string{"href": href}}
}
