package browser

import (
	"time"
)

// Browser 브라우저 게이트웨이
// 역할: 탭 생성/종료만 담당하고 DOM 접근은 Page에 위임한다
// 수집기와 추출기는 이 인터페이스만 사용하므로 테스트에서는 스텁으로 대체한다
type Browser interface {
	// NewPage 새 탭 생성
	NewPage(opts PageOptions) (Page, error)

	// Close 브라우저 종료
	Close()
}

// PageOptions 탭 생성 옵션
type PageOptions struct {
	// BlockHeavyResources 이미지/폰트/스타일시트/미디어 로딩 차단
	// 체크마크 스캔처럼 고동시성으로 도는 작업에서 속도를 위해 사용한다
	BlockHeavyResources bool

	// Timeout 개별 브라우저 조작의 타임아웃 (0이면 기본값 10초)
	Timeout time.Duration
}

// Page 브라우저 탭 1개
// 모든 조작은 타임아웃이 걸려 있으며 실패는 해당 조작의 지역 실패로 처리된다
type Page interface {
	// Navigate 지정 URL로 이동하고 DOM 로드를 기다림
	Navigate(url string) error

	// WaitDOMReady DOM 로드 완료 대기
	WaitDOMReady() error

	// WaitIdle 네트워크/DOM 안정화 대기 (초과해도 에러 아님, 최선 노력)
	WaitIdle(timeout time.Duration)

	// URL 현재 표시 중인 URL
	URL() string

	// Title 문서 제목
	Title() (string, error)

	// Eval 페이지 안에서 스크립트 실행, 반환값을 JSON으로 받음
	Eval(js string, args ...interface{}) ([]byte, error)

	// Elements 셀렉터에 매칭되는 요소 목록 (매칭 없으면 빈 목록)
	Elements(selector string) ([]Element, error)

	// ClickText 표시 텍스트가 label과 일치하는 요소를 버튼→링크→일반 요소 순으로 클릭
	// 클릭할 요소가 없으면 false
	ClickText(label string) (bool, error)

	// ScrollBy 세로 스크롤
	ScrollBy(px int) error

	// Close 탭 닫기
	Close() error
}

// Element DOM 요소 1개
type Element interface {
	// Text 표시 텍스트
	Text() (string, error)

	// Attribute 속성값 (없으면 빈 문자열)
	Attribute(name string) (string, error)

	// Click 클릭
	Click(timeout time.Duration) error
}

// SlowScroll 사람처럼 천천히 여러 번 나눠 스크롤
// 목록 페이지의 지연 로딩 콘텐츠를 펼치는 용도
func SlowScroll(p Page, steps int, stepPx int, delay func()) {
	for i := 0; i < steps; i++ {
		if err := p.ScrollBy(stepPx); err != nil {
			return
		}
		if delay != nil {
			delay()
		}
	}
}
