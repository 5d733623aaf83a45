package models

import (
	"fmt"
	"time"
)

// TrendPoint 가격 추이 그래프의 한 점
// 차트에서 값을 읽지 못한 구간은 Price가 nil로 남는다
type TrendPoint struct {
	Label string `json:"label"` // 기간 라벨 (예: "10.15")
	Price *int   `json:"price"` // 가격 (읽기 실패 시 null)
}

// RawSpecEntry 상세 페이지 테이블에서 추출한 원시 (항목, 값) 쌍
// 추출 직후 정규화기로 넘겨지며 따로 저장하지 않는다
type RawSpecEntry struct {
	Key   string // 항목명 (th 텍스트)
	Value string // 값 (td 텍스트, 정제 후)
}

// ProductRecord 상품 1개의 최종 수집 결과
// 상세 페이지 방문 성공 시 1회 생성되며 이후 수정하지 않는다
type ProductRecord struct {
	Title      string                  `json:"title"`       // 상품명
	URL        string                  `json:"url"`         // 상세 페이지 URL (수집 단위 내 유일키)
	ImageURL   string                  `json:"image_url"`   // 대표 이미지 URL (없으면 빈 문자열)
	MinPrice   *int                    `json:"min_price"`   // 최저가 (파싱 실패 시 nil)
	MaxPrice   *int                    `json:"max_price"`   // 최고가 (MinPrice 이상)
	PriceTrend map[string][]TrendPoint `json:"price_trend"` // 기간키 -> 추이 점 목록
	Attributes string                  `json:"attributes"`  // "카테고리:값,값" 항목을 /로 이은 문자열
}

// Validate 레코드 불변식 검증
func (r *ProductRecord) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("URL이 비어 있습니다")
	}
	if r.MinPrice != nil && *r.MinPrice < 0 {
		return fmt.Errorf("최저가가 음수입니다: %d", *r.MinPrice)
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return fmt.Errorf("최저가(%d)가 최고가(%d)보다 큽니다", *r.MinPrice, *r.MaxPrice)
	}
	return nil
}

// CrawlConfig 본 수집(PASS 2) 설정
type CrawlConfig struct {
	CategoryURL  string `json:"category_url"`   // 카테고리 목록 URL
	MaxPages     int    `json:"max_pages"`      // 최대 페이지 수 (기본:10)
	ItemsPerPage int    `json:"items_per_page"` // 페이지당 최대 상품 수 (0=전체)
	MaxTotal     int    `json:"max_total"`      // 전체 최대 상품 수 (0=무제한)
	Headless     bool   `json:"headless"`       // 무헤드 모드 (기본:true)
	BaseDelayMs  int    `json:"base_delay_ms"`  // 요청 간 기본 지연(ms), 지터가 더해진다
	NavTimeoutMs int    `json:"nav_timeout_ms"` // 페이지 이동 타임아웃(ms)
	SiteMarker   string `json:"site_marker"`    // 대상 사이트 식별 문자열 (링크 필터용)
}

// Validate 설정 검증
func (c *CrawlConfig) Validate() error {
	if c.MaxPages < 1 || c.MaxPages > 100 {
		return fmt.Errorf("페이지 수는 1-100 사이여야 합니다, 현재값: %d", c.MaxPages)
	}
	if c.ItemsPerPage < 0 {
		return fmt.Errorf("페이지당 상품 수는 0 이상이어야 합니다, 현재값: %d", c.ItemsPerPage)
	}
	if c.MaxTotal < 0 {
		return fmt.Errorf("전체 상품 수 제한은 0 이상이어야 합니다, 현재값: %d", c.MaxTotal)
	}
	if c.BaseDelayMs < 0 || c.BaseDelayMs > 60000 {
		return fmt.Errorf("기본 지연은 0-60000ms 사이여야 합니다, 현재값: %d", c.BaseDelayMs)
	}
	return nil
}

// DiscoveryConfig 패턴 학습(PASS 1) 설정
type DiscoveryConfig struct {
	CategoryURL string `json:"category_url"` // 카테고리 목록 URL
	MaxPages    int    `json:"max_pages"`    // 최대 페이지 수 (0=상품 수 기반 자동 산정)
	MaxTotal    int    `json:"max_total"`    // 전체 최대 스캔 수 (0=무제한)
	Tabs        int    `json:"tabs"`         // 동시 탭 수 (기본:15)
	Headless    bool   `json:"headless"`     // 무헤드 모드
	SiteMarker  string `json:"site_marker"`  // 대상 사이트 식별 문자열
}

// Validate 설정 검증
func (c *DiscoveryConfig) Validate() error {
	if c.MaxPages < 0 || c.MaxPages > 100 {
		return fmt.Errorf("페이지 수는 0-100 사이여야 합니다, 현재값: %d", c.MaxPages)
	}
	if c.Tabs < 1 || c.Tabs > 32 {
		return fmt.Errorf("동시 탭 수는 1-32 사이여야 합니다, 현재값: %d", c.Tabs)
	}
	if c.MaxTotal < 0 {
		return fmt.Errorf("전체 스캔 수 제한은 0 이상이어야 합니다, 현재값: %d", c.MaxTotal)
	}
	return nil
}

// CrawlStats 수집 통계
type CrawlStats struct {
	PagesVisited int     `json:"pages_visited"` // 방문한 목록 페이지 수
	ItemsTotal   int     `json:"items_total"`   // 수집된 상품 수
	ItemsFailed  int     `json:"items_failed"`  // 실패(건너뜀) 상품 수
	Duration     float64 `json:"duration"`      // 총 소요 시간(초)
}

// CrawlReport 수집 실행 보고서
type CrawlReport struct {
	TaskID      string      `json:"task_id"`      // 실행 고유 ID (UUID)
	CategoryURL string      `json:"category_url"` // 대상 카테고리
	OutputFile  string      `json:"output_file"`  // CSV 출력 경로
	StartTime   time.Time   `json:"start_time"`   // 시작 시각
	EndTime     time.Time   `json:"end_time"`     // 종료 시각
	Stats       CrawlStats  `json:"stats"`        // 통계
	Config      CrawlConfig `json:"config"`       // 사용된 설정
}
