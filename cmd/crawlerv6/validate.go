package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/seojaehong1/crawlerV6/internal/core"
	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// learnTargets 학습 대상 URL 목록 결정
// --url과 --url-file 중 정확히 하나가 있어야 한다
func learnTargets() ([]string, error) {
	if learnURL != "" && learnURLFile != "" {
		return nil, fmt.Errorf("--url과 --url-file은 동시에 쓸 수 없습니다")
	}

	if learnURLFile != "" {
		return utils.ReadURLsFromFile(learnURLFile)
	}

	if learnURL == "" {
		return nil, fmt.Errorf("--url 또는 --url-file이 필요합니다")
	}
	if err := utils.ValidateURL(learnURL); err != nil {
		return nil, err
	}
	return []string{learnURL}, nil
}

// buildDiscoveryConfig 설정 파일 값에 CLI 플래그 덮어쓰기
// 음수 플래그 값은 "지정 안 함"을 뜻한다
func buildDiscoveryConfig(app *core.AppConfig) models.DiscoveryConfig {
	config := models.DiscoveryConfig{
		MaxPages:   app.Discovery.MaxPages,
		MaxTotal:   app.Discovery.MaxTotal,
		Tabs:       app.Discovery.Tabs,
		Headless:   app.Discovery.Headless,
		SiteMarker: app.Crawl.SiteMarker,
	}

	if learnPages >= 0 {
		config.MaxPages = learnPages
	}
	if learnTabs > 0 {
		config.Tabs = learnTabs
	}
	if learnMaxTotal >= 0 {
		config.MaxTotal = learnMaxTotal
	}
	config.Headless = learnHeadless

	return config
}

// buildCrawlConfig 설정 파일 값에 CLI 플래그 덮어쓰기
func buildCrawlConfig(app *core.AppConfig) models.CrawlConfig {
	config := models.CrawlConfig{
		MaxPages:     app.Crawl.MaxPages,
		ItemsPerPage: app.Crawl.ItemsPerPage,
		MaxTotal:     app.Crawl.MaxTotal,
		Headless:     app.Crawl.Headless,
		BaseDelayMs:  app.Crawl.BaseDelayMs,
		NavTimeoutMs: app.Crawl.NavTimeoutMs,
		SiteMarker:   app.Crawl.SiteMarker,
	}

	if crawlPages >= 0 {
		config.MaxPages = crawlPages
	}
	if crawlPerPage >= 0 {
		config.ItemsPerPage = crawlPerPage
	}
	if crawlMaxTotal >= 0 {
		config.MaxTotal = crawlMaxTotal
	}
	if crawlDelayMs >= 0 {
		config.BaseDelayMs = crawlDelayMs
	}
	config.Headless = crawlHeadless

	return config
}

// vocabFileNameFor 카테고리 URL에서 어휘 파일명 유도
// 같은 카테고리는 항상 같은 파일명이 된다
func vocabFileNameFor(rawURL string) string {
	token := ""

	if parsed, err := url.Parse(rawURL); err == nil {
		// 카테고리 식별 쿼리 파라미터가 있으면 그것을 쓴다
		for _, key := range []string{"cate", "cateCode", "category"} {
			if v := parsed.Query().Get(key); v != "" {
				token = v
				break
			}
		}
		if token == "" {
			segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
			if len(segments) > 0 {
				token = segments[len(segments)-1]
			}
		}
	}

	token = sanitizeToken(token)
	if token == "" {
		token = "category"
	}
	return fmt.Sprintf("vocab_%s.json", token)
}

// sanitizeToken 파일명에 못 쓰는 문자를 _로 치환
func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
