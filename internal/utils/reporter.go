package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/seojaehong1/crawlerV6/internal/models"
)

// Reporter 수집 보고서 생성기
type Reporter struct {
	outputDir string
}

// NewReporter 보고서 생성기 생성
func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// SaveCrawlReport 수집 실행 보고서를 JSON으로 저장
func (r *Reporter) SaveCrawlReport(report models.CrawlReport) error {
	reportsDir := filepath.Join(r.outputDir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("보고서 디렉토리 생성 실패: %w", err)
	}

	path := filepath.Join(reportsDir, fmt.Sprintf("crawl_report_%s.json", report.TaskID))

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON 직렬화 실패: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("보고서 파일 쓰기 실패: %w", err)
	}

	Infof("✅ 보고서 저장 완료: %s", path)
	return nil
}

// NewProgressBar 진행 표시줄 생성
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
