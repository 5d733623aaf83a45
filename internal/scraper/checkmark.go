package scraper

import (
	"encoding/json"
	"strings"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/normalize"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// CheckmarkScanner 체크마크 항목명 스캐너
// 역할: 패턴 학습 단계에서 상세 페이지의 스펙 테이블을 훑어
// 값이 체크마크 글리프인 항목명만 뽑아낸다
type CheckmarkScanner struct {
	tabs *DetailExtractor
}

// NewCheckmarkScanner 스캐너 생성
func NewCheckmarkScanner() *CheckmarkScanner {
	return &CheckmarkScanner{tabs: NewDetailExtractor()}
}

// Scan 상세 페이지에서 체크마크 항목명 수집
// 체크마크 항목이 없는 페이지는 빈 목록 (에러 아님)
func (s *CheckmarkScanner) Scan(p browser.Page) []string {
	s.tabs.RevealSpecTab(p)

	raw, err := p.Eval(specRowsJS)
	if err != nil {
		utils.Debugf("스펙 테이블 평가 실패: %v", err)
		return nil
	}

	var rows []TableRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	return CollectCheckmarkKeys(rows)
}

// CollectCheckmarkKeys 테이블 행에서 체크마크 항목명 추출
// 항목명 1개에 값 여러 개인 행은 글리프가 하나라도 있으면 그 항목명을 취한다
// 일반 행은 같은 위치의 값이 글리프일 때만 항목명을 취한다
// 결과는 첫 등장 순서의 중복 없는 목록
func CollectCheckmarkKeys(rows []TableRow) []string {
	var keys []string
	seen := make(map[string]bool)

	addKey := func(key string) {
		key = strings.TrimSpace(key)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		keys = append(keys, key)
	}

	for _, row := range rows {
		if len(row.Ths) == 1 && len(row.Tds) > 1 {
			for _, td := range row.Tds {
				if normalize.IsCheckGlyph(normalize.CleanValue(td)) {
					addKey(row.Ths[0])
					break
				}
			}
			continue
		}

		n := len(row.Ths)
		if len(row.Tds) < n {
			n = len(row.Tds)
		}
		for i := 0; i < n; i++ {
			if normalize.IsCheckGlyph(normalize.CleanValue(row.Tds[i])) {
				addKey(row.Ths[i])
			}
		}
	}

	return keys
}
