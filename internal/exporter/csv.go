package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// csvHeader 출력 컬럼, 순서 고정
var csvHeader = []string{"상품명", "URL", "상품이미지", "최저가", "최고가", "가격추이", "상세정보"}

// utf8BOM 엑셀이 UTF-8 한글을 인식하게 하는 바이트 순서 표식
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter 상품 레코드 CSV 저장기
type CSVExporter struct{}

// NewCSVExporter 저장기 생성
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export 레코드 전체를 CSV 파일로 저장
// 기존 파일이 있으면 덮어쓴다
func (e *CSVExporter) Export(path string, records []models.ProductRecord) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("CSV 파일 생성 실패: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("BOM 기록 실패: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("CSV 헤더 기록 실패: %w", err)
	}

	for _, r := range records {
		row, err := recordToRow(r)
		if err != nil {
			utils.Warnf("레코드 직렬화 실패, 건너뜀 [%s]: %v", r.URL, err)
			continue
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("CSV 행 기록 실패: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("CSV 플러시 실패: %w", err)
	}

	utils.Infof("CSV 저장 완료: %s (%d건)", path, len(records))
	return nil
}

// recordToRow 레코드 1건을 CSV 행으로 변환
// 없는 가격은 빈 칸, 가격추이는 압축 JSON
func recordToRow(r models.ProductRecord) ([]string, error) {
	trend := ""
	if len(r.PriceTrend) > 0 {
		b, err := json.Marshal(r.PriceTrend)
		if err != nil {
			return nil, err
		}
		trend = string(b)
	}

	return []string{
		r.Title,
		r.URL,
		r.ImageURL,
		priceCell(r.MinPrice),
		priceCell(r.MaxPrice),
		trend,
		r.Attributes,
	}, nil
}

// priceCell 가격 포인터를 CSV 셀 값으로
func priceCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
