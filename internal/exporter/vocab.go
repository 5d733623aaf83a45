package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// vocabFile 어휘 파일 형식
type vocabFile struct {
	Count int      `json:"count"`
	Items []string `json:"items"`
}

// SaveVocabulary 학습된 체크마크 어휘를 JSON 파일로 저장
// 항목은 정렬해서 기록하므로 같은 어휘면 파일 내용도 같다
func SaveVocabulary(path string, items []string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("출력 디렉토리 생성 실패: %w", err)
		}
	}

	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)

	data, err := json.MarshalIndent(vocabFile{Count: len(sorted), Items: sorted}, "", "  ")
	if err != nil {
		return fmt.Errorf("어휘 직렬화 실패: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("어휘 파일 저장 실패: %w", err)
	}

	utils.Infof("어휘 저장 완료: %s (%d개 항목)", path, len(sorted))
	return nil
}

// LoadVocabulary 어휘 JSON 파일 로드
// {count, items} 객체와 과거 형식인 단순 배열을 모두 받는다
func LoadVocabulary(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("어휘 파일 읽기 실패: %w", err)
	}

	var file vocabFile
	if err := json.Unmarshal(data, &file); err == nil && file.Items != nil {
		return file.Items, nil
	}

	var bare []string
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("어휘 파일 형식 해석 실패: %s", path)
}
