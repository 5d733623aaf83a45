package scraper

import (
	"reflect"
	"testing"
)

// TestCollectCheckmarkKeys 체크마크 항목명 추출 검증
func TestCollectCheckmarkKeys(t *testing.T) {
	tests := []struct {
		name     string
		rows     []TableRow
		expected []string
	}{
		{
			name: "일대일 행에서 글리프 값의 항목명 추출",
			rows: []TableRow{
				{Ths: []string{"HACCP", "원산지"}, Tds: []string{"○", "국내산"}},
				{Ths: []string{"유기농인증"}, Tds: []string{"●"}},
			},
			expected: []string{"HACCP", "유기농인증"},
		},
		{
			name: "항목명 하나에 값 여러 개인 행은 글리프가 있으면 채택",
			rows: []TableRow{
				{Ths: []string{"냉장"}, Tds: []string{"", "○", ""}},
				{Ths: []string{"비고"}, Tds: []string{"내용1", "내용2"}},
			},
			expected: []string{"냉장"},
		},
		{
			name: "괄호가 붙은 글리프 값도 인식",
			rows: []TableRow{
				{Ths: []string{"무항생제인증"}, Tds: []string{"○ (확인)"}},
			},
			expected: []string{"무항생제인증"},
		},
		{
			name: "중복 항목명은 한 번만",
			rows: []TableRow{
				{Ths: []string{"분말"}, Tds: []string{"○"}},
				{Ths: []string{"분말"}, Tds: []string{"O"}},
			},
			expected: []string{"분말"},
		},
		{
			name: "일반 값 문장은 글리프가 아님",
			rows: []TableRow{
				{Ths: []string{"제조사"}, Tds: []string{"COOL푸드"}},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectCheckmarkKeys(tt.rows)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CollectCheckmarkKeys() = %v, 기대값 %v", got, tt.expected)
			}
		})
	}
}
