package normalize

import (
	"strings"

	"github.com/seojaehong1/crawlerV6/internal/models"
)

// 특수 취급 카테고리
// 일반 항목 뒤에 고정 순서로 붙는다
const (
	CategoryCertification = "인증"
	CategoryCertInfo      = "인증정보"
	CategoryRegDate       = "등록년월일"
	CategoryTargetAge     = "대상연령"
	CategoryCharacter     = "캐릭터"
)

// Normalizer 상세 스펙 정규화기
// 역할: 원시 (항목명, 값) 목록을 "카테고리:값1,값2/카테고리:값" 형태의 문자열로 변환한다
// 같은 입력에는 항상 같은 출력을 낸다
type Normalizer struct {
	mapping CategoryMapping
}

// NewNormalizer 정규화기 생성
func NewNormalizer(mapping CategoryMapping) *Normalizer {
	return &Normalizer{mapping: mapping}
}

// Normalize 원시 스펙 항목을 정규화 문자열로 변환
// 분류할 수 없는 체크마크 항목과 정제 후 빈 값은 버린다
func (n *Normalizer) Normalize(entries []models.RawSpecEntry) string {
	parts := NewOrderedMap()
	var certItems []string
	var certInfoItems []string
	regDate := ""

	for _, e := range entries {
		value := strings.TrimSpace(e.Value)
		originalKey := strings.TrimSpace(e.Key)
		if value == "" || originalKey == "" {
			continue
		}

		key := SimplifyKey(originalKey)

		// 연령/캐릭터 표현은 항목명 자체를 표준 카테고리로 치환
		if isAgeKey(originalKey) {
			key = CategoryTargetAge
		} else if strings.Contains(originalKey, "캐릭터") {
			key = CategoryCharacter
		}

		// 항목명과 값이 같으면 정보가 없다
		if key == value || originalKey == value {
			continue
		}

		clean := CleanValue(value)
		if clean == "" {
			continue
		}

		// 등록년월은 맨 끝에 붙일 날짜로 보관
		if strings.Contains(key, "등록년월") || strings.Contains(key, "등록일") {
			regDate = clean
			continue
		}

		// 인증번호 항목의 값은 인증정보로 모은다
		if strings.Contains(key, "인증번호") {
			certInfoItems = appendUnique(certInfoItems, clean)
			continue
		}

		if IsCheckGlyph(clean) {
			// 체크마크: 값이 아니라 항목명이 정보다
			switch {
			case strings.Contains(key, "HACCP"):
				certInfoItems = appendUnique(certInfoItems, key)
			case strings.Contains(key, "인증"):
				certItems = appendUnique(certItems, key)
			default:
				category, ok := n.mapping.Lookup(key)
				if !ok {
					category, ok = classifyCheckKey(key, originalKey)
				}
				if ok {
					parts.Merge(category, key)
				}
				// 분류 불가 항목은 버린다
			}
			continue
		}

		// 인증 관련 일반 항목
		if strings.Contains(key, "인증") && !strings.Contains(key, "HACCP") {
			certItems = appendUnique(certItems, key)
			continue
		}

		// 정제된 값이 항목명과 같고 매핑표에 있으면 매핑 카테고리로 이동
		if key == clean {
			if category, ok := n.mapping.Lookup(key); ok {
				parts.Merge(category, key)
				continue
			}
		}

		parts.Merge(key, clean)
	}

	segments := make([]string, 0, parts.Len()+3)
	for _, entry := range parts.Entries() {
		segments = append(segments, entry.Key+":"+strings.Join(entry.Values, ","))
	}
	if len(certItems) > 0 {
		segments = append(segments, CategoryCertification+":"+strings.Join(certItems, ","))
	}
	if len(certInfoItems) > 0 {
		segments = append(segments, CategoryCertInfo+":"+strings.Join(certInfoItems, ","))
	}
	if regDate != "" {
		segments = append(segments, CategoryRegDate+":"+regDate)
	}

	return strings.Join(segments, "/")
}

// appendUnique 중복 없이 끝에 추가
func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}
