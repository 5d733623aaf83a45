package scraper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/normalize"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// detailTabLabels 상세 스펙 탭의 표시 텍스트 후보
// 카테고리마다 탭 이름이 조금씩 다르다
var detailTabLabels = []string{"상세정보", "상세 사양", "상세스펙", "상세 스펙", "스펙", "사양"}

// imageSelectors 대표 이미지 셀렉터 우선순위 목록
var imageSelectors = []string{
	"div.thumb_area img#baseImage",
	"div.thumb_area img",
	"div.photo_viewer img",
	"div.photo_area img",
	"img#baseImage",
	"img[class*='prod_image']",
}

// titleSelectors 상품명 셀렉터 우선순위 목록
var titleSelectors = []string{
	"div.top_summary h3 span.title",
	"div.top_summary h3",
	"h3.prod_tit",
}

// specRowsJS 스펙 테이블의 모든 행을 th/td 텍스트 배열로 덤프
// DOM 순회를 한 번의 평가로 끝내서 왕복 횟수를 줄인다
const specRowsJS = `() => {
	const rows = [];
	document.querySelectorAll('table tr').forEach(tr => {
		const ths = Array.from(tr.querySelectorAll('th')).map(th => th.innerText.trim());
		const tds = Array.from(tr.querySelectorAll('td')).map(td => td.innerText.trim());
		if (ths.length > 0) {
			rows.push({ths: ths, tds: tds});
		}
	});
	return rows;
}`

// mallPricesJS 쇼핑몰별 판매가 목록 텍스트 수집
const mallPricesJS = `() => {
	const out = [];
	const selector = 'ul.list__mall-price li.list-item .text__num, ul.list_mall-price li.list-item .text_num';
	document.querySelectorAll(selector).forEach(el => out.push(el.innerText.trim()));
	return out;
}`

// priceInputsJS 가격 필터 입력값 수집 (판매가 목록이 없을 때의 대안)
const priceInputsJS = `() => {
	const out = [];
	document.querySelectorAll("input[id^='min_price'], input[id^='max_price']").forEach(el => out.push(el.value));
	return out;
}`

// chartPointsJS 가격추이 차트에서 축 라벨과 시리즈 값 추출
// 차트 라이브러리 인스턴스가 없으면 null
const chartPointsJS = `() => {
	const dom = document.querySelector('#graphAreaSmall');
	if (!dom || typeof echarts === 'undefined') {
		return null;
	}
	const chart = echarts.getInstanceByDom(dom);
	if (!chart) {
		return null;
	}
	const opt = chart.getOption();
	const labels = (opt.xAxis && opt.xAxis[0] && opt.xAxis[0].data) || [];
	const values = (opt.series && opt.series[0] && opt.series[0].data) || [];
	return {labels: labels, values: values};
}`

// TableRow 스펙 테이블 한 행의 th/td 텍스트
type TableRow struct {
	Ths []string `json:"ths"`
	Tds []string `json:"tds"`
}

// DetailResult 상세 페이지 추출 결과
// 일부 필드 추출이 실패해도 나머지는 채워진다
type DetailResult struct {
	Title    string
	ImageURL string
	MinPrice *int
	MaxPrice *int
	Trend    map[string][]models.TrendPoint
	Specs    []models.RawSpecEntry
}

// DetailExtractor 상품 상세 페이지 추출기
// 역할: 상세 페이지에서 상품명/이미지/가격 범위/가격추이/스펙 테이블을 읽는다
// 항목별로 독립 추출하므로 한 항목의 실패가 다른 항목을 막지 않는다
type DetailExtractor struct {
	// clickTimeout 탭/기간 버튼 클릭 타임아웃
	clickTimeout time.Duration

	// settle 탭 전환, 차트 갱신 후 안정화 대기
	settle time.Duration
}

// NewDetailExtractor 추출기 생성
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{
		clickTimeout: 2 * time.Second,
		settle:       time.Second,
	}
}

// Extract 상세 페이지에서 전체 항목 추출
func (d *DetailExtractor) Extract(p browser.Page) DetailResult {
	result := DetailResult{}

	result.Title = d.extractTitle(p)
	result.ImageURL = d.extractImage(p)
	result.MinPrice, result.MaxPrice = d.extractPriceRange(p)
	result.Trend = d.extractPriceTrend(p)

	// 스펙 테이블은 상세정보 탭 아래에 있어 먼저 펼쳐야 한다
	d.RevealSpecTab(p)
	result.Specs = d.extractSpecs(p)

	return result
}

// RevealSpecTab 상세 스펙 탭 펼치기
// 후보 라벨을 순서대로 시도하고 하나라도 클릭되면 멈춘다
func (d *DetailExtractor) RevealSpecTab(p browser.Page) bool {
	for _, label := range detailTabLabels {
		clicked, err := p.ClickText(label)
		if err != nil {
			utils.Debugf("상세 탭 클릭 실패 [%s]: %v", label, err)
			continue
		}
		if clicked {
			p.WaitIdle(d.settle)
			return true
		}
	}
	return false
}

// extractTitle 상품명 추출
// 셀렉터가 전부 실패하면 문서 제목에서 사이트 꼬리표를 떼고 사용
func (d *DetailExtractor) extractTitle(p browser.Page) string {
	for _, selector := range titleSelectors {
		els, err := p.Elements(selector)
		if err != nil || len(els) == 0 {
			continue
		}
		text, err := els[0].Text()
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			return t
		}
	}

	title, err := p.Title()
	if err != nil {
		utils.Debugf("문서 제목 조회 실패: %v", err)
		return ""
	}
	title = strings.TrimSpace(title)
	if idx := strings.Index(title, " : 다나와"); idx >= 0 {
		title = title[:idx]
	}
	return title
}

// extractImage 대표 이미지 URL 추출
// src가 비어 있으면 지연 로딩 속성(data-src, data-origin)을 본다
func (d *DetailExtractor) extractImage(p browser.Page) string {
	for _, selector := range imageSelectors {
		els, err := p.Elements(selector)
		if err != nil || len(els) == 0 {
			continue
		}

		for _, attr := range []string{"src", "data-src", "data-origin"} {
			src, err := els[0].Attribute(attr)
			if err != nil || strings.TrimSpace(src) == "" {
				continue
			}
			return NormalizeImageURL(src)
		}
	}
	return ""
}

// NormalizeImageURL 프로토콜 생략 URL 보정
func NormalizeImageURL(src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

// extractPriceRange 판매가 목록에서 최저가/최고가 계산
// 판매가 목록이 없으면 가격 필터 입력값으로 대신한다
func (d *DetailExtractor) extractPriceRange(p browser.Page) (*int, *int) {
	prices := d.evalPriceTexts(p, mallPricesJS)
	if len(prices) == 0 {
		prices = d.evalPriceTexts(p, priceInputsJS)
	}
	return PriceExtremes(prices)
}

// evalPriceTexts 가격 텍스트 목록 평가 후 숫자만 추려 반환
func (d *DetailExtractor) evalPriceTexts(p browser.Page, js string) []int {
	raw, err := p.Eval(js)
	if err != nil {
		utils.Debugf("가격 텍스트 평가 실패: %v", err)
		return nil
	}

	var texts []string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil
	}

	prices := make([]int, 0, len(texts))
	for _, t := range texts {
		if v := ParsePrice(t); v != nil {
			prices = append(prices, *v)
		}
	}
	return prices
}

// ParsePrice 가격 텍스트에서 숫자만 추출
// 통화 기호, 쉼표, 단위 문구는 전부 무시한다. 숫자가 없으면 nil
func ParsePrice(text string) *int {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}

	v, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &v
}

// PriceExtremes 가격 목록의 최소/최대
func PriceExtremes(prices []int) (*int, *int) {
	if len(prices) == 0 {
		return nil, nil
	}

	min, max := prices[0], prices[0]
	for _, v := range prices[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &min, &max
}

// chartDump 차트 평가 결과
type chartDump struct {
	Labels []interface{} `json:"labels"`
	Values []interface{} `json:"values"`
}

// extractPriceTrend 기간별 가격추이 추출
// 기간 버튼을 하나씩 눌러 차트를 갱신시킨 뒤 데이터를 읽는다
// 읽을 수 없는 기간은 결과에서 빠진다
func (d *DetailExtractor) extractPriceTrend(p browser.Page) map[string][]models.TrendPoint {
	els, err := p.Elements("#selectGraphPeriod li[data-attr]")
	if err != nil || len(els) == 0 {
		return nil
	}

	trend := make(map[string][]models.TrendPoint)

	for _, el := range els {
		class, err := el.Attribute("class")
		if err == nil && strings.Contains(class, "disabled") {
			continue
		}

		period, err := el.Attribute("data-attr")
		if err != nil || period == "" {
			continue
		}

		if err := el.Click(d.clickTimeout); err != nil {
			utils.Debugf("가격추이 기간 전환 실패 [%s]: %v", period, err)
			continue
		}
		p.WaitIdle(d.settle)

		points := d.readChartPoints(p)
		if len(points) > 0 {
			trend[period] = points
		}
	}

	if len(trend) == 0 {
		return nil
	}
	return trend
}

// readChartPoints 현재 표시 중인 차트의 데이터 포인트 읽기
func (d *DetailExtractor) readChartPoints(p browser.Page) []models.TrendPoint {
	raw, err := p.Eval(chartPointsJS)
	if err != nil {
		utils.Debugf("가격추이 차트 평가 실패: %v", err)
		return nil
	}

	var dump chartDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return nil
	}
	if len(dump.Labels) == 0 {
		return nil
	}

	points := make([]models.TrendPoint, 0, len(dump.Labels))
	for i, label := range dump.Labels {
		var value interface{}
		if i < len(dump.Values) {
			value = dump.Values[i]
		}
		points = append(points, models.TrendPoint{
			Label: fmt.Sprintf("%v", label),
			Price: NormalizeTrendValue(value),
		})
	}
	return points
}

// NormalizeTrendValue 차트 시리즈 값을 가격 정수로 변환
// 라이브러리 버전에 따라 숫자, 문자열, 배열, 객체 형태가 섞여 온다
// 해석할 수 없으면 nil (결측 포인트)
func NormalizeTrendValue(v interface{}) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		n := int(math.Round(t))
		return &n
	case string:
		return ParsePrice(t)
	case []interface{}:
		if len(t) == 0 {
			return nil
		}
		// [x, y] 형태면 마지막 원소가 값
		return NormalizeTrendValue(t[len(t)-1])
	case map[string]interface{}:
		return NormalizeTrendValue(t["value"])
	default:
		return nil
	}
}

// extractSpecs 스펙 테이블을 원시 (항목명, 값) 목록으로 추출
func (d *DetailExtractor) extractSpecs(p browser.Page) []models.RawSpecEntry {
	raw, err := p.Eval(specRowsJS)
	if err != nil {
		utils.Debugf("스펙 테이블 평가 실패: %v", err)
		return nil
	}

	var rows []TableRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	return ParseSpecRows(rows)
}

// ParseSpecRows 테이블 행을 (항목명, 값) 목록으로 변환
// 항목명 1개에 값 여러 개인 행은 모든 값을 그 항목 하나에 귀속시킨다
// 같은 항목명이 여러 행에 걸치면 값을 합친다
func ParseSpecRows(rows []TableRow) []models.RawSpecEntry {
	acc := newSpecAccumulator()

	for _, row := range rows {
		if len(row.Ths) == 1 && len(row.Tds) > 1 {
			// 일대다 행: 비어 있지 않은 값 전부가 이 항목의 값이다
			// 글리프 셀은 존재 표시로 그대로 누적한다 (중복은 누적기가 거른다)
			key := strings.TrimSpace(row.Ths[0])
			for _, td := range row.Tds {
				cleaned := normalize.CleanValue(td)
				if cleaned == "" {
					continue
				}
				acc.add(key, cleaned)
			}
			continue
		}

		// 일반 행: 항목명과 값을 같은 위치끼리 짝짓는다
		n := len(row.Ths)
		if len(row.Tds) < n {
			n = len(row.Tds)
		}
		for i := 0; i < n; i++ {
			key := strings.TrimSpace(row.Ths[i])
			cleaned := normalize.CleanValue(row.Tds[i])
			acc.add(key, cleaned)
		}
	}

	return acc.entries()
}

// specAccumulator 항목명별 값 누적기
// 첫 등장 순서를 유지하고 포함 관계에 있는 값은 합치지 않는다
type specAccumulator struct {
	keys   []string
	values map[string]string
}

func newSpecAccumulator() *specAccumulator {
	return &specAccumulator{values: make(map[string]string)}
}

// add 항목에 값 추가
// 항목명과 값이 같으면 정보가 없으므로 버린다
// 기존 값과 한쪽이 다른 쪽을 포함하면 긴 쪽만 남기고, 아니면 쉼표로 잇는다
func (a *specAccumulator) add(key, value string) {
	if key == "" || value == "" || key == value {
		return
	}

	existing, ok := a.values[key]
	if !ok {
		a.keys = append(a.keys, key)
		a.values[key] = value
		return
	}

	if existing == value || strings.Contains(existing, value) {
		return
	}
	if strings.Contains(value, existing) {
		a.values[key] = value
		return
	}
	a.values[key] = existing + ", " + value
}

func (a *specAccumulator) entries() []models.RawSpecEntry {
	out := make([]models.RawSpecEntry, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, models.RawSpecEntry{Key: k, Value: a.values[k]})
	}
	return out
}
