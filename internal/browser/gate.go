package browser

import (
	"time"

	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// TabGate 동시 탭 수 제한 게이트
// 역할: 패턴 학습 단계에서 동시에 열리는 탭 수를 고정 상한 이하로 유지한다
// 각 작업은 슬롯을 잡은 뒤 탭을 열고, 탭을 닫은 다음에 슬롯을 반납해야 한다
// 이 순서를 지키면 열린 탭 수가 게이트 크기를 넘을 수 없다
type TabGate struct {
	slots   chan struct{}
	size    int
	monitor *ResourceMonitor
}

// NewTabGate 게이트 생성
// 설정된 상한과 리소스 모니터가 계산한 상한 중 작은 값을 사용한다
func NewTabGate(limit int, monitor *ResourceMonitor) *TabGate {
	size := limit
	if size < 1 {
		size = 1
	}

	if monitor != nil {
		if maxTabs := monitor.CalculateMaxTabs(); maxTabs < size {
			utils.Warnf("리소스 제약으로 동시 탭 수를 %d개에서 %d개로 낮춥니다", size, maxTabs)
			size = maxTabs
		}
	}

	return &TabGate{
		slots:   make(chan struct{}, size),
		size:    size,
		monitor: monitor,
	}
}

// Acquire 슬롯 획득 (슬롯이 빌 때까지 블록)
// 슬롯을 잡은 뒤에도 시스템 리소스가 부족하면 잠시 기다렸다가 진행한다
func (g *TabGate) Acquire() {
	g.slots <- struct{}{}

	if g.monitor == nil {
		return
	}
	for attempt := 0; attempt < 3; attempt++ {
		ok, reason := g.monitor.CheckResourceAvailability()
		if ok {
			return
		}
		utils.Warnf("리소스 여유를 기다립니다 (%s)", reason)
		time.Sleep(2 * time.Second)
	}
}

// Release 슬롯 반납
func (g *TabGate) Release() {
	<-g.slots
}

// Size 게이트 크기
func (g *TabGate) Size() int {
	return g.size
}

// InUse 현재 사용 중인 슬롯 수
func (g *TabGate) InUse() int {
	return len(g.slots)
}
