package browser

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// ResourceMonitor 시스템 리소스 모니터
// 역할: 메모리/CPU 상태를 보고 동시에 열 수 있는 탭 상한을 계산한다
type ResourceMonitor struct {
	config ResourceMonitorConfig

	// 시스템 총 메모리(바이트)
	totalMemory uint64
}

// ResourceMonitorConfig 리소스 모니터 설정
type ResourceMonitorConfig struct {
	SafetyReserveMemory int64 // 안전 예약 메모리(바이트)
	SafetyThreshold     int64 // 안전 임계값(바이트)
	CPULoadThreshold    int   // CPU 부하 임계값(%), 200 이상이면 검사 안 함
	MaxTabsLimit        int   // 절대 최대 탭 수
	TabMemoryUsage      int64 // 탭 1개의 평균 메모리 사용량(바이트)
}

// DefaultResourceMonitorConfig 기본 리소스 모니터 설정
func DefaultResourceMonitorConfig() ResourceMonitorConfig {
	return ResourceMonitorConfig{
		SafetyReserveMemory: 1024 * 1024 * 1024, // 1GB
		SafetyThreshold:     500 * 1024 * 1024,  // 500MB
		CPULoadThreshold:    80,
		MaxTabsLimit:        32,
		TabMemoryUsage:      100 * 1024 * 1024, // 100MB
	}
}

// NewResourceMonitor 리소스 모니터 생성
func NewResourceMonitor(config ResourceMonitorConfig) *ResourceMonitor {
	if config.TabMemoryUsage == 0 {
		config.TabMemoryUsage = 100 * 1024 * 1024
	}

	// 시스템 총 메모리 조회 (gopsutil로 실제 값을 읽음)
	vmStat, err := mem.VirtualMemory()
	var totalMem uint64
	if err != nil {
		utils.Warnf("시스템 메모리 조회 실패, 기본값 4GB 사용: %v", err)
		totalMem = 4 * 1024 * 1024 * 1024
	} else {
		totalMem = vmStat.Total
		utils.Debugf("시스템 총 메모리: %.2f GB", float64(totalMem)/(1024*1024*1024))
	}

	return &ResourceMonitor{
		config:      config,
		totalMemory: totalMem,
	}
}

// CalculateMaxTabs 현재 허용 가능한 최대 탭 수 계산
func (rm *ResourceMonitor) CalculateMaxTabs() int {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	availableMemory := int64(rm.totalMemory) - int64(memStats.Alloc) - rm.config.SafetyReserveMemory

	// 메모리 기준 상한
	maxTabsByMemory := 1
	if availableMemory > rm.config.SafetyThreshold {
		surplus := availableMemory - rm.config.SafetyThreshold
		maxTabsByMemory = int(surplus / rm.config.TabMemoryUsage)
		if maxTabsByMemory < 1 {
			maxTabsByMemory = 1
		}
	}

	// CPU 코어 기준 상한
	maxTabsByCPU := runtime.NumCPU() * 2

	result := maxTabsByMemory
	if maxTabsByCPU < result {
		result = maxTabsByCPU
	}
	if rm.config.MaxTabsLimit > 0 && rm.config.MaxTabsLimit < result {
		result = rm.config.MaxTabsLimit
	}
	if result < 1 {
		result = 1
	}

	return result
}

// CheckResourceAvailability 현재 리소스로 새 탭을 열 수 있는지 검사
// canCreate(생성 가능 여부)와 reason(불가 시 사유)을 반환
func (rm *ResourceMonitor) CheckResourceAvailability() (canCreate bool, reason string) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	availableMemory := int64(rm.totalMemory) - int64(memStats.Alloc) - rm.config.SafetyReserveMemory

	if availableMemory < rm.config.SafetyThreshold {
		availableMemoryMB := availableMemory / (1024 * 1024)
		utils.Warnf("가용 메모리 부족(현재 %dMB), 탭 생성이 제한됩니다", availableMemoryMB)
		return false, "메모리 부족"
	}

	// CPU 부하 검사 (임계값이 200 이상이면 비활성)
	if rm.config.CPULoadThreshold < 200 {
		percentages, err := cpu.Percent(100*time.Millisecond, false)
		if err == nil && len(percentages) > 0 && percentages[0] > float64(rm.config.CPULoadThreshold) {
			return false, "CPU 부하 과다"
		}
	}

	return true, ""
}
