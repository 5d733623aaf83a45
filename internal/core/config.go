package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// AppConfig 애플리케이션 전체 설정
// 파일(yaml) → 환경 변수 → CLI 플래그 순서로 덮어쓴다
type AppConfig struct {
	Crawl     CrawlSection     `mapstructure:"crawl"`
	Discovery DiscoverySection `mapstructure:"discovery"`
	Logging   LoggingSection   `mapstructure:"logging"`
	Resource  ResourceSection  `mapstructure:"resource"`
	Output    OutputSection    `mapstructure:"output"`
}

// CrawlSection 본 수집 설정
type CrawlSection struct {
	MaxPages     int    `mapstructure:"max_pages"`
	ItemsPerPage int    `mapstructure:"items_per_page"`
	MaxTotal     int    `mapstructure:"max_total"`
	Headless     bool   `mapstructure:"headless"`
	BaseDelayMs  int    `mapstructure:"base_delay_ms"`
	NavTimeoutMs int    `mapstructure:"nav_timeout_ms"`
	SiteMarker   string `mapstructure:"site_marker"`
}

// DiscoverySection 패턴 학습 설정
type DiscoverySection struct {
	MaxPages int  `mapstructure:"max_pages"`
	Tabs     int  `mapstructure:"tabs"`
	MaxTotal int  `mapstructure:"max_total"`
	Headless bool `mapstructure:"headless"`
}

// LoggingSection 로그 설정
type LoggingSection struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// ResourceSection 리소스 모니터 설정
type ResourceSection struct {
	SafetyReserveMB   int `mapstructure:"safety_reserve_mb"`
	SafetyThresholdMB int `mapstructure:"safety_threshold_mb"`
	CPULoadThreshold  int `mapstructure:"cpu_load_threshold"`
	MaxTabsLimit      int `mapstructure:"max_tabs_limit"`
	TabMemoryMB       int `mapstructure:"tab_memory_mb"`
}

// OutputSection 출력 경로 설정
type OutputSection struct {
	Dir string `mapstructure:"dir"`
}

// setDefaults 기본값 등록
func setDefaults(v *viper.Viper) {
	v.SetDefault("crawl.max_pages", 10)
	v.SetDefault("crawl.items_per_page", 0)
	v.SetDefault("crawl.max_total", 0)
	v.SetDefault("crawl.headless", true)
	v.SetDefault("crawl.base_delay_ms", 1500)
	v.SetDefault("crawl.nav_timeout_ms", 30000)
	v.SetDefault("crawl.site_marker", "danawa.com")

	v.SetDefault("discovery.max_pages", 3)
	v.SetDefault("discovery.tabs", 15)
	v.SetDefault("discovery.max_total", 0)
	v.SetDefault("discovery.headless", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	v.SetDefault("resource.safety_reserve_mb", 1024)
	v.SetDefault("resource.safety_threshold_mb", 500)
	v.SetDefault("resource.cpu_load_threshold", 80)
	v.SetDefault("resource.max_tabs_limit", 32)
	v.SetDefault("resource.tab_memory_mb", 100)

	v.SetDefault("output.dir", "output")
}

// LoadConfig 설정 파일 로드
// cfgFile이 비어 있으면 ./configs, 현재 디렉토리, ~/.crawlerv6 순서로 config.yaml을 찾는다
// 파일이 없으면 기본값만으로 동작한다
func LoadConfig(cfgFile string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.crawlerv6")
	}

	v.SetEnvPrefix("CRAWLERV6")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값 사용
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("설정 해석 실패: %w", err)
	}

	return &config, nil
}

// LogConfig 로그 설정으로 변환
func (c *AppConfig) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Logging.Level,
		LogDir:     c.Logging.Dir,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
		Compress:   c.Logging.Compress,
	}
}

// ResourceMonitorConfig 리소스 모니터 설정으로 변환
func (c *AppConfig) ResourceMonitorConfig() browser.ResourceMonitorConfig {
	return browser.ResourceMonitorConfig{
		SafetyReserveMemory: int64(c.Resource.SafetyReserveMB) * 1024 * 1024,
		SafetyThreshold:     int64(c.Resource.SafetyThresholdMB) * 1024 * 1024,
		CPULoadThreshold:    c.Resource.CPULoadThreshold,
		MaxTabsLimit:        c.Resource.MaxTabsLimit,
		TabMemoryUsage:      int64(c.Resource.TabMemoryMB) * 1024 * 1024,
	}
}
