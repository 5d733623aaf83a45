package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/seojaehong1/crawlerV6/internal/browser"
	"github.com/seojaehong1/crawlerV6/internal/core"
	"github.com/seojaehong1/crawlerV6/internal/exporter"
	"github.com/seojaehong1/crawlerV6/internal/models"
	"github.com/seojaehong1/crawlerV6/internal/normalize"
	"github.com/seojaehong1/crawlerV6/internal/utils"
)

// Version 빌드 시 ldflags로 주입
var Version = "dev"

var (
	cfgFile   string
	logLevel  string
	appConfig *core.AppConfig
)

// rootCmd 루트 명령
var rootCmd = &cobra.Command{
	Use:   "crawlerv6",
	Short: "동적 쇼핑몰 카테고리 수집기",
	Long: `동적 렌더링 쇼핑몰의 카테고리를 2단계로 수집합니다.

1단계 (learn): 카테고리를 훑어 체크마크형 스펙 항목명 어휘를 학습합니다.
2단계 (crawl): 학습된 어휘로 카테고리 전체를 수집해 CSV로 저장합니다.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = core.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		logConfig := appConfig.LogConfig()
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		return utils.InitLogger(logConfig)
	},
}

// learnCmd 패턴 학습 명령
var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "카테고리에서 체크마크 항목 어휘 학습 (1단계)",
	RunE:  runLearn,
}

// crawlCmd 본 수집 명령
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "학습된 어휘로 카테고리 본 수집 (2단계)",
	RunE:  runCrawl,
}

// versionCmd 버전 출력
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 출력",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("crawlerv6 %s\n", Version)
	},
}

var (
	learnURL      string
	learnURLFile  string
	learnPages    int
	learnTabs     int
	learnMaxTotal int
	learnOutput   string
	learnHeadless bool
)

var (
	crawlURL      string
	crawlVocab    string
	crawlOutput   string
	crawlPages    int
	crawlPerPage  int
	crawlMaxTotal int
	crawlDelayMs  int
	crawlHeadless bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "설정 파일 경로 (기본: ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (trace/debug/info/warn/error)")

	learnCmd.Flags().StringVarP(&learnURL, "url", "u", "", "카테고리 목록 URL")
	learnCmd.Flags().StringVarP(&learnURLFile, "url-file", "f", "", "카테고리 URL 목록 파일 (줄 단위, #은 주석)")
	learnCmd.Flags().IntVarP(&learnPages, "pages", "p", -1, "학습할 목록 페이지 수 (0=상품 수 기반 자동)")
	learnCmd.Flags().IntVarP(&learnTabs, "tabs", "t", 0, "동시 탭 수")
	learnCmd.Flags().IntVar(&learnMaxTotal, "max-total", -1, "학습할 최대 상세 페이지 수 (0=무제한)")
	learnCmd.Flags().StringVarP(&learnOutput, "output", "o", "", "어휘 출력 파일 (기본: <출력 디렉토리>/vocab_<카테고리>.json)")
	learnCmd.Flags().BoolVar(&learnHeadless, "headless", true, "무헤드 모드")

	crawlCmd.Flags().StringVarP(&crawlURL, "url", "u", "", "카테고리 목록 URL (필수)")
	crawlCmd.Flags().StringVar(&crawlVocab, "vocab", "", "학습된 어휘 파일 경로 (필수)")
	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "", "CSV 출력 파일 (기본: <출력 디렉토리>/products_<시각>.csv)")
	crawlCmd.Flags().IntVarP(&crawlPages, "pages", "p", -1, "수집할 목록 페이지 수")
	crawlCmd.Flags().IntVar(&crawlPerPage, "items-per-page", -1, "페이지당 최대 상품 수 (0=전체)")
	crawlCmd.Flags().IntVar(&crawlMaxTotal, "max-total", -1, "전체 최대 상품 수 (0=무제한)")
	crawlCmd.Flags().IntVar(&crawlDelayMs, "delay-ms", -1, "요청 간 기본 지연(ms)")
	crawlCmd.Flags().BoolVar(&crawlHeadless, "headless", true, "무헤드 모드")

	crawlCmd.MarkFlagRequired("url")
	crawlCmd.MarkFlagRequired("vocab")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(versionCmd)
}

// runLearn 패턴 학습 실행
// --url-file이 있으면 여러 카테고리를 순서대로 학습하고
// 이미 어휘 파일이 있는 카테고리는 건너뛴다
func runLearn(cmd *cobra.Command, args []string) error {
	urls, err := learnTargets()
	if err != nil {
		return err
	}

	config := buildDiscoveryConfig(appConfig)
	if err := config.Validate(); err != nil {
		return err
	}

	monitor := browser.NewResourceMonitor(appConfig.ResourceMonitorConfig())
	gate := browser.NewTabGate(config.Tabs, monitor)

	b, err := browser.Launch(config.Headless)
	if err != nil {
		return err
	}
	defer b.Close()

	for _, target := range urls {
		output := learnOutput
		if output == "" || len(urls) > 1 {
			output = filepath.Join(appConfig.Output.Dir, vocabFileNameFor(target))
		}

		if len(urls) > 1 {
			if _, err := os.Stat(output); err == nil {
				utils.Infof("어휘 파일이 이미 있어 건너뜁니다: %s", output)
				continue
			}
		}

		config.CategoryURL = target
		discoverer := core.NewDiscoverer(b, gate, config)
		items, err := discoverer.Run()
		if err != nil {
			if len(urls) == 1 {
				return err
			}
			utils.Errorf("카테고리 학습 실패, 다음으로 넘어갑니다 [%s]: %v", target, err)
			continue
		}

		if err := exporter.SaveVocabulary(output, items); err != nil {
			return err
		}
	}

	return nil
}

// runCrawl 본 수집 실행
func runCrawl(cmd *cobra.Command, args []string) error {
	if err := utils.ValidateURL(crawlURL); err != nil {
		return err
	}

	// 어휘는 브라우저를 띄우기 전에 읽는다
	// 파일이 없으면 비싼 기동 없이 바로 실패해야 한다
	items, err := exporter.LoadVocabulary(crawlVocab)
	if err != nil {
		return fmt.Errorf("어휘 로드 실패 (먼저 learn을 실행하세요): %w", err)
	}
	utils.Infof("어휘 로드 완료: %d개 항목", len(items))

	mapping := normalize.NewCategoryMapping(
		normalize.BaseCategoryRules,
		normalize.AnalyzeVocabulary(items),
	)

	config := buildCrawlConfig(appConfig)
	config.CategoryURL = crawlURL
	if err := config.Validate(); err != nil {
		return err
	}

	output := crawlOutput
	if output == "" {
		output = filepath.Join(appConfig.Output.Dir,
			fmt.Sprintf("products_%s.csv", time.Now().Format("20060102_150405")))
	}

	b, err := browser.Launch(config.Headless)
	if err != nil {
		return err
	}
	defer b.Close()

	startTime := time.Now()
	crawler := core.NewCrawler(b, mapping, config)
	result, err := crawler.Run()
	if err != nil {
		return err
	}

	if err := exporter.NewCSVExporter().Export(output, result.Records); err != nil {
		return err
	}

	report := models.CrawlReport{
		TaskID:      uuid.New().String(),
		CategoryURL: config.CategoryURL,
		OutputFile:  output,
		StartTime:   startTime,
		EndTime:     time.Now(),
		Stats:       result.Stats,
		Config:      config,
	}
	if err := utils.NewReporter(appConfig.Output.Dir).SaveCrawlReport(report); err != nil {
		utils.Errorf("보고서 저장 실패: %v", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		os.Exit(1)
	}
}
