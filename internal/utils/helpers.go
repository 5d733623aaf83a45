package utils

import (
	"bufio"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"strings"
	"time"
)

// HumanDelay 기본 지연에 균등 지터를 더해 대기
// 요청 간격이 일정하면 봇으로 탐지되기 쉬우므로 매번 다른 간격으로 쉰다
func HumanDelay(base time.Duration) {
	if base <= 0 {
		return
	}
	jitter := time.Duration(rand.Int63n(int64(base) + 1))
	time.Sleep(base + jitter)
}

// ValidateURL URL 형식 검증
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("URL 형식이 올바르지 않습니다: %w", err)
	}

	if parsed.Scheme == "" {
		return fmt.Errorf("URL에 프로토콜(http/https)이 없습니다")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL 프로토콜은 http 또는 https여야 합니다")
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL에 호스트명이 없습니다")
	}

	return nil
}

// ReadURLsFromFile 파일에서 URL 목록 읽기
func ReadURLsFromFile(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("URL 파일 열기 실패: %w", err)
	}
	defer file.Close()

	urls := make([]string, 0)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// 빈 줄과 주석 줄은 건너뜀
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// URL 형식 검증
		if err := ValidateURL(line); err != nil {
			Warnf("유효하지 않은 URL 건너뜀 (줄 %d): %s - %v", lineNum, line, err)
			continue
		}

		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("URL 파일 읽기 실패: %w", err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("URL 파일에 유효한 URL이 없습니다")
	}

	Infof("파일에서 %d개 URL을 불러왔습니다", len(urls))
	return urls, nil
}
