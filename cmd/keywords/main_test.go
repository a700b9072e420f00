package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordlab/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIdeasJSON(t *testing.T) {
	out, err := execute(t, "ideas", "ab", "--config", "", "--policy", "merged", "--country", "KR", "--language", "ko", "--json")
	require.NoError(t, err)

	var rows []models.RawKeywordRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "ab 추천", rows[0].Keyword)
	assert.Equal(t, "ab 사용법", rows[4].Keyword)
}

func TestIdeasTable(t *testing.T) {
	out, err := execute(t, "ideas", "ab", "--config", "", "--policy", "naver", "--country", "KR", "--language", "ko", "--json=false")
	require.NoError(t, err)

	assert.Contains(t, out, "KEYWORD")
	assert.Contains(t, out, "ab 가격")
	assert.Contains(t, out, "0.40")
	assert.NotContains(t, out, "ab 추천")
}

func TestIdeasPolicyFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywordsource.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: naver\nfallback_keyword: 샘플\n"), 0o644))

	out, err := execute(t, "ideas", "--config", path, "--policy", "", "--country", "KR", "--language", "ko", "--json")
	require.NoError(t, err)

	var rows []models.RawKeywordRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "샘플 가격", rows[0].Keyword)
}

func TestIdeasRejectsUnknownCountry(t *testing.T) {
	_, err := execute(t, "ideas", "ab", "--config", "", "--country", "FR", "--language", "ko")
	assert.ErrorIs(t, err, models.ErrUnknownCountry)
}

func TestAnalyzeMock(t *testing.T) {
	out, err := execute(t, "analyze", "보조배터리", "--config", "", "--country", "KR", "--language", "ko",
		"--source", "mock", "--latency", "1ms", "--locale", "ko", "--currency", "KRW")
	require.NoError(t, err)

	assert.Contains(t, out, "보조배터리 추천")
	assert.Contains(t, out, "4,400")
	assert.Contains(t, out, "구매 의도 강함")
	assert.Contains(t, out, "보조배터리 비교")
}

func TestAnalyzeAdapter(t *testing.T) {
	out, err := execute(t, "analyze", "ab", "--config", "", "--country", "US", "--language", "en",
		"--source", "adapter", "--policy", "google", "--latency", "1ms", "--locale", "ko", "--currency", "KRW")
	require.NoError(t, err)

	assert.Contains(t, out, "ab 추천")
	assert.Contains(t, out, "광고 경쟁 지수 0.35")
}

func TestAnalyzeRejectsShortSeed(t *testing.T) {
	_, err := execute(t, "analyze", " a ", "--config", "", "--source", "mock", "--latency", "1ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2자 이상")
}
