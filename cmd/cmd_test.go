package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a private database and log file.
func execute(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{
		"--db", filepath.Join(dir, "lingua.db"),
		"--log-file", filepath.Join(dir, "lingua.log"),
	}, args...)
	rootCmd.SetArgs(full)
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCatalogList(t *testing.T) {
	out := execute(t, t.TempDir(), "", "catalog", "list")
	assert.Contains(t, out, "영어")
	assert.Contains(t, out, "초급  The quick brown fox jumps over the lazy dog.")
	assert.Contains(t, out, "일본어")
}

func TestLessonHistoryAndLLMEvents(t *testing.T) {
	t.Setenv("LINGUA_LLM_PROVIDER", "mock")
	dir := t.TempDir()

	out := execute(t, dir, "첫 답\n둘째 답\n셋째 답\n",
		"lesson", "--language", "en", "--difficulty", "beginner", "--text", "")
	assert.Contains(t, out, "영어 - 초급 레벨 학습")
	assert.Contains(t, out, "원문: The quick brown fox jumps over the lazy dog.")
	assert.Contains(t, out, "번역:\n(mock) 응답")
	assert.Contains(t, out, "문화적 참고 사항:")
	assert.Contains(t, out, "질문 3: 이 문장의 주요 주제는 무엇인가요?")
	assert.Contains(t, out, "평가 결과:\n(mock) 응답")

	out = execute(t, dir, "", "history", "--limit", "5")
	assert.Contains(t, out, "영어")
	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "✓")

	out = execute(t, dir, "", "llm", "list", "--purpose", "translation", "--limit", "20", "--session", "")
	assert.Contains(t, out, "translation")
	assert.NotContains(t, out, "vocabulary")

	out = execute(t, dir, "", "llm", "stats")
	assert.Contains(t, out, "quiz-evaluation")
	assert.Contains(t, out, "TOTAL")
}

func TestVersion(t *testing.T) {
	out := execute(t, t.TempDir(), "", "version")
	assert.Equal(t, "lingua (devel)\n", out)
}
