package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/chat"
	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
	"github.com/imadgeboyega/kiekky-insights/internal/matching"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSentimentCmd(t *testing.T) {
	out, err := run(t, "sentiment", "I", "love", "this!!")
	require.NoError(t, err)
	assert.Equal(t, "excited\n", out)

	out, err = run(t, "sentiment", "What do you think?")
	require.NoError(t, err)
	assert.Equal(t, "curious\n", out)
}

func TestAnalyzeCmd(t *testing.T) {
	out, err := run(t, "analyze", "--elapsed", "2", "--response", "1", "--seed", "7", "hello world")
	require.NoError(t, err)

	var result analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 60.0, result.TypingAnalysis.WPM)
	assert.Equal(t, analysis.SentimentNeutral, result.SentimentAnalysis.Sentiment)
}

func TestMatchCmd(t *testing.T) {
	dir := t.TempDir()
	subject := writeFile(t, dir, "subject.json", `{"age": 26, "interests": ["Technology", "Travel"]}`)
	prefs := writeFile(t, dir, "prefs.json", `{"age_range": [22, 30]}`)
	candidates := writeFile(t, dir, "candidates.json", `[
		{"id": 1, "name": "Priya", "age": 40, "interests": ["Technology"]},
		{"id": 2, "name": "Ananya", "age": 29, "interests": ["Cooking"]},
		{"id": 3, "name": "Kavya", "age": 27, "interests": ["Travel"]}
	]`)

	out, err := run(t, "match", "--subject", subject, "--prefs", prefs, "--candidates", candidates, "--seed", "3")
	require.NoError(t, err)

	var ranked []matching.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, 3, ranked[0].ID)
	assert.Equal(t, 2, ranked[1].ID)

	out, err = run(t, "match", "--candidates", candidates, "--insights")
	require.NoError(t, err)
	var insights []string
	require.NoError(t, json.Unmarshal([]byte(out), &insights))
	assert.Len(t, insights, matching.InsightCount)
}

func TestMatchCmdRequiresCandidates(t *testing.T) {
	_, err := run(t, "match")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	out, err := run(t, "token", "--secret", "s3cret", "--expiry", "1h", "user-42")
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(strings.TrimSpace(out), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestExportCmd(t *testing.T) {
	session := chat.Session{
		ID:        "session_1",
		Title:     chat.DefaultTitle,
		Timestamp: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		Messages:  []chat.Message{{ID: 1, Text: chat.WelcomeText, Sender: chat.SenderAI}},
	}
	data, err := chat.EncodeSession(session)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session_1"+chat.ExportExt)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := run(t, "export", path)
	require.NoError(t, err)

	var decoded chat.Session
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "session_1", decoded.ID)
	require.Len(t, decoded.Messages, 1)
	assert.Equal(t, chat.WelcomeText, decoded.Messages[0].Text)
}
