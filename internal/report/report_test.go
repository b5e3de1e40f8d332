package report

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-avprobe/internal/observability"
)

func TestParse(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate, s.Template)
	assert.Equal(t, observability.AVDebug, s.Level)
	assert.False(t, s.LevelSet)

	s, err = Parse("file=out\\:1.log:level=32:colour=red")
	require.NoError(t, err)
	assert.Equal(t, "out:1.log", s.Template)
	assert.Equal(t, 32, s.Level)
	assert.True(t, s.LevelSet)
	assert.Equal(t, []string{"colour"}, s.Unknown)

	s, err = Parse("file='a:b.log'")
	require.NoError(t, err)
	assert.Equal(t, "a:b.log", s.Template)

	_, err = Parse("level=loud")
	assert.ErrorIs(t, err, ErrInvalidLevel)

	s, err = Parse("level=16:garbage")
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, 16, s.Level)

	_, err = Parse("garbage")
	assert.NoError(t, err)
}

func TestExpandTemplate(t *testing.T) {
	now := time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local)
	assert.Equal(t, "avprobe-20250307-090502.log", ExpandTemplate(DefaultTemplate, "avprobe", now))
	assert.Equal(t, "100%-avprobe.txt", ExpandTemplate("100%%-%p.txt", "avprobe", now))
	assert.Equal(t, "ab", ExpandTemplate("a%xb%", "avprobe", now))
}

func TestQuoteArg(t *testing.T) {
	assert.Equal(t, "-show_streams", QuoteArg("-show_streams"))
	assert.Equal(t, "/tmp/clip.ts", QuoteArg("/tmp/clip.ts"))
	assert.Equal(t, `"my file.ts"`, QuoteArg("my file.ts"))
	assert.Equal(t, `"\$HOME\"x\""`, QuoteArg(`$HOME"x"`))
	assert.Equal(t, `"tab\x09"`, QuoteArg("tab\t"))
}

func TestOpenWritesHeaderAndRecords(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	now := time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local)
	tmpl := filepath.Join(dir, "%p-%t.log")

	r, err := Open("file="+strings.ReplaceAll(tmpl, ":", "\\:")+":verbose=1", "avprobe", observability.AVInfo,
		[]string{"avprobe", "-show_streams", "my clip.ts"}, now, logger)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "avprobe-20250307-090502.log"), r.Path)
	assert.Equal(t, observability.AVDebug, r.Level)
	assert.Contains(t, stderr.String(), "Unknown key 'verbose' in FFREPORT")

	tee := r.Tee(logger)
	tee.Debug("only in report")
	tee.Info("everywhere")
	require.NoError(t, r.Close())

	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.HasPrefix(body, "avprobe started on 2025-03-07 at 09:05:02\n"), body)
	assert.Contains(t, body, "Report written to \""+r.Path+"\"\n")
	assert.Contains(t, body, "Log level: 48\n")
	assert.Contains(t, body, "Command line:\navprobe -show_streams \"my clip.ts\"\n")
	assert.Contains(t, body, "only in report")
	assert.Contains(t, body, "everywhere")

	assert.NotContains(t, stderr.String(), "only in report")
	assert.Contains(t, stderr.String(), "everywhere")
}

func TestOpenLevelFromProgram(t *testing.T) {
	dir := t.TempDir()
	r, err := Open("file="+filepath.Join(dir, "r.log"), "avprobe", observability.AVTrace, nil, time.Now(), nil)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, observability.AVTrace, r.Level)

	r2, err := Open("file="+filepath.Join(dir, "r2.log")+":level=16", "avprobe", observability.AVTrace, nil, time.Now(), nil)
	require.NoError(t, err)
	defer r2.Close()
	assert.Equal(t, 16, r2.Level)
}

func TestOpenBadLevel(t *testing.T) {
	var stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&stderr, nil))
	_, err := Open("level=abc", "avprobe", observability.AVInfo, nil, time.Now(), logger)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	assert.Contains(t, stderr.String(), "Invalid report file level")
}
