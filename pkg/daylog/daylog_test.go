package daylog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dray-io/daylog/internal/clock"
	"github.com/dray-io/daylog/internal/config"
	"github.com/dray-io/daylog/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestLogger(t *testing.T, opts Options) (*Logger, *clock.Manual) {
	t.Helper()
	c := clock.NewManual(start)
	if opts.Directory == "" {
		opts.Directory = t.TempDir()
	}
	opts.Clock = c
	l, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, c
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func TestLog_LineShape(t *testing.T) {
	l, _ := newTestLogger(t, Options{})

	require.NoError(t, l.Log("foo", "Here's foo."))

	lines := readLines(t, filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.Equal(t, []string{"2024-01-01 12:00:00 FOO   Here's foo."}, lines)
}

func TestLog_LevelHelpers(t *testing.T) {
	l, _ := newTestLogger(t, Options{})

	require.NoError(t, l.Debug("d"))
	require.NoError(t, l.Info("i"))
	require.NoError(t, l.Warn("w"))
	require.NoError(t, l.Error(errors.New("boom")))
	require.NoError(t, l.Fatal(42))
	require.NoError(t, l.Logf("http", "%s %d", "GET", 200))

	lines := readLines(t, filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.Equal(t, []string{
		"2024-01-01 12:00:00 DEBUG d",
		"2024-01-01 12:00:00 INFO  i",
		"2024-01-01 12:00:00 WARN  w",
		"2024-01-01 12:00:00 ERROR boom",
		"2024-01-01 12:00:00 FATAL 42",
		"2024-01-01 12:00:00 HTTP  GET 200",
	}, lines)
}

func TestLog_EnabledLabels(t *testing.T) {
	l, _ := newTestLogger(t, Options{EnabledLabels: []string{"error"}})

	require.NoError(t, l.Info("ignored"))
	_, err := os.Stat(filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.True(t, os.IsNotExist(err), "filtered records must not create files")

	require.NoError(t, l.Error("kept"))
	lines := readLines(t, filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.Equal(t, []string{"2024-01-01 12:00:00 ERROR kept"}, lines)
}

func TestLog_InvalidArguments(t *testing.T) {
	l, _ := newTestLogger(t, Options{})

	assert.ErrorIs(t, l.Log("info", nil), ErrNilContent)
	assert.ErrorIs(t, l.Log("   ", "x"), ErrEmptyLabel)
	assert.ErrorIs(t, l.Logf("", "x"), ErrEmptyLabel)
}

func TestLog_DateRollover(t *testing.T) {
	l, c := newTestLogger(t, Options{})

	require.NoError(t, l.Info("day one"))
	c.Advance(24 * time.Hour)
	require.NoError(t, l.Info("day two"))

	assert.Equal(t, []string{"2024-01-01 12:00:00 INFO  day one"},
		readLines(t, filepath.Join(l.Directory(), "2024-01-01.log")))
	assert.Equal(t, []string{"2024-01-02 12:00:00 INFO  day two"},
		readLines(t, filepath.Join(l.Directory(), "2024-01-02.log")))
}

func TestLog_Concurrent(t *testing.T) {
	l, _ := newTestLogger(t, Options{})

	const writers, perWriter = 8, 50
	var g errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				if err := l.Logf("w", "writer=%d seq=%d", w, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	lines := readLines(t, filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.Len(t, lines, writers*perWriter)
	for _, ln := range lines {
		assert.True(t, strings.HasPrefix(ln, "2024-01-01 12:00:00 W     writer="), ln)
	}
}

func TestClose(t *testing.T) {
	l, _ := newTestLogger(t, Options{})
	require.NoError(t, l.Info("before"))

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	assert.ErrorIs(t, l.Info("after"), ErrClosed)
	assert.ErrorIs(t, l.Logf("x", "after"), ErrClosed)
	assert.ErrorIs(t, l.Log("info", nil), ErrClosed)
	assert.ErrorIs(t, l.Log(" ", "x"), ErrClosed)

	lines := readLines(t, filepath.Join(l.Directory(), "2024-01-01.log"))
	assert.Equal(t, []string{"2024-01-01 12:00:00 INFO  before"}, lines)
}

func TestNew_DefaultsAndValidation(t *testing.T) {
	_, err := New(Options{Directory: t.TempDir(), DeleteOlderThan: -time.Hour})
	assert.Error(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l, err := New(Options{})
	require.NoError(t, err)
	defer l.Close()

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, DefaultDirectory), l.Directory())
}

func TestRetention_DeletesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	expired := filepath.Join(dir, "2023-01-01.log")
	require.NoError(t, os.WriteFile(expired, []byte("old\n"), 0o644))

	// The logger's clock sits far past the file's creation time.
	c := clock.NewManual(time.Now().Add(60 * 24 * time.Hour))
	reg := prometheus.NewRegistry()
	l, err := New(Options{
		Directory:       dir,
		DeleteOlderThan: 30 * 24 * time.Hour,
		Clock:           c,
		Metrics:         metrics.NewSet(reg),
	})
	require.NoError(t, err)
	defer l.Close()

	require.Eventually(t, func() bool {
		_, err := os.Stat(expired)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, l.Info("fresh"))
	today := filepath.Join(dir, fmt.Sprintf("%s.log", c.Now().Format("2006-01-02")))
	assert.FileExists(t, today)
}

func TestRetention_DisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "2023-01-01.log")
	require.NoError(t, os.WriteFile(old, []byte("old\n"), 0o644))

	c := clock.NewManual(time.Now().Add(365 * 24 * time.Hour))
	l, err := New(Options{Directory: dir, Clock: c})
	require.NoError(t, err)
	require.NoError(t, l.Info("x"))
	require.NoError(t, l.Close())

	assert.FileExists(t, old)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	set := metrics.NewSet(reg)
	l, _ := newTestLogger(t, Options{Metrics: set})

	require.NoError(t, l.Info("one"))
	require.NoError(t, l.Info("two"))

	m := &dto.Metric{}
	require.NoError(t, set.Pool.AppendsTotal.Write(m))
	assert.Equal(t, float64(2), m.GetCounter().GetValue())

	m = &dto.Metric{}
	require.NoError(t, set.Pool.OpenHandles.Write(m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Directory = t.TempDir()
	cfg.Log.UseUTC = true
	cfg.Log.DateTimeFormat = "15:04"
	cfg.Log.EnabledLabels = []string{"audit"}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, cfg.Log.Directory, opts.Directory)
	assert.True(t, opts.UseUTC)
	assert.Equal(t, 2*time.Hour, opts.HandleSweepInterval)

	l, err := NewFromConfig(cfg, nil, nil)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Info("dropped"))
	require.NoError(t, l.Log("audit", "kept"))

	entries, err := os.ReadDir(l.Directory())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	lines := readLines(t, filepath.Join(l.Directory(), entries[0].Name()))
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], " AUDIT kept"), lines[0])
}
