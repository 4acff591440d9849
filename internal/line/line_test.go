package line

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC)

func TestFormat_PadsToDefaultWidth(t *testing.T) {
	f := New(Options{})

	got, ok := f.Format(ts, "foo", "Here's foo.")
	require.True(t, ok)
	assert.Equal(t, "2024-03-07 09:05:01 FOO   Here's foo.", got)
}

func TestFormat_Labels(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"upper-cased", "info", "2024-03-07 09:05:01 INFO  x"},
		{"trimmed", "  warn ", "2024-03-07 09:05:01 WARN  x"},
		{"exact width", "error", "2024-03-07 09:05:01 ERROR x"},
		{"single char", "a", "2024-03-07 09:05:01 A     x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := New(Options{}).Format(ts, tt.label, "x")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_WidthGrowsWithLongerLabels(t *testing.T) {
	f := New(Options{})

	got, _ := f.Format(ts, "REQUEST", "a")
	assert.Equal(t, "2024-03-07 09:05:01 REQUEST a", got)
	assert.Equal(t, 7, f.Width())

	got, _ = f.Format(ts, "info", "b")
	assert.Equal(t, "2024-03-07 09:05:01 INFO    b", got)
}

func TestFormat_EnabledLabels(t *testing.T) {
	f := New(Options{EnabledLabels: []string{"info", " Error "}})

	assert.Equal(t, 5, f.Width())
	assert.True(t, f.Enabled("INFO"))
	assert.True(t, f.Enabled("error"))
	assert.False(t, f.Enabled("debug"))

	_, ok := f.Format(ts, "debug", "dropped")
	assert.False(t, ok)

	got, ok := f.Format(ts, "info", "kept")
	require.True(t, ok)
	assert.Equal(t, "2024-03-07 09:05:01 INFO  kept", got)
}

func TestFormat_EnabledLabelsSetInitialWidth(t *testing.T) {
	f := New(Options{EnabledLabels: []string{"db", "http"}})
	assert.Equal(t, 4, f.Width())

	got, ok := f.Format(ts, "db", "query")
	require.True(t, ok)
	assert.Equal(t, "2024-03-07 09:05:01 DB   query", got)
}

func TestFormat_BlankEnabledLabelsAllowAll(t *testing.T) {
	f := New(Options{EnabledLabels: []string{" ", ""}})
	assert.True(t, f.Enabled("anything"))
	assert.Equal(t, DefaultLabelWidth, f.Width())
}

func TestFormat_CustomLayout(t *testing.T) {
	f := New(Options{DateTimeFormat: time.RFC3339})
	assert.Equal(t, time.RFC3339, f.Layout())

	got, ok := f.Format(ts, "info", "x")
	require.True(t, ok)
	assert.Equal(t, "2024-03-07T09:05:01Z INFO  x", got)
}

func TestFormat_MultibyteLabelWidth(t *testing.T) {
	f := New(Options{})
	got, _ := f.Format(ts, "né", "x")
	assert.Equal(t, "2024-03-07 09:05:01 NÉ    x", got)
}
