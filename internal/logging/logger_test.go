package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info", "json")
	require.NoError(t, err)

	l.With("match_id", 3895302).Info("stored match", "passes", 12, "err", errors.New("boom"), "dangling")
	l.Debug("hidden")

	var entry map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "stored match", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 3895302, entry["match_id"])
	assert.EqualValues(t, 12, entry["passes"])
	assert.Equal(t, "boom", entry["err"])
	assert.Contains(t, entry, "dangling")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "json")
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", "console")
	require.NoError(t, err)

	SetDefault(l)
	t.Cleanup(func() { SetDefault(nil) })

	Default().Debug("fetching", "match_id", 7)
	assert.Contains(t, buf.String(), "fetching")
	assert.Contains(t, buf.String(), "match_id")

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Info("ignored") })
}
