package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARN, ParseLevel(" Warning "))
	require.Equal(t, ERROR, ParseLevel("ERROR"))
	require.Equal(t, INFO, ParseLevel("verbose"))
	require.Equal(t, INFO, ParseLevel(""))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARN, FormatText, &buf)

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "key=value")

	l.SetLevel(DEBUG)
	require.Equal(t, DEBUG, l.GetLevel())
	l.Debug("now visible")
	require.Contains(t, buf.String(), "now visible")
}

func TestLogger_JSONFormatAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(INFO, FormatJSON, &buf).With("component", "todos")

	l.Error("store failed", "op", "create")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &record))
	require.Equal(t, "ERROR", record["level"])
	require.Equal(t, "store failed", record["msg"])
	require.Equal(t, "todos", record["component"])
	require.Equal(t, "create", record["op"])
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(INFO, FormatText, &buf))
	Info("through package helper")

	require.Contains(t, buf.String(), "through package helper")
}
