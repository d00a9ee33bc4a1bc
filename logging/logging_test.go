package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/logging"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Params{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	l.WithPrefix("mfpc").Debug("solved", "objective", 5)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "solved", line["msg"])
	require.Equal(t, "mfpc", line["prefix"])
	require.EqualValues(t, 5, line["objective"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Params{Level: "WARN", Format: "logfmt", Output: &buf})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.True(t, strings.Contains(buf.String(), "msg=shown"))
}

func TestInvalidParams(t *testing.T) {
	_, err := logging.New(logging.Params{Level: "loud"})
	require.Error(t, err)
	_, err = logging.New(logging.Params{Level: "info", Format: "xml"})
	require.Error(t, err)
}
