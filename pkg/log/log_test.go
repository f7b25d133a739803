package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)
	logger.Debug("created file", "name", "report")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "created file", record["msg"])
	require.Equal(t, "report", record["name"])

	buf.Reset()
	logger, err = New(&buf, "warn", FormatText)
	require.NoError(t, err)
	logger.Info("dropped")
	require.Empty(t, buf.String())

	_, err = New(&buf, "loud", FormatText)
	require.Error(t, err)
	_, err = New(&buf, "info", "xml")
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := Context(context.Background(), logger)
	FromContext(ctx).Info("hello")
	require.Contains(t, buf.String(), "msg=hello")

	require.NotNil(t, FromContext(context.Background()))
}
