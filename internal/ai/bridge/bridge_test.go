package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func writeWorkerScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.sh")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func newTestBridge(program string, timeout time.Duration) Invoker {
	return NewCommand(program, nil, timeout, zap.NewNop(), nil)
}

func TestInvokePassesActionAndParsesOutput(t *testing.T) {
	script := writeWorkerScript(t, `cat >/dev/null
printf '{"status":"ok","action":"%s"}' "$1"`)

	out, err := newTestBridge(script, 0).Invoke(context.Background(), ActionHealthCheck, map[string]any{})
	assert.NoError(t, err)

	var decoded map[string]string
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "ok", decoded["status"])
	assert.Equal(t, "health_check", decoded["action"])
}

func TestInvokeWritesPayloadToStdin(t *testing.T) {
	// The worker echoes its stdin, so the response equals the payload.
	script := writeWorkerScript(t, `cat`)

	payload := map[string]any{"item_id": "42", "forecast_horizon": 30}
	out, err := newTestBridge(script, 0).Invoke(context.Background(), ActionForecast, payload)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "42", decoded["item_id"])
	assert.Equal(t, float64(30), decoded["forecast_horizon"])
}

func TestInvokeNonzeroExitYieldsExecutionError(t *testing.T) {
	script := writeWorkerScript(t, `cat >/dev/null
echo "model store corrupted" >&2
exit 2`)

	_, err := newTestBridge(script, 0).Invoke(context.Background(), ActionForecast, map[string]any{})

	var execErr *ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, 2, execErr.ExitCode)
	assert.Contains(t, execErr.Stderr, "model store corrupted")
}

func TestInvokeInvalidOutputYieldsProtocolError(t *testing.T) {
	script := writeWorkerScript(t, `cat >/dev/null
echo "this is not json"`)

	_, err := newTestBridge(script, 0).Invoke(context.Background(), ActionOptimize, map[string]any{})

	var protoErr *ProtocolError
	assert.True(t, errors.As(err, &protoErr))
}

func TestInvokeMissingProgramYieldsLaunchError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-worker")

	_, err := newTestBridge(missing, 0).Invoke(context.Background(), ActionRetrain, map[string]any{})

	var launchErr *LaunchError
	assert.True(t, errors.As(err, &launchErr))
}

func TestInvokeTimeoutKillsWorker(t *testing.T) {
	script := writeWorkerScript(t, `sleep 10`)

	start := time.Now()
	_, err := newTestBridge(script, 200*time.Millisecond).Invoke(context.Background(), ActionGetPerformance, map[string]any{})

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
