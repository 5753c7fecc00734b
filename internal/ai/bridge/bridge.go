// Package bridge runs the external analytics worker. Each call spawns one
// worker process, writes a single JSON document to its stdin and reads a
// single JSON document back from its stdout. The action is selected with a
// command-line argument.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rsmedika/inventaris/internal/config"
	"github.com/rsmedika/inventaris/internal/observability/metrics"
	"go.uber.org/zap"
)

// Worker actions understood by the bridge.
const (
	ActionForecast        = "forecast"
	ActionOptimize        = "optimize"
	ActionAnalyzePatterns = "analyze_patterns"
	ActionRetrain         = "retrain"
	ActionGetPerformance  = "get_performance"
	ActionHealthCheck     = "health_check"
)

// LaunchError reports a worker process that could not be started at all.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("worker launch failed: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExecutionError reports a worker process that exited nonzero. Stderr holds
// whatever the worker wrote to standard error.
type ExecutionError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("worker exited with code %d: %s", e.ExitCode, strings.TrimSpace(e.Stderr))
}

// ProtocolError reports a worker that exited cleanly but wrote something
// other than a single JSON document to standard output.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("worker produced unparsable output: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Invoker is the process bridge seen by orchestrators: a pure
// (action, payload) to JSON function.
type Invoker interface {
	Invoke(ctx context.Context, action string, payload any) (json.RawMessage, error)
}

type processBridge struct {
	program string
	args    []string
	timeout time.Duration
	log     *zap.Logger
	metrics *metrics.BridgeMetrics
}

// New builds the process bridge from the worker configuration. The
// interpreter and script path come from config; the action name is appended
// per call.
func New(cfg config.Config, log *zap.Logger, m *metrics.BridgeMetrics) Invoker {
	return &processBridge{
		program: cfg.Worker.PythonBin,
		args:    []string{cfg.Worker.ScriptPath},
		timeout: cfg.Worker.RequestTimeout,
		log:     log.Named("ai.bridge"),
		metrics: m,
	}
}

// NewCommand builds a bridge that runs an arbitrary program. Used by tests
// and by deployments that wrap the worker in a launcher script.
func NewCommand(program string, args []string, timeout time.Duration, log *zap.Logger, m *metrics.BridgeMetrics) Invoker {
	return &processBridge{
		program: program,
		args:    args,
		timeout: timeout,
		log:     log.Named("ai.bridge"),
		metrics: m,
	}
}

// Invoke spawns one worker process for this call. Context cancellation kills
// the process; a worker abandoned at its deadline does not linger.
func (b *processBridge) Invoke(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	input, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProtocolError{Err: err}
	}

	args := append(append([]string{}, b.args...), action)
	cmd := exec.CommandContext(ctx, b.program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	if err := cmd.Start(); err != nil {
		b.metrics.ObserveInvocation(action, "launch_error", time.Since(started))
		b.log.Error("worker launch failed",
			zap.String("action", action),
			zap.String("program", b.program),
			zap.Error(err),
		)
		return nil, &LaunchError{Err: err}
	}

	err = cmd.Wait()
	elapsed := time.Since(started)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			execErr := &ExecutionError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
			b.metrics.ObserveInvocation(action, "execution_error", elapsed)
			b.log.Error("worker failed",
				zap.String("action", action),
				zap.Int("exit_code", execErr.ExitCode),
				zap.String("stderr", strings.TrimSpace(execErr.Stderr)),
				zap.Duration("elapsed", elapsed),
			)
			return nil, execErr
		}
		b.metrics.ObserveInvocation(action, "launch_error", elapsed)
		return nil, &LaunchError{Err: err}
	}

	var out json.RawMessage
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		b.metrics.ObserveInvocation(action, "protocol_error", elapsed)
		b.log.Error("worker output unparsable",
			zap.String("action", action),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, &ProtocolError{Err: err}
	}

	b.metrics.ObserveInvocation(action, "ok", elapsed)
	b.log.Debug("worker call completed",
		zap.String("action", action),
		zap.Duration("elapsed", elapsed),
		zap.Int("response_bytes", stdout.Len()),
	)
	return out, nil
}
