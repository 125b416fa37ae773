// Package logger provides levelled logging for VoxRAG on top of go-zero's logx,
// so service logs and HTTP access logs share one writer and one format.
// When verbose mode is enabled via the --verbose flag, debug messages
// and section headers are emitted as well.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

var (
	mu      sync.RWMutex
	verbose bool
)

func init() {
	logx.DisableStat()
	logx.SetLevel(logx.InfoLevel)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		logx.SetLevel(logx.DebugLevel)
	} else {
		logx.SetLevel(logx.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for all logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logx.SetWriter(logx.NewWriter(w))
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	if IsVerbose() {
		logx.Debugf(format, args...)
	}
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	if IsVerbose() {
		logx.Debugf("=== %s ===", name)
	}
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logx.Infof(format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	logx.Infow(fmt.Sprintf(format, args...), logx.Field("severity", "warn"))
}

// Error logs a failure.
func Error(format string, args ...any) {
	logx.Errorf(format, args...)
}
