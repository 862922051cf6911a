package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	file    *os.File
	logger  = zap.NewNop()
	mu      sync.Mutex
	enabled bool
)

// DefaultPath returns ~/.config/cliplaunch/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "cliplaunch", "debug.log")
}

// Enable starts debug logging to path, truncating it
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)

	file = f
	logger = zap.New(core)
	enabled = true

	logger.Debug("=== Debug logging started ===", zap.String("category", "debug"))
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = logger.Sync()
		file.Close()
		file = nil
	}
	logger = zap.NewNop()
	enabled = false
}

// Enabled reports whether Log writes anywhere
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...), zap.String("category", category))
}

var counters = make(map[string]int)

// LogEvery logs only every N calls (use for high-frequency events). n <= 1
// logs every call.
func LogEvery(n int, category, format string, args ...any) {
	if n <= 1 {
		Log(category, format, args...)
		return
	}

	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// Sink is a line-oriented diagnostics writer. Every line also goes to the
// debug log under the "diag" category.
type Sink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewSink creates a sink writing to out
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

func (s *Sink) Println(v ...any) {
	line := strings.TrimRight(fmt.Sprintln(v...), "\n")

	s.mu.Lock()
	fmt.Fprintln(s.out, line)
	s.mu.Unlock()

	Log("diag", "%s", line)
}
