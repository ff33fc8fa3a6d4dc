// Package observability contains logging setup and the diagnostic counters
// used to surface framewire's own framing/dispatch errors (wire.ErrorCode)
// rather than generic application logging.
package observability

import (
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"framewire/pkg/config"
	"framewire/pkg/wire"
)

// SetupLogger builds a zap.Logger from the provided configuration, sets it
// as the global logger, and redirects the stdlib log package. The caller
// should defer logger.Sync().
func SetupLogger(c config.LogConfig) (*zap.Logger, error) {
	encoder := buildEncoder(c)
	level := parseLevel(c.Level)

	cores := make([]zapcore.Core, 0, len(c.Outputs))
	for _, out := range c.Outputs {
		cores = append(cores, zapcore.NewCore(encoder, writerFor(out, c), level))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	logger := zap.New(zapcore.NewTee(cores...), opts...)
	zap.ReplaceGlobals(logger)
	_, _ = zap.RedirectStdLogAt(logger, zap.InfoLevel)
	return logger, nil
}

func parseLevel(raw string) zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	switch strings.ToLower(raw) {
	case "debug":
		level.SetLevel(zap.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zap.WarnLevel)
	case "error":
		level.SetLevel(zap.ErrorLevel)
	default:
		level.SetLevel(zap.InfoLevel)
	}
	return level
}

func buildEncoder(c config.LogConfig) zapcore.Encoder {
	var encCfg zapcore.EncoderConfig
	if c.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	if strings.ToLower(c.Format) == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}
	return zapcore.NewConsoleEncoder(encCfg)
}

// writerFor resolves a single configured output name to a WriteSyncer. A
// name that isn't "stdout"/"stderr" is a file path, rotated through
// lumberjack when c.Rotation.Enable is set.
func writerFor(out string, c config.LogConfig) zapcore.WriteSyncer {
	switch strings.ToLower(out) {
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	}

	if c.Rotation.Enable {
		filename := out
		if strings.TrimSpace(c.Rotation.Filename) != "" {
			filename = c.Rotation.Filename
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    atLeast(c.Rotation.MaxSizeMB, 10),
			MaxBackups: atLeast(c.Rotation.MaxBackups, 1),
			MaxAge:     atLeast(c.Rotation.MaxAgeDays, 7),
			Compress:   c.Rotation.Compress,
		})
	}

	if i := strings.LastIndexAny(out, "/\\"); i > 0 {
		_ = os.MkdirAll(out[:i], 0o755)
	}
	f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zapcore.AddSync(os.Stderr)
	}
	return zapcore.AddSync(f)
}

func atLeast(v, floor int) int {
	if v > floor {
		return v
	}
	return floor
}

// ErrorTally accumulates wire.ErrorCode occurrences reported by repeated
// node.Node.Poll calls. Node only counts errors; ErrorTally is what turns
// that count into per-code diagnostics worth logging periodically, instead
// of once per byte.
type ErrorTally struct {
	mu     sync.Mutex
	counts map[wire.ErrorCode]int
}

// NewErrorTally constructs an empty tally.
func NewErrorTally() *ErrorTally {
	return &ErrorTally{counts: make(map[wire.ErrorCode]int)}
}

// Record increments the count for code. Recording wire.OK is a no-op.
func (t *ErrorTally) Record(code wire.ErrorCode) {
	if code == wire.OK {
		return
	}
	t.mu.Lock()
	t.counts[code]++
	t.mu.Unlock()
}

// LogAndReset logs one field per distinct error code seen since the last
// call, in ascending code order for stable output, then clears the tally.
// It logs nothing if nothing was recorded.
func (t *ErrorTally) LogAndReset(logger *zap.Logger) {
	t.mu.Lock()
	codes := make([]wire.ErrorCode, 0, len(t.counts))
	for code := range t.counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	fields := make([]zap.Field, 0, len(codes))
	for _, code := range codes {
		fields = append(fields, zap.Int(code.Error(), t.counts[code]))
	}
	t.counts = make(map[wire.ErrorCode]int)
	t.mu.Unlock()

	if len(fields) == 0 {
		return
	}
	logger.Warn("framewire: framing/dispatch errors since last report", fields...)
}
