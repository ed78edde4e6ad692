package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Logger writes to the log file. consoleLogger only prints SUCCESS and ERROR
// lines. Both are no-ops until Init is called.
var Logger = zap.NewNop()
var consoleLogger = zap.NewNop()

var mu sync.Mutex
var logFile *rotatingLogWriter

const (
	// MaxLogFileSize - the log file is truncated once it grows past 50MB
	MaxLogFileSize = 50 * 1024 * 1024
)

// Options configures Init.
type Options struct {
	Dir     string
	File    string
	Level   string
	Console bool
}

// Init builds the file and console loggers. Calling it again replaces them.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if opts.Dir == "" {
		opts.Dir = "logs"
	}
	if opts.File == "" {
		opts.File = "app.log"
	}

	level := zapcore.DebugLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	writer, err := openLogFile(filepath.Join(opts.Dir, opts.File))
	if err != nil {
		return err
	}

	fileCore := zapcore.NewCore(newFileEncoder(), writer, level)

	console := zap.NewNop()
	if opts.Console {
		consoleConfig := zap.NewDevelopmentConfig()
		consoleConfig.EncoderConfig.EncodeLevel = customLevelEncoder
		consoleConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		consoleConfig.EncoderConfig.EncodeCaller = nil
		consoleConfig.Development = false
		consoleConfig.DisableStacktrace = true
		consoleConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		consoleConfig.OutputPaths = []string{"stderr"}

		console, err = consoleConfig.Build()
		if err != nil {
			writer.Close()
			return fmt.Errorf("failed to build console logger: %w", err)
		}
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = writer
	Logger = zap.New(fileCore)
	consoleLogger = console
	return nil
}

// Sync flushes both loggers and closes the log file.
func Sync() {
	mu.Lock()
	defer mu.Unlock()

	_ = Logger.Sync()
	_ = consoleLogger.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = zap.NewNop()
	consoleLogger = zap.NewNop()
}

// NewRunID returns an id that tags every line of one pipeline run.
func NewRunID() string {
	return uuid.NewString()
}

// RunLogger returns the file logger scoped to one run.
func RunLogger(runID string) *zap.Logger {
	return Logger.With(zap.String("run_id", runID))
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(colorCyan + "DEBUG" + colorReset)
	case zapcore.InfoLevel:
		enc.AppendString(colorGreen + "SUCCESS" + colorReset) // console INFO is only used for successes
	case zapcore.WarnLevel:
		enc.AppendString(colorYellow + "WARN" + colorReset)
	case zapcore.ErrorLevel:
		enc.AppendString(colorRed + "ERROR" + colorReset)
	case zapcore.FatalLevel:
		enc.AppendString(colorRed + "FATAL" + colorReset)
	case zapcore.PanicLevel:
		enc.AppendString(colorRed + "PANIC" + colorReset)
	default:
		enc.AppendString(colorWhite + level.String() + colorReset)
	}
}

// LogInfo writes to the file only.
func LogInfo(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
}

// LogSuccess writes to the file and prints a check line on the console.
func LogSuccess(message string, fields ...zap.Field) {
	durationMs := extractDuration(fields)

	Logger.Info(message, fields...)

	if durationMs > 0 {
		consoleLogger.Info(fmt.Sprintf("✓ %s (%dms)", message, durationMs))
	} else {
		consoleLogger.Info("✓ " + message)
	}
}

// LogError writes to the file and prints a cross line on the console.
func LogError(message string, fields ...zap.Field) {
	durationMs := extractDuration(fields)

	Logger.Error(message, fields...)

	if durationMs > 0 {
		consoleLogger.Error(fmt.Sprintf("✗ %s (%dms)", message, durationMs))
	} else {
		consoleLogger.Error("✗ " + message)
	}
}

// LogWarn writes to the file and echoes the message on the console.
func LogWarn(message string, fields ...zap.Field) {
	Logger.Warn(message, fields...)
	consoleLogger.Warn("! " + message)
}

// LogDebug writes to the file only.
func LogDebug(message string, fields ...zap.Field) {
	Logger.Debug(message, fields...)
}

// extractDuration pulls duration_ms out of the fields, if present.
func extractDuration(fields []zap.Field) int64 {
	for _, field := range fields {
		if field.Key == "duration_ms" && field.Type == zapcore.Int64Type {
			return field.Integer
		}
	}
	return 0
}

type rotatingLogWriter struct {
	file *os.File
	path string
	mu   sync.Mutex
}

func (w *rotatingLogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}

	info, err := w.file.Stat()
	if err == nil && info.Size() > MaxLogFileSize {
		w.file.Close()

		w.file, err = os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
	}

	return w.file.Write(p)
}

func (w *rotatingLogWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

func (w *rotatingLogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// openLogFile opens path for append, truncating it first when it is already
// over MaxLogFileSize.
func openLogFile(path string) (*rotatingLogWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	info, err := file.Stat()
	if err == nil && info.Size() > MaxLogFileSize {
		file.Close()
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to truncate log file %s: %w", path, err)
		}
	}

	return &rotatingLogWriter{file: file, path: path}, nil
}

// customFileEncoder lays out each line as time, level, message, JSON fields.
// Fields added with Logger.With accumulate in the embedded map encoder.
type customFileEncoder struct {
	*zapcore.MapObjectEncoder
}

func newFileEncoder() *customFileEncoder {
	return &customFileEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (e *customFileEncoder) Clone() zapcore.Encoder {
	clone := newFileEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (e *customFileEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	buf.AppendString(entry.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString("     ")

	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" ")

	if entry.Message != "" {
		buf.AppendString(entry.Message)
	}

	if len(fields) > 0 || len(e.Fields) > 0 {
		enc := e.Clone().(*customFileEncoder)
		for _, field := range fields {
			field.AddTo(enc)
		}
		if jsonData, err := json.Marshal(enc.Fields); err == nil {
			buf.AppendString("\t")
			buf.AppendString(string(jsonData))
		}
	}

	buf.AppendString("\n")
	return buf, nil
}

var bufferPool = buffer.NewPool()
