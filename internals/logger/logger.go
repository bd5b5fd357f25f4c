package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Option configures InitZap.
type Option struct {
	MultiWriter []io.Writer
	Level       zapcore.Level
}

type OptionFunc func(*Option)

// OptionAddWriter adds another sink next to stdout.
func OptionAddWriter(w io.Writer) OptionFunc {
	return func(o *Option) {
		o.MultiWriter = append(o.MultiWriter, w)
	}
}

// OptionSetWriter replaces every sink with w.
func OptionSetWriter(w io.Writer) OptionFunc {
	return func(o *Option) {
		o.MultiWriter = []io.Writer{w}
	}
}

func OptionSetLevel(level zapcore.Level) OptionFunc {
	return func(o *Option) {
		o.Level = level
	}
}

// InitZap builds the process logger. Default writer is stdout with JSON encoding.
func InitZap(opts ...OptionFunc) {
	opt := Option{
		MultiWriter: []io.Writer{os.Stdout},
		Level:       zapcore.InfoLevel,
	}
	for _, o := range opts {
		o(&opt)
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		TimeKey:      "time",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	cores := make([]zapcore.Core, 0, len(opt.MultiWriter))
	for _, w := range opt.MultiWriter {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), opt.Level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()

	mu.Lock()
	log = l
	mu.Unlock()
}

// L returns the sugared process logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func LogI(msg string, keysAndValues ...interface{}) {
	L().Infow(msg, keysAndValues...)
}

func LogW(msg string, keysAndValues ...interface{}) {
	L().Warnw(msg, keysAndValues...)
}

func LogE(msg string, keysAndValues ...interface{}) {
	L().Errorw(msg, keysAndValues...)
}

func LogIf(format string, args ...interface{}) {
	L().Infof(format, args...)
}

func LogEf(format string, args ...interface{}) {
	L().Errorf(format, args...)
}

// Sync flushes buffered entries. Call once on shutdown.
func Sync() {
	_ = L().Sync()
}
