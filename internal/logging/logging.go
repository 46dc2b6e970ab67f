// Package logging builds the zap logger that receives librdkafka's internal
// log output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Config holds logger configuration parameters.
type Config struct {
	Enabled bool
	// Path is the file log lines are appended to. Empty writes to stdout.
	Path string
}

// New returns a *zap.Logger for the provided Config. A disabled Config
// yields a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if !cfg.Enabled {
		return zap.NewNop(), nil
	}

	out := cfg.Path
	if out == "" {
		out = "stdout"
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zc.Sampling = nil
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Level maps a syslog severity, as used by librdkafka, to a zap level.
func Level(severity int) zapcore.Level {
	switch {
	case severity <= 3:
		return zapcore.ErrorLevel
	case severity == 4:
		return zapcore.WarnLevel
	case severity <= 6:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Forward writes every event received on events to logger until events is
// closed or done is signalled.
func Forward(logger *zap.Logger, events <-chan kafka.LogEvent, done <-chan struct{}) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ce := logger.Check(Level(ev.Level), ev.Message); ce != nil {
				ce.Write(
					zap.String("facility", ev.Tag),
					zap.String("name", ev.Name),
					zap.Int("severity", ev.Level),
				)
			}
		case <-done:
			return
		}
	}
}
