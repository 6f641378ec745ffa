package utils

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig = consoleEncoderConfig()
	return config.Build()
}

// NewDiagnosticLogger returns a console logger writing to writer. Debug entries
// are only emitted when verbose is true.
func NewDiagnosticLogger(writer io.Writer, verbose bool) *zap.Logger {
	if writer == nil {
		return zap.NewNop()
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.AddSync(writer),
		level,
	)
	return zap.New(core)
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.TimeKey = ""
	encoderConfig.LevelKey = ""
	encoderConfig.NameKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.MessageKey = "message"
	encoderConfig.StacktraceKey = ""
	return encoderConfig
}
