package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"`

	// File switches output from stderr to a JSON log rotated at MaxSize
	// megabytes, keeping MaxBackups old files.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Build returns a logger writing as l describes.
func (l Log) Build() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if l.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(l.Level); err != nil {
			return nil, err
		}
	}

	var core zapcore.Core
	if l.File != "" {
		w := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.MaxSize,
			MaxBackups: l.MaxBackups,
		}
		core = zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), level)
	} else {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	}
	return zap.New(core, zap.AddCaller()), nil
}
