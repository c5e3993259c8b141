package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// До Init пишем в никуда, чтобы пакеты можно было дергать из тестов.
var InfoLogger, FatalLogger = zap.NewNop(), zap.NewNop()

var (
	serviceName = "default"
)

type Config struct {
	Level      string // debug, info, warn, error
	File       string // пусто: только stdout
	MaxSizeMB  int
	MaxBackups int
}

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init собирает zap-логгер: json в stdout и, если задан файл, в файл с ротацией.
func Init(conf Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if conf.Level != "" {
		if err := level.UnmarshalText([]byte(conf.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", conf.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}
	if conf.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSizeMB,
			MaxBackups: conf.MaxBackups,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("service", serviceName))
	InfoLogger = l.WithOptions(zap.AddCallerSkip(1))
	FatalLogger = InfoLogger
	return l, nil
}

func Info(format string, args ...interface{}) {
	InfoLogger.Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	InfoLogger.Warn(fmt.Sprintf(format, args...))
}

func Debug(format string, args ...interface{}) {
	InfoLogger.Debug(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	InfoLogger.Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	FatalLogger.Fatal(fmt.Sprintf(format, args...))
}
