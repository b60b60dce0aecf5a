package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls logging verbosity
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stdout, "", log.LstdFlags|log.Lmsgprefix)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged
func SetLevel(level Level) {
	currentLevel.Store(int32(level))
}

func enabled(level Level) bool {
	return int32(level) >= currentLevel.Load()
}

func output(level Level, tag, msg string) {
	if !enabled(level) {
		return
	}
	std.Printf("[%s] %s", tag, msg)
}

func Debug(args ...any) { output(LevelDebug, "DEBUG", fmt.Sprint(args...)) }
func Info(args ...any)  { output(LevelInfo, "INFO", fmt.Sprint(args...)) }
func Warn(args ...any)  { output(LevelWarn, "WARN", fmt.Sprint(args...)) }
func Error(args ...any) { output(LevelError, "ERROR", fmt.Sprint(args...)) }

func Debugf(format string, args ...any) { output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { output(LevelInfo, "INFO", fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { output(LevelWarn, "WARN", fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { output(LevelError, "ERROR", fmt.Sprintf(format, args...)) }

// Fatalf logs at error level and exits
func Fatalf(format string, args ...any) {
	output(LevelError, "FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}
