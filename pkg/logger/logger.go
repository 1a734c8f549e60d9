package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var (
	mu           sync.RWMutex
	log          hclog.Logger
	currentLevel LogLevel

	// fileWriter is the rotating log file, if any; it is closed when the
	// logger is reconfigured
	fileWriter *lumberjack.Logger
)

func init() {
	Configure(os.Getenv("JSONMOCK_LOG_LEVEL"), os.Getenv("JSONMOCK_LOG_FILE"))
}

// Configure (re)initialises the global logger. An empty level defaults to DEBUG.
// If logFile is set, output is also written to a rotating file.
func Configure(level string, logFile string) {
	var output io.Writer = os.Stdout
	var file *lumberjack.Logger
	if logFile != "" {
		file = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		output = io.MultiWriter(os.Stdout, file)
	}
	configure(level, output, file)
}

// ConfigureWithWriter (re)initialises the global logger, writing to w.
func ConfigureWithWriter(level string, w io.Writer) {
	configure(level, w, nil)
}

func configure(level string, w io.Writer, file *lumberjack.Logger) {
	mu.Lock()
	defer mu.Unlock()

	if fileWriter != nil {
		fileWriter.Close()
	}
	fileWriter = file

	currentLevel = parseLevel(level)
	log = hclog.New(&hclog.LoggerOptions{
		Name:   "jsonmock",
		Level:  toHclogLevel(currentLevel),
		Output: w,
	})
}

func parseLevel(lvl string) LogLevel {
	switch strings.ToUpper(lvl) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return DEBUG
	}
}

func toHclogLevel(lvl LogLevel) hclog.Level {
	switch lvl {
	case TRACE:
		return hclog.Trace
	case INFO:
		return hclog.Info
	case WARN:
		return hclog.Warn
	case ERROR:
		return hclog.Error
	default:
		return hclog.Debug
	}
}

func current() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Level check functions
func IsTraceEnabled() bool {
	return GetCurrentLevel() <= TRACE
}

func IsDebugEnabled() bool {
	return GetCurrentLevel() <= DEBUG
}

func IsInfoEnabled() bool {
	return GetCurrentLevel() <= INFO
}

func IsWarnEnabled() bool {
	return GetCurrentLevel() <= WARN
}

func IsErrorEnabled() bool {
	return GetCurrentLevel() <= ERROR
}

func Tracef(format string, v ...interface{}) {
	if IsTraceEnabled() {
		current().Trace(fmt.Sprintf(format, v...))
	}
}

func Traceln(msg string) {
	Tracef("%s", msg)
}

func Debugf(format string, v ...interface{}) {
	if IsDebugEnabled() {
		current().Debug(fmt.Sprintf(format, v...))
	}
}

func Debugln(msg string) {
	Debugf("%s", msg)
}

func Infof(format string, v ...interface{}) {
	if IsInfoEnabled() {
		current().Info(fmt.Sprintf(format, v...))
	}
}

func Infoln(msg string) {
	Infof("%s", msg)
}

func Warnf(format string, v ...interface{}) {
	if IsWarnEnabled() {
		current().Warn(fmt.Sprintf(format, v...))
	}
}

func Warnln(msg string) {
	Warnf("%s", msg)
}

func Errorf(format string, v ...interface{}) {
	if IsErrorEnabled() {
		current().Error(fmt.Sprintf(format, v...))
	}
}

func Errorln(msg string) {
	Errorf("%s", msg)
}

// GetCurrentLevel returns the current log level
func GetCurrentLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// Named returns a sub-logger for a component, for libraries that accept an hclog.Logger.
func Named(name string) hclog.Logger {
	return current().Named(name)
}
