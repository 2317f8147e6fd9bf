package logger

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	loggersMutex sync.Mutex
	loggers      []*Logger
)

// RegisterSubSystem returns a logger for the given subsystem tag, creating it
// if the subsystem was not registered before.
func RegisterSubSystem(subsystemTag string) *Logger {
	loggersMutex.Lock()
	defer loggersMutex.Unlock()
	for _, logger := range loggers {
		if logger.subsystemTag == subsystemTag {
			return logger
		}
	}
	logger := BackendLog.Logger(subsystemTag)
	loggers = append(loggers, logger)
	return logger
}

// InitLog attaches log file and error log file to the backend log and starts
// the backend. Exits on failure since without logs there's not much to do.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the loggerfor level %s: %s", LevelInfo, err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevels sets the logging level for all of the registered subsystems.
func SetLogLevels(logLevel string) error {
	level, ok := LevelFromString(logLevel)
	if !ok {
		return fmt.Errorf("invalid log level %s", logLevel)
	}
	loggersMutex.Lock()
	defer loggersMutex.Unlock()
	for _, logger := range loggers {
		logger.SetLevel(level)
	}
	return nil
}

// logEntry is a single log message together with its level, as sent to the
// backend's write channel.
type logEntry struct {
	log   []byte
	level Level
}

// Logger is a subsystem logger for a Backend.
type Logger struct {
	level        Level // atomic, must stay first for alignment
	subsystemTag string
	backend      *Backend
	writeChan    chan logEntry
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.level)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.level), uint32(level))
}

// SubsystemTag returns the subsystem tag of the logger.
func (l *Logger) SubsystemTag() string {
	return l.subsystemTag
}

// Backend returns the log backend.
func (l *Logger) Backend() *Backend {
	return l.backend
}

func (l *Logger) print(level Level, args ...interface{}) {
	if l.Level() > level {
		return
	}
	l.writeChan <- logEntry{l.formatMessage(level, fmt.Sprint(args...)), level}
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if l.Level() > level {
		return
	}
	l.writeChan <- logEntry{l.formatMessage(level, fmt.Sprintf(format, args...)), level}
}

// formatMessage renders a single log line: timestamp, level tag, subsystem
// tag, optional callsite per the backend's flags, and the message itself.
func (l *Logger) formatMessage(level Level, message string) []byte {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	buffer := make([]byte, 0, normalLogSize)
	buffer = append(buffer, timestamp...)
	buffer = append(buffer, " ["...)
	buffer = append(buffer, level.String()...)
	buffer = append(buffer, "] "...)
	buffer = append(buffer, l.subsystemTag...)
	if l.backend.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line := callsite(l.backend.flag)
		buffer = append(buffer, ' ')
		buffer = append(buffer, fmt.Sprintf("%s:%d", file, line)...)
	}
	buffer = append(buffer, ": "...)
	buffer = append(buffer, message...)
	buffer = append(buffer, '\n')
	return buffer
}

// callsite returns the file name and line of the callsite of the logging
// function. calldepth is fixed since all logging funnels through the same
// two functions.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.print(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.print(LevelDebug, args...)
}

// Debugf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.print(LevelInfo, args...)
}

// Infof formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.print(LevelWarn, args...)
}

// Warnf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.print(LevelError, args...)
}

// Errorf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Critical formats message using the default formats for its operands,
// prepends the prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.print(LevelCritical, args...)
}

// Criticalf formats message according to format specifier, prepends the
// prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}
