package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout the vio packages.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<parent>.<subname>" sharing the parent's appenders.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	SetLevel(level Level)
	GetLevel() Level
	// AsZap converts to a plain zap logger for libraries that want one.
	AsZap() *zap.SugaredLogger
	Sync() error
}

type impl struct {
	name  string
	level AtomicLevel
	inUTC bool

	appenders []Appender
}

// Frames between runtime.Caller in emit and the code that called a Logger method.
const callerSkip = 2

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return &impl{name, NewAtomicLevelAt(imp.level.Get()), imp.inUTC, imp.appenders}
}

func (imp *impl) Sync() error {
	var err error
	for _, appender := range imp.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	config := NewZapLoggerConfig()
	config.Level = GlobalLogLevel
	ret := zap.Must(config.Build()).Sugar().Named(imp.name)

	// Appenders that are full cores, such as test observers, keep receiving entries.
	for _, appender := range imp.appenders {
		core, ok := appender.(zapcore.Core)
		if !ok {
			continue
		}
		ret = ret.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, core)
		}))
	}
	return ret
}

func (imp *impl) enabled(level Level) bool {
	return GlobalLogLevel.Level() == zapcore.DebugLevel || level >= imp.level.Get()
}

// emit builds and writes one entry. The message is fmt.Sprint(fmtArgs...) when template is
// empty, the bare template without fmtArgs, otherwise fmt.Sprintf(template, fmtArgs...).
func (imp *impl) emit(level Level, template string, fmtArgs, keysAndValues []interface{}) {
	if !imp.enabled(level) {
		return
	}

	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: imp.name,
		Message:    message(template, fmtArgs),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	var ok bool
	entry.Caller.PC, entry.Caller.File, entry.Caller.Line, ok = runtime.Caller(callerSkip)
	if ok {
		entry.Caller.Defined = true
		if fn := runtime.FuncForPC(entry.Caller.PC); fn != nil {
			entry.Caller.Function = fn.Name()
		}
	}

	fields := sweetenFields(keysAndValues)
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprint(os.Stderr, err)
		}
	}
}

func message(template string, fmtArgs []interface{}) string {
	switch {
	case template == "":
		return fmt.Sprint(fmtArgs...)
	case len(fmtArgs) == 0:
		return template
	}
	return fmt.Sprintf(template, fmtArgs...)
}

// sweetenFields pairs up loosely typed key-value arguments. A trailing key without a value
// gets an error value instead of being dropped.
func sweetenFields(keysAndValues []interface{}) []zapcore.Field {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errors.New("unpaired log key")))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (imp *impl) Debug(args ...interface{}) { imp.emit(DEBUG, "", args, nil) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.emit(DEBUG, template, args, nil) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.emit(DEBUG, msg, nil, keysAndValues)
}

func (imp *impl) Info(args ...interface{}) { imp.emit(INFO, "", args, nil) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.emit(INFO, template, args, nil) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.emit(INFO, msg, nil, keysAndValues)
}

func (imp *impl) Warn(args ...interface{}) { imp.emit(WARN, "", args, nil) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.emit(WARN, template, args, nil) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.emit(WARN, msg, nil, keysAndValues)
}

func (imp *impl) Error(args ...interface{}) { imp.emit(ERROR, "", args, nil) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.emit(ERROR, template, args, nil) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.emit(ERROR, msg, nil, keysAndValues)
}
