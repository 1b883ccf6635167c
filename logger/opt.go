package logger

import (
	"io"
	"log"

	"github.com/xy-planning-network/waypoint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// A LoggerOptFn is a functional option configuring a WaypointLogger when constructing a new one.
type LoggerOptFn func(*WaypointLogger)

// WithEnv sets the environment WaypointLogger is operating in.
func WithEnv(env waypoint.Environment) LoggerOptFn {
	return func(l *WaypointLogger) {
		l.env = env
	}
}

// WithFile tees logs into the file at fp, rotating it once it reaches 100 megabytes
// and keeping the last 3 rotations for 28 days.
//
// An empty fp leaves the WaypointLogger unchanged.
func WithFile(fp string) LoggerOptFn {
	return func(l *WaypointLogger) {
		if fp == "" {
			return
		}

		rotator := &lumberjack.Logger{
			Filename:   fp,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		l.l = log.New(io.MultiWriter(l.l.Writer(), rotator), l.l.Prefix(), l.l.Flags())
	}
}

// WithLevel sets the log level WaypointLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *WaypointLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger WaypointLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *WaypointLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *WaypointLogger) {
		l.skip = skip
	}
}
