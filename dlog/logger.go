// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dlog is a small leveled logger, adapted from coreos/pkg's
// capnslog for a single binary rather than a multi-repo registry: a Logger
// is created directly for one component instead of being looked up from a
// global repo/package map.
package dlog

import "fmt"

// LogLevel is the set of all log levels, ordered from least to most verbose.
type LogLevel int8

const (
	ERROR LogLevel = iota
	WARNING
	INFO
	DEBUG
	TRACE
)

// Char returns a single-character representation of the log level.
func (l LogLevel) Char() string {
	switch l {
	case ERROR:
		return "E"
	case WARNING:
		return "W"
	case INFO:
		return "I"
	case DEBUG:
		return "D"
	case TRACE:
		return "T"
	default:
		return "?"
	}
}

// ParseLevel translates a loglevel string or its single-character form into
// a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch s {
	case "ERROR", "E":
		return ERROR, nil
	case "WARNING", "W":
		return WARNING, nil
	case "INFO", "I":
		return INFO, nil
	case "DEBUG", "D":
		return DEBUG, nil
	case "TRACE", "T":
		return TRACE, nil
	}
	return ERROR, fmt.Errorf("dlog: couldn't parse log level %q", s)
}

// Logger is a leveled logger for one named component (e.g. "flate" or
// "inflated"). Entries at or below the configured level are formatted and
// emitted; entries above it are dropped before reaching the formatter. The
// message is rendered with fmt.Sprintf before the level check in either case.
type Logger struct {
	name      string
	level     LogLevel
	formatter Formatter
}

// New creates a Logger for name, emitting at most entries up to level,
// written through formatter.
func New(name string, level LogLevel, formatter Formatter) *Logger {
	return &Logger{name: name, level: level, formatter: formatter}
}

// SetLevel changes the maximum level emitted.
func (l *Logger) SetLevel(level LogLevel) { l.level = level }

func (l *Logger) log(level LogLevel, msg string) {
	if level > l.level {
		return
	}
	l.formatter.Format(l.name, level, msg)
}

func (l *Logger) Errorf(format string, args ...interface{})   { l.log(ERROR, fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...interface{}) { l.log(WARNING, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...interface{})    { l.log(INFO, fmt.Sprintf(format, args...)) }
func (l *Logger) Debugf(format string, args ...interface{})   { l.log(DEBUG, fmt.Sprintf(format, args...)) }
func (l *Logger) Tracef(format string, args ...interface{})   { l.log(TRACE, fmt.Sprintf(format, args...)) }
