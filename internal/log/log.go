// Package log provides a small key/value logger interface and a default
// implementation using package log.
package log

import (
	"fmt"
	"log"
	"strings"
)

var Root Logger = &Default{}

// Logger is the logger interface. The variadic arguments are key value pairs. The key must be a
// string and the value should have a meaningful string representation.
type Logger interface {
	Debug(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	With(...interface{}) Logger
}

// New returns a logger derived from Root carrying tags.
func New(tags ...interface{}) Logger      { return Root.With(tags...) }
func Error(m string, tags ...interface{}) { Root.Error(m, tags...) }

// Default writes through the standard logger. Debug lines are dropped unless
// Debugging is set.
type Default struct {
	Tags      []interface{}
	Debugging bool
}

func (l *Default) Debug(m string, ts ...interface{}) {
	if l.Debugging {
		log.Print(line("DEB ", m, ts, l.Tags))
	}
}
func (l *Default) Warn(m string, ts ...interface{})  { log.Print(line("WRN ", m, ts, l.Tags)) }
func (l *Default) Error(m string, ts ...interface{}) { log.Print(line("ERR ", m, ts, l.Tags)) }
func (l *Default) With(tags ...interface{}) Logger   { return l.with(tags) }
func (l *Default) with(tags []interface{}) *Default {
	t := make([]interface{}, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Default{Tags: t, Debugging: l.Debugging}
}

// Discard drops everything.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{}) {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}
func (d discard) With(...interface{}) Logger { return d }

func line(lvl, msg string, all ...[]interface{}) string {
	var b strings.Builder
	b.WriteString(lvl)
	b.WriteString(msg)
	for _, tags := range all {
		for i, v := range tags {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('=')
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
