// Copyright 2026 The Duniter-Go Authors
// This file is part of the duniter-go/duniter library.
//
// This software is provided "as is", without warranty of any kind,
// express or implied, including but not limited to the warranties
// of merchantability, fitness for a particular purpose and
// noninfringement. In no event shall the authors or copyright
// holders be liable for any claim, damages, or other liability,
// whether in an action of contract, tort or otherwise, arising
// from, out of or in connection with the software or the use or
// other dealings in the software.

// Package log is a small leveled logger: a Logger interface with
// key-value context, a root logger, and a terminal handler that
// colorizes by level when attached to a TTY.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is a logging priority, lowest (most verbose) to highest.
type Lvl int

const (
	LvlTrace Lvl = iota
	LvlDebug
	LvlInfo
	LvlWarn
	LvlError
	LvlCrit
)

func (l Lvl) String() string {
	switch l {
	case LvlTrace:
		return "TRACE"
	case LvlDebug:
		return "DEBUG"
	case LvlInfo:
		return "INFO"
	case LvlWarn:
		return "WARN"
	case LvlError:
		return "ERROR"
	case LvlCrit:
		return "CRIT"
	default:
		return "?????"
	}
}

var levelColor = map[Lvl]*color.Color{
	LvlTrace: color.New(color.FgHiBlack),
	LvlDebug: color.New(color.FgCyan),
	LvlInfo:  color.New(color.FgGreen),
	LvlWarn:  color.New(color.FgYellow),
	LvlError: color.New(color.FgRed),
	LvlCrit:  color.New(color.FgHiRed, color.Bold),
}

// Logger writes structured, leveled messages with key-value context.
type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
	New(ctx ...interface{}) Logger
}

type logger struct {
	ctx []interface{}
	h   *handler
}

type handler struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	minLvl   Lvl
}

// Root is the default logger, writing to stderr, colorized if stderr
// is a real terminal.
var root Logger = newRootLogger()

func newRootLogger() Logger {
	isTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	out := io.Writer(os.Stderr)
	if isTTY {
		out = colorable.NewColorableStderr()
	}
	return &logger{h: &handler{out: out, colorize: isTTY, minLvl: LvlInfo}}
}

// Root returns the package's default logger.
func Root() Logger { return root }

// SetLevel adjusts the minimum level the root logger emits (LvlInfo
// by default).
func SetLevel(l Lvl) {
	if lg, ok := root.(*logger); ok {
		lg.h.mu.Lock()
		lg.h.minLvl = l
		lg.h.mu.Unlock()
	}
}

// New returns a new root-level Logger seeded with ctx.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

func (l *logger) New(ctx ...interface{}) Logger {
	merged := make([]interface{}, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &logger{ctx: merged, h: l.h}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(LvlCrit, msg, ctx) }

func (l *logger) write(lvl Lvl, msg string, extra []interface{}) {
	l.h.mu.Lock()
	defer l.h.mu.Unlock()
	if lvl < l.h.minLvl {
		return
	}

	lvlStr := lvl.String()
	if l.h.colorize {
		lvlStr = levelColor[lvl].Sprint(lvlStr)
	}

	fmt.Fprintf(l.h.out, "%s[%s] %-5s %s",
		time.Now().Format("01-02|15:04:05.000"), callsite(3), lvlStr, msg)

	all := make([]interface{}, 0, len(l.ctx)+len(extra))
	all = append(all, l.ctx...)
	all = append(all, extra...)
	for i := 0; i+1 < len(all); i += 2 {
		fmt.Fprintf(l.h.out, " %v=%v", all[i], all[i+1])
	}
	fmt.Fprintln(l.h.out)
}

// callsite reports the file:line of the logger call site, skip frames
// up from here.
func callsite(skip int) string {
	c := stack.Caller(skip)
	return fmt.Sprintf("%+v", c)
}
