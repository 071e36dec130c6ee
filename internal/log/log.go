// Package log prints coloured, leveled messages to stderr.
package log

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
)

var (
	Output io.Writer = os.Stderr
	Flags            = log.Ltime | log.Lmicroseconds

	PrefixPanic  = "PANIC! "
	PrefixError  = "Error: "
	PrefixInfo   = "Info:  "
	PrefixDebug  = "Debug: "
	DebugGreyLvl = uint8(11)

	// EnableDebug turns on Debug output and stage timings.
	EnableDebug = false
)

var logPanic, logError, logInfo, logDebug *log.Logger

func init() {
	ResetLoggers()
}

// ResetLoggers rebuilds the loggers. Call it after changing Output, Flags or
// a prefix.
func ResetLoggers() {
	mk := func(prefix aurora.Value) *log.Logger {
		return log.New(Output, prefix.Bold().String(), Flags)
	}

	logPanic = mk(aurora.BgRed(aurora.White(PrefixPanic)))
	logError = mk(aurora.Red(PrefixError))
	logInfo = mk(aurora.Blue(PrefixInfo))
	logDebug = mk(aurora.Gray(DebugGreyLvl, PrefixDebug))
}

func Infof(f string, v ...interface{}) {
	logInfo.Printf(f, v...)
}

func Errorln(v ...interface{}) {
	logError.Println(v...)
}

func Debugf(f string, v ...interface{}) {
	if EnableDebug {
		logDebug.Printf(f, v...)
	}
}

func Debugln(v ...interface{}) {
	if EnableDebug {
		logDebug.Println(v...)
	}
}

// Panicln logs and panics. Used where a caller cannot return an error, such
// as generated init code.
func Panicln(v ...interface{}) {
	logPanic.Panicln(v...)
}

// Fatalln logs and exits with status 1.
func Fatalln(v ...interface{}) {
	logPanic.Fatalln(v...)
}

// Benchmark returns a function that logs how long thing took since Benchmark
// was called. Only visible with debugging enabled.
func Benchmark(thing string) func() {
	start := time.Now()
	return func() {
		Debugln(thing, "took", time.Since(start))
	}
}
