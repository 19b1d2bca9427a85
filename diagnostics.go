package dbc

import "github.com/op/go-logging"

// Logger is the minimal leveled-logging surface the core package needs
// for its recoverable diagnostics (range substitution, capacity
// truncation). It is satisfied directly by *logging.Logger, so library
// consumers can inject their own op/go-logging logger via
// (*Database).SetLogger, the same way kryptco-kr's daemon threads a
// *logging.Logger through its components instead of using a package
// global.
type Logger interface {
	Warningf(format string, args ...interface{})
}

var packageLog = logging.MustGetLogger("dbc")

func defaultLogger() Logger {
	return packageLog
}
