package logging

// nopLogger discards all log entries.
type nopLogger struct{}

// Nop returns a Logger that discards everything. Intended for tests.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
