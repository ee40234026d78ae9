package log

type TB interface {
	Errorf(string, ...interface{})
	Logf(string, ...interface{})
	Helper()
}

// Test is a logger using the testing package T or B types for logging.
// Errors fail the test.
type Test struct {
	TB
	Default
}

func (l *Test) Debug(m string, s ...interface{}) {
	l.Helper()
	l.Logf("%s", line("DEB ", m, s, l.Tags))
}
func (l *Test) Warn(m string, s ...interface{}) { l.Helper(); l.Logf("%s", line("WRN ", m, s, l.Tags)) }
func (l *Test) Error(m string, s ...interface{}) {
	l.Helper()
	l.Errorf("%s", line("ERR ", m, s, l.Tags))
}
func (l *Test) With(tags ...interface{}) Logger { return &Test{l.TB, *l.Default.with(tags)} }
