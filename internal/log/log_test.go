package log

import (
	"bytes"
	stdlog "log"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStd(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	flags, out := stdlog.Flags(), stdlog.Writer()
	stdlog.SetFlags(0)
	stdlog.SetOutput(&buf)
	t.Cleanup(func() {
		stdlog.SetFlags(flags)
		stdlog.SetOutput(out)
	})
	return &buf
}

func TestLine(t *testing.T) {
	got := line("WRN ", "duplicate", []interface{}{"name", "Foo"}, []interface{}{"lang", "openapi"})
	require.Equal(t, "WRN duplicate name=Foo lang=openapi", got)
}

func TestDefaultDropsDebug(t *testing.T) {
	buf := captureStd(t)
	l := &Default{}
	l.Debug("hidden")
	require.Empty(t, buf.String())

	l.With("phase", 2).Warn("shown", "n", 1)
	require.Equal(t, "WRN shown n=1 phase=2\n", buf.String())
}

func TestDefaultDebugging(t *testing.T) {
	buf := captureStd(t)
	l := (&Default{Debugging: true}).With("cmd", "check")
	l.Debug("parsed")
	require.Equal(t, "DEB parsed cmd=check\n", buf.String())
}

func TestDiscard(t *testing.T) {
	buf := captureStd(t)
	Discard.With("a", 1).Error("nothing")
	require.Empty(t, buf.String())
}

func TestRootHelpers(t *testing.T) {
	buf := captureStd(t)
	root := Root
	t.Cleanup(func() { Root = root })

	Root = &Default{Debugging: true, Tags: []interface{}{"app", "xdrgen"}}
	New("cmd", "check").Debug("parsed", "files", 2)
	Error("failed")
	require.Equal(t, "DEB parsed files=2 cmd=check app=xdrgen\nERR failed app=xdrgen\n", buf.String())
}
