package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokend/xdrgen/backend"
	"github.com/tokend/xdrgen/internal/log"
)

func TestReport(t *testing.T) {
	unsupported := &backend.UnsupportedConstructError{Backend: "openapi", Construct: "quadruple"}
	require.Equal(t, 2, report(fmt.Errorf("generating: %w", unsupported)))
	require.Equal(t, 1, report(errors.New("boom")))
}

func TestCompileFallsBackToConfigInputs(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "a.x")
	require.NoError(t, os.WriteFile(schema, []byte("struct A { int x; };"), 0o644))
	cfgPath := filepath.Join(dir, "xdrgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("inputs:\n  - "+schema+"\n"), 0o644))

	flags := commonFlags{configPath: cfgPath}
	cfg, _, err := flags.load()
	require.NoError(t, err)

	fe, err := compile(&log.Test{TB: t}, cfg, nil)
	require.NoError(t, err)
	require.Len(t, fe.Root().Definitions, 1)
	require.Equal(t, []string{schema}, fe.Paths())
}

func TestCompileWithoutInputs(t *testing.T) {
	flags := commonFlags{}
	cfg, _, err := flags.load()
	require.NoError(t, err)
	_, err = compile(log.Discard, cfg, nil)
	require.Error(t, err)
}

func TestLoadInstallsRootLogger(t *testing.T) {
	root := log.Root
	t.Cleanup(func() { log.Root = root })

	flags := commonFlags{verbose: true}
	cfg, logger, err := flags.load()
	require.NoError(t, err)
	require.True(t, cfg.Verbose)
	require.Equal(t, &log.Default{Debugging: true}, log.Root)
	require.Equal(t, &log.Default{Tags: []interface{}{}, Debugging: true}, logger)
}
