package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/tokend/xdrgen/ast"
)

type cmdPrint struct {
	commonFlags
}

func (*cmdPrint) help() *commandHelp {
	return &commandHelp{
		usage:   "print FILES...",
		summary: "Print the outline of the resolved schemas",
	}
}

func (cmd *cmdPrint) flags(flags *pflag.FlagSet) {
	cmd.commonFlags.register(flags)
}

func (cmd *cmdPrint) run(ctx context.Context, argv []string) int {
	cfg, logger, err := cmd.load()
	if err != nil {
		return report(err)
	}
	fe, err := compile(logger, cfg, argv)
	if err != nil {
		return report(err)
	}
	if err := ast.Fprint(os.Stdout, fe.Root()); err != nil {
		return report(err)
	}
	return 0
}
