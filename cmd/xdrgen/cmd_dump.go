package main

import (
	"context"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
)

type cmdDump struct {
	commonFlags
	depth int
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump NAME FILES...",
		summary: "Dump the model of one definition",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	cmd.commonFlags.register(flags)
	flags.IntVarP(&cmd.depth, "depth", "d", 3, "maximum nesting depth to dump")
}

func (cmd *cmdDump) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: xdrgen dump NAME FILES...")
		return 1
	}
	cfg, logger, err := cmd.load()
	if err != nil {
		return report(err)
	}
	fe, err := compile(logger, cfg, argv[1:])
	if err != nil {
		return report(err)
	}
	def, err := fe.Root().FindDefinition(argv[0])
	if err != nil {
		return report(err)
	}

	// Nodes point back at their containers, so depth must stay bounded.
	dumper := spew.ConfigState{
		Indent:                  "  ",
		MaxDepth:                cmd.depth,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(os.Stdout, def)
	return 0
}
