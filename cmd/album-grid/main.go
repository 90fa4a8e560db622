package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/handiism/album-grid/internal/cli"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli.SetVersion(version, commit, date)

	if err := fang.Execute(
		context.Background(),
		cli.NewRootCommand(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
