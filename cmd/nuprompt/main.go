// Package main is the entry point for the nuprompt application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chmouel/nuprompt/internal/bootstrap"
	"github.com/chmouel/nuprompt/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	if err := bootstrap.Run(context.Background(), os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "nuprompt: %v\n", err)
		os.Exit(1)
	}
}
