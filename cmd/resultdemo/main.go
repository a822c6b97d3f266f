package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/resultdemo <command> <flags>

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "toml file with [result] and [log] sections, disabled if empty",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "trace, debug, info, warn or error",
		Value: "info",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "sets the file that info logs go to, console only if empty",
	}
	policyFlag = cli.StringFlag{
		Name:  "policy",
		Usage: "what a bad value or error access does: panic or abort",
		Value: "panic",
	}
)

func main() {
	app := &cli.App{
		Name:  "resultdemo",
		Usage: "exercises result chains, error conversion and access policies",
		Flags: []cli.Flag{
			&configFlag,
			&logLevelFlag,
			&logFileFlag,
			&policyFlag,
		},
		Before: setup,
		Commands: []*cli.Command{
			&Run,
			&ConvertCmd,
			&Parallel,
			&Watch,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
