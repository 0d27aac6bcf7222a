package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

var (
	// Build-time variables set via ldflags
	// Example: go build -ldflags "-X main.Version=1.0.0"
	Version = "v0.1.0"
)

// reorderArgs moves flags after positional arguments to before them within subcommands
// This allows: quoter validate prices.hcl --log-level debug
// To work like: quoter validate --log-level debug prices.hcl
func reorderArgs(args []string) []string {
	if len(args) <= 1 {
		return args
	}

	commands := map[string]bool{
		"quote": true, "catalog": true, "validate": true,
		"interactive": true, "ui": true,
		"help": true, "h": true,
	}

	result := make([]string, 0, len(args))
	result = append(result, args[0]) // Keep program name

	// Global flags stay in front of the command name
	cmdPathEnd := 1
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if commands[arg] {
			result = append(result, arg)
			cmdPathEnd = i + 1
			break
		}
		result = append(result, arg)
		cmdPathEnd = i + 1
	}
	if cmdPathEnd == len(args) {
		return result
	}

	var flags []string
	var positional []string
	skipNext := false

	// Known flags that take a value
	valuedFlags := map[string]bool{
		"--catalog": true, "-c": true, "--log-level": true,
		"--plan": true, "--service": true, "--website": true,
		"--crm": true, "--extra": true,
		"--nats-servers": true, "--nats-seed": true, "--nats-prefix": true,
	}

	for i := cmdPathEnd; i < len(args); i++ {
		arg := args[i]

		if skipNext {
			flags = append(flags, arg)
			skipNext = false
			continue
		}

		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if valuedFlags[arg] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				skipNext = true
			}
		} else {
			positional = append(positional, arg)
		}
	}

	// Reconstruct: command path + flags + positional
	result = append(result, flags...)
	result = append(result, positional...)

	return result
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "quoter",
		Usage:                  "Plan quote calculator for the RevendaMais price list",
		Version:                Version,
		UseShortOptionHandling: true,
		EnableBashCompletion:   true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Price list file or http(s) URL (built-in price list when empty)",
				EnvVars: []string{"QUOTER_CATALOG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"QUOTER_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			quoteCommand(),
			catalogCommand(),
			validateCommand(),
			interactiveCommand(),
		},
		Before: func(c *cli.Context) error {
			level := hclog.LevelFromString(c.String("log-level"))
			if level == hclog.NoLevel {
				return fmt.Errorf("invalid log level %q", c.String("log-level"))
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "quoter",
				Level:  level,
				Output: os.Stderr,
				Color:  hclog.AutoColor,
			})
			hclog.SetDefault(logger)

			return nil
		},
	}
}

func main() {
	// e.g., "quoter validate prices.hcl -c x" works like "quoter validate -c x prices.hcl"
	args := reorderArgs(os.Args)

	if err := newApp().Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
