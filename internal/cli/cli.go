// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ServerURL string
	Theme     string
	Plain     bool // Disable markdown rendering for ask output

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `codechat - terminal chat client for a code assistant backend

Usage:
  codechat                    Start the TUI (default)
  codechat ask "question"     Ask a single question and print the reply
  codechat config [show|set]  Inspect or change configuration
  codechat version            Show version information
  codechat help               Show this help

Flags:
  --server URL    Override the backend server URL
  --theme NAME    Color theme: dark or light
  --plain         Print ask output without markdown rendering

Environment:
  CODECHAT_SERVER_URL       Backend server URL
  CODECHAT_CONVERSATION_ID  Conversation to resume on startup
  CODECHAT_THEME            Color theme
`

// Usage prints the usage text.
func Usage() {
	fmt.Print(usageText)
}

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	var args Args
	var positional []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--server" && i+1 < len(argv):
			i++
			args.ServerURL = argv[i]
		case strings.HasPrefix(arg, "--server="):
			args.ServerURL = strings.TrimPrefix(arg, "--server=")
		case arg == "--theme" && i+1 < len(argv):
			i++
			args.Theme = argv[i]
		case strings.HasPrefix(arg, "--theme="):
			args.Theme = strings.TrimPrefix(arg, "--theme=")
		case arg == "--plain":
			args.Plain = true
		case arg == "-h", arg == "--help":
			return CmdHelp, args
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest

	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args
	case "config":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
		}
		if len(rest) > 1 {
			args.ConfigKey = rest[1]
		}
		if len(rest) > 2 {
			args.ConfigVal = rest[2]
		}
		return CmdConfig, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Unknown word: treat the whole tail as an ask query.
		args.Query = strings.Join(positional, " ")
		return CmdAsk, args
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("codechat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
