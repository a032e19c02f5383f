// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mhollis/codechat-tui/internal/config"
)

// HandleConfig implements `codechat config [show|set KEY VALUE|path]`.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		showConfig()
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
	case "set":
		setConfig(args.ConfigKey, args.ConfigVal)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config subcommand %q\n", args.Subcommand)
		os.Exit(1)
	}
}

func showConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setConfig(key, value string) {
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, "Usage: codechat config set KEY VALUE")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch key {
	case "server.base_url":
		cfg.Server.BaseURL = value
	case "server.conversation_id":
		cfg.Server.ConversationID = value
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.syntax_style":
		cfg.UI.SyntaxStyle = value
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config key %q\n", key)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s = %s\n", key, value)
}
