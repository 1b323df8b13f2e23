// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestArgParser_Subcommand(t *testing.T) {
	p := NewArgParser([]string{"post", "hello", "world"})
	if p.Subcommand() != "post" {
		t.Errorf("Subcommand = %q, want post", p.Subcommand())
	}
}

func TestArgParser_Empty(t *testing.T) {
	p := NewArgParser(nil)
	if p.Subcommand() != "" {
		t.Errorf("Subcommand = %q, want empty", p.Subcommand())
	}
	if p.Positional(0) != "" {
		t.Error("Positional(0) should be empty")
	}
}

func TestArgParser_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want string
	}{
		{"space separated", []string{"cmd", "--server", "https://x"}, "server", "https://x"},
		{"equals form", []string{"cmd", "--server=https://y"}, "server", "https://y"},
		{"missing flag", []string{"cmd"}, "server", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args)
			if got := p.Flag(tt.flag); got != tt.want {
				t.Errorf("Flag(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}

func TestArgParser_BoolFlags(t *testing.T) {
	p := NewArgParser([]string{"cmd", "--json", "--color=false"})
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) should be true")
	}
	if p.BoolFlag("color") {
		t.Error("BoolFlag(color) should be false")
	}
	if p.BoolFlag("missing") {
		t.Error("BoolFlag(missing) should be false")
	}
}

func TestArgParser_PositionalFrom(t *testing.T) {
	p := NewArgParser([]string{"post", "hello", "board", "world"})
	got := strings.Join(p.PositionalFrom(1), " ")
	if got != "hello board world" {
		t.Errorf("PositionalFrom(1) joined = %q", got)
	}
	if p.PositionalFrom(10) != nil {
		t.Error("out of range should be nil")
	}
}
