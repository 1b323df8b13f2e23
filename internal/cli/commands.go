// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive agora subcommands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/agoradev/agora-tui/internal/api"
	"github.com/agoradev/agora-tui/internal/config"
	"github.com/agoradev/agora-tui/internal/session"
	"github.com/agoradev/agora-tui/internal/timeutil"
	"github.com/agoradev/agora-tui/internal/ui/styles"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const commandTimeout = 30 * time.Second

// Env bundles what every command needs.
type Env struct {
	Config *config.Config
	Store  *session.Store
	Client *api.Client
}

// NewEnv builds the command environment from the loaded config.
func NewEnv(cfg *config.Config) (*Env, error) {
	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(sessionPath)

	client := api.NewClient(
		cfg.API.BoardURL,
		cfg.API.AuthURL,
		cfg.API.ForumURL,
		api.WithTimeout(time.Duration(cfg.API.TimeoutSecs)*time.Second),
		api.WithTokenFunc(store.Token),
	)
	return &Env{Config: cfg, Store: store, Client: client}, nil
}

// Run dispatches a subcommand. It returns the process exit code.
func Run(env *Env, args *ArgParser) int {
	switch args.Subcommand() {
	case "login":
		return runLogin(env)
	case "register":
		return runRegister(env)
	case "logout":
		return runLogout(env)
	case "whoami":
		return runWhoami(env)
	case "post":
		return runPost(env, args)
	case "messages":
		return runMessages(env)
	case "config":
		return runConfig(env)
	case "version":
		fmt.Println("agora " + Version)
		return 0
	case "help", "":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "agora: unknown command %q\n\n", args.Subcommand())
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Print(`agora - terminal client for the agora message board

Usage:
  agora              start the interactive client
  agora login        log in and store the session
  agora register     create an account and store the session
  agora logout       clear the stored session
  agora whoami       show the logged-in user
  agora post <text>  post an anonymous message to the board
  agora messages     print the board, newest first
  agora config       show the resolved configuration
  agora version      print the version

Configuration lives at ~/.agora/config.toml and can be overridden with
AGORA_BOARD_URL, AGORA_AUTH_URL, AGORA_FORUM_URL and AGORA_TIMEOUT_SECS.
`)
}

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// promptLine reads one line from stdin with a label.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runLogin(env *Env) int {
	email, err := promptLine("Email: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	if email == "" || strings.TrimSpace(password) == "" {
		fmt.Fprintln(os.Stderr, "agora: email and password are required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	creds, err := env.Client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := env.Store.Save(creds.User, creds.Token); err != nil {
		fmt.Fprintf(os.Stderr, "agora: failed to store session: %v\n", err)
		return 1
	}

	fmt.Println(styles.RenderSuccess("Logged in as " + creds.User.Username))
	return 0
}

func runRegister(env *Env) int {
	username, err := promptLine("Username: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	email, err := promptLine("Email: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		fmt.Fprintln(os.Stderr, "agora: username, email and password are required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	creds, err := env.Client.Register(ctx, username, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := env.Store.Save(creds.User, creds.Token); err != nil {
		fmt.Fprintf(os.Stderr, "agora: failed to store session: %v\n", err)
		return 1
	}

	fmt.Println(styles.RenderSuccess("Account created. Logged in as " + creds.User.Username))
	return 0
}

func runLogout(env *Env) int {
	if err := env.Store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}
	fmt.Println(styles.RenderSuccess("Logged out"))
	return 0
}

func runWhoami(env *Env) int {
	user, ok := env.Store.CurrentUser()
	if !ok {
		fmt.Println("not logged in")
		return 1
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	return 0
}

// =============================================================================
// BOARD COMMANDS
// =============================================================================

func runPost(env *Env, args *ArgParser) int {
	content := strings.Join(args.PositionalFrom(1), " ")
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(os.Stderr, "agora: nothing to post")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if _, err := env.Client.PostMessage(ctx, content); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	fmt.Println(styles.RenderSuccess("Posted"))
	return 0
}

func runMessages(env *Env) int {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	msgs, err := env.Client.ListMessages(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	now := time.Now()
	for _, m := range msgs {
		fmt.Printf("[%s]\n%s\n\n", timeutil.Relative(m.CreatedAt.Time, now), m.Content)
	}
	return 0
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func runConfig(env *Env) int {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		return 1
	}

	fmt.Printf("config file:  %s\n", path)
	fmt.Printf("board url:    %s\n", env.Config.API.BoardURL)
	fmt.Printf("auth url:     %s\n", env.Config.API.AuthURL)
	fmt.Printf("forum url:    %s\n", env.Config.API.ForumURL)
	fmt.Printf("timeout:      %ds\n", env.Config.API.TimeoutSecs)
	return 0
}
