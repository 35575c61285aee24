package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Refresh(ctx context.Context) error

	ListAlerts(ctx context.Context, color string) error
	ShowAlert(ctx context.Context, id string) error
	CloseAlert(ctx context.Context) error
	FetchAlerts(ctx context.Context) error
	NewAlert(ctx context.Context) error
	EditAlert(ctx context.Context, id string) error
	DeleteAlert(ctx context.Context, id string) error
	Heatmap(ctx context.Context, file string) error

	Chat(ctx context.Context) error

	Vault(ctx context.Context) error
	Upload(ctx context.Context, section string) error
	Export(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error

	About(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, alerts [color], alert <id>, close, heatmap [file], vault, upload <section>, export <id>, remove <id>, about, exit"
	helpLoggedIn  = "Available commands: whoami, profile, edit-profile, refresh, logout, alerts|l [color], alert <id>, close, fetch-alerts, new-alert, edit-alert <id>, delete-alert <id>, heatmap [file], chat, vault, upload <section>, export <id>, remove <id>, about, exit"
)

// runREPL starts a simple read–eval–print loop for the navigator CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands taking an argument print their usage
// when it is missing. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// The prompt shows the current status (from statusFn). Any errors returned by
// command handlers are ignored here; handlers report their own errors. This
// keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("hn %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		need := func(usage string) bool {
			if arg == "" {
				printlnFn("Usage:", usage)
				return false
			}
			return true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "edit-profile":
			_ = a.EditProfile(ctx)
		case "refresh":
			_ = a.Refresh(ctx)

		case "l", "alerts":
			_ = a.ListAlerts(ctx, arg)
		case "alert":
			if need("alert <id>") {
				_ = a.ShowAlert(ctx, arg)
			}
		case "close":
			_ = a.CloseAlert(ctx)
		case "fetch-alerts":
			_ = a.FetchAlerts(ctx)
		case "new-alert":
			_ = a.NewAlert(ctx)
		case "edit-alert":
			if need("edit-alert <id>") {
				_ = a.EditAlert(ctx, arg)
			}
		case "delete-alert":
			if need("delete-alert <id>") {
				_ = a.DeleteAlert(ctx, arg)
			}
		case "heatmap":
			_ = a.Heatmap(ctx, arg)

		case "chat":
			_ = a.Chat(ctx)

		case "vault":
			_ = a.Vault(ctx)
		case "upload":
			if need("upload <health-records|medications|appointments>") {
				_ = a.Upload(ctx, arg)
			}
		case "export":
			if need("export <document id>") {
				_ = a.Export(ctx, arg)
			}
		case "remove":
			if need("remove <document id>") {
				_ = a.Remove(ctx, arg)
			}

		case "about":
			_ = a.About(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
