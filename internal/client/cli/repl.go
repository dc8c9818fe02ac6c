package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Info(ctx context.Context) error

	Refresh(ctx context.Context) error
	Show(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	UseQuota(ctx context.Context) error

	SetQuota(ctx context.Context, args []string) error
	Accept(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, signup, exit"
	helpUser      = "Available commands: show, refresh, send <text>, del <id>, use, info, logout, exit"
	helpAdmin     = "Available commands: show, refresh, setquota <userId> <n>, accept <id>, reject <id>, deluser <userId>, info, logout, exit"
)

// runREPL starts a read–eval–print loop over the dashboards.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF, context
// cancellation, or when the user types "exit" or "quit".
//
// The command set depends on the session: logged out, only login/signup
// are offered; a USER gets the message dashboard commands; an ADMIN gets
// the moderation and user-management commands.
//
// Any errors returned by command handlers are ignored here; handlers
// surface their own failures through the dashboard alert state. This
// keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("msgquota %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpLoggedOut)
			case a.isAdmin():
				printlnFn(helpAdmin)
			default:
				printlnFn(helpUser)
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "show", "s":
			_ = a.Show(ctx)

		case "refresh", "r":
			_ = a.Refresh(ctx)

		case "send":
			_ = a.Send(ctx, args)

		case "del", "delete":
			_ = a.Delete(ctx, args)

		case "use":
			_ = a.UseQuota(ctx)

		case "setquota":
			_ = a.SetQuota(ctx, args)

		case "accept":
			_ = a.Accept(ctx, args)

		case "reject":
			_ = a.Reject(ctx, args)

		case "deluser":
			_ = a.DeleteUser(ctx, args)

		case "info":
			_ = a.Info(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
