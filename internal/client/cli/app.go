// Package cli is the interactive terminal front end of the employee
// directory.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"employee-directory/internal/client"
)

const helpAnonymous = "Available commands: register, login, help, exit"

const helpLoggedIn = "Available commands: home, list [page], show <id>, add, edit <id>, delete <id>, logout, help, exit"

type App struct {
	client   *client.Client
	reader   *bufio.Reader
	out      io.Writer
	pageSize int
}

func NewApp(c *client.Client, in io.Reader, out io.Writer, pageSize int) *App {
	if pageSize <= 0 {
		pageSize = client.DefaultPageSize
	}
	return &App{client: c, reader: bufio.NewReader(in), out: out, pageSize: pageSize}
}

func (a *App) isLoggedIn() bool {
	return a.client.Session().LoggedIn()
}

func (a *App) status() string {
	if s := a.client.Session(); s.LoggedIn() {
		return s.Username
	}
	return "anonymous"
}

// Run reads commands until exit, EOF or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.println("Employee directory (type 'help' for commands)")
	if a.isLoggedIn() {
		a.home(ctx)
	}

	for ctx.Err() == nil {
		fmt.Fprintf(a.out, "emp (%s)> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			a.println()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !a.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should continue.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		a.println("Bye!")
		return false
	case "help":
		if a.isLoggedIn() {
			a.println(helpLoggedIn)
		} else {
			a.println(helpAnonymous)
		}
		return true
	case "register":
		a.register(ctx)
		return true
	case "login":
		a.login(ctx)
		return true
	}

	protected := map[string]func(context.Context, []string){
		"home":   func(ctx context.Context, _ []string) { a.home(ctx) },
		"list":   a.list,
		"l":      a.list,
		"show":   a.show,
		"add":    func(ctx context.Context, _ []string) { a.add(ctx) },
		"edit":   a.edit,
		"delete": a.delete,
		"logout": func(context.Context, []string) { a.logout() },
	}

	run, ok := protected[cmd]
	if !ok {
		a.println("Unknown command:", cmd)
		return true
	}
	if !a.isLoggedIn() {
		a.println("You must be logged in. Use 'login' or 'register'.")
		return true
	}
	run(ctx, args)
	return true
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints err for the user. A rejected token has already dropped the
// session, so the user lands back in the anonymous state.
func (a *App) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.println("Session expired. Please log in again")
	case errors.As(err, &apiErr):
		a.println("Error:", apiErr.Message)
	default:
		a.println("Error:", err)
	}
}
