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
	Verify(ctx context.Context) error
	ResendOTP(ctx context.Context) error
	Reset(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Chat(ctx context.Context, prompt string) error
	Prompts(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the gophchat CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The rest of the line is passed to commands
// that take an argument (chat). The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account
//	  - verify          enter the e-mailed 6-digit code
//	  - login           authenticate
//	  - reset           reset a forgotten password
//	  - status          show session and stored flags
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - help            show available commands
//	  - whoami          show the profile
//	  - chat [prompt]   ask the AI; without a prompt, read several lines
//	  - prompts         list sample prompts
//	  - resend-otp      mail a new verification code
//	  - verify          enter the e-mailed 6-digit code
//	  - logout          log out
//	  - status          show session and stored flags
//	  - exit | quit     leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gophchat %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, chat [prompt], prompts, resend-otp, verify, logout, status, exit")
			} else {
				printlnFn("Available commands: register, verify, login, reset, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "resend-otp":
			_ = a.ResendOTP(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "chat":
			_ = a.Chat(ctx, rest)

		case "prompts":
			_ = a.Prompts(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
