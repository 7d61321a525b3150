// Command jhfctl is a terminal client for the JHF API. It keeps the login
// session in a file and falls back to bundled demo data when the API
// cannot be reached.
//
// Environment (also read from .env): JHF_API_URL, JHF_SESSION_FILE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mejbaurrahman/JHF/internal/client"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultAPIURL = "http://127.0.0.1:5000/api"

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// env is what every command receives.
type env struct {
	ds      client.DataSource
	session *client.Session
	out     io.Writer
	errOut  io.Writer
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: jhfctl [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-14s %s\n", c.name, c.help)
	}
	fmt.Fprintln(w, "\nflags:")
	fmt.Fprint(w, fs.FlagUsages())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("jhfctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	apiURL := fs.String("api", envOr("JHF_API_URL", defaultAPIURL), "API root URL including /api")
	sessionPath := fs.String("session", envOr("JHF_SESSION_FILE", client.DefaultSessionPath()), "session file")
	offline := fs.Bool("offline", false, "use bundled demo data without contacting the API")
	verbose := fs.BoolP("verbose", "v", false, "log requests and fallbacks to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			usage(stdout, fs)
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr, fs)
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer func() { _ = logger.Sync() }()

	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		usage(stderr, fs)
		return 2
	}

	sess, err := client.LoadSession(*sessionPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if sess.Expired(time.Now()) {
		_ = sess.Clear()
		fmt.Fprintln(stderr, "session expired; log in again")
	}

	var ds client.DataSource
	if *offline {
		ds, err = client.NewFixtureSource(sess)
	} else {
		ds, err = client.Select(ctx, client.Options{BaseURL: *apiURL, Session: sess, Logger: logger})
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if ds.Name() != "remote" && !*offline {
		fmt.Fprintln(stderr, "API unreachable; showing offline demo data")
	}

	e := &env{ds: ds, session: sess, out: stdout, errOut: stderr}
	if err := cmd.run(ctx, e, fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, "error:", describe(err))
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// describe prefers the server's message.
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case client.IsNetwork(err):
		return "cannot reach the API"
	case errors.Is(err, client.ErrOffline):
		return "this action needs the API; it is not available offline"
	}
	return err.Error()
}
