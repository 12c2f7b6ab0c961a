package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
)

const sessionKeyPattern = "session:*"

type sessionListOptions struct {
	Email string
	Limit int
}

type sessionClearOptions struct {
	Email  string
	All    bool
	DryRun bool
	Yes    bool
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionListFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	redisClient, err := connectSessionRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", sessionKeyPattern)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if headerErr := writeln(w, "Session ID\tEmail\tRole\tExpires In"); headerErr != nil {
		return fmt.Errorf("print session header: %w", headerErr)
	}

	total := 0
	iter := redisClient.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		if opts.Limit > 0 && total >= opts.Limit {
			break
		}
		key := iter.Val()
		sess, loadErr := loadSession(ctx, redisClient, key)
		if loadErr != nil {
			cmdCtx.Logger.Warn("skipping unreadable session", "key", key, "error", loadErr)
			continue
		}
		if opts.Email != "" && sess.Email != opts.Email {
			continue
		}
		total++
		if rowErr := writef(w, "%s\t%s\t%s\t%s\n",
			sess.ID, sess.Email, sess.Role, renderExpiry(sess.ExpiresAt)); rowErr != nil {
			return fmt.Errorf("print session row: %w", rowErr)
		}
	}
	if err = iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return fmt.Errorf("flush session table: %w", flushErr)
	}

	if total == 0 {
		return writeln(os.Stdout, "(no sessions found)")
	}
	return writef(os.Stdout, "\nTotal sessions: %d\n", total)
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionClearFlags(args)
	if err != nil {
		return err
	}

	if !opts.Yes && !opts.DryRun {
		scope := "all sessions"
		if opts.Email != "" {
			scope = "sessions for " + opts.Email
		}
		if confirmErr := confirmAction(dbResetConfirmOptions{
			target: "the configured Redis instance",
		}, "delete "+scope); confirmErr != nil {
			return confirmErr
		}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	redisClient, err := connectSessionRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", sessionKeyPattern, "dry_run", opts.DryRun)

	total := 0
	deleted := 0
	iter := redisClient.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if opts.Email != "" {
			sess, loadErr := loadSession(ctx, redisClient, key)
			if loadErr != nil || sess.Email != opts.Email {
				continue
			}
		}
		total++
		if opts.DryRun {
			continue
		}
		if delErr := redisClient.Del(ctx, key).Err(); delErr != nil {
			cmdCtx.Logger.Error("failed to delete session", "key", key, "error", delErr)
			continue
		}
		deleted++
	}
	if err = iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d sessions\n", total)
	}
	return writef(os.Stdout, "Deleted %d/%d sessions\n", deleted, total)
}

func loadSession(ctx context.Context, client redis.UniversalClient, key string) (domainauth.Session, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get %s: %w", key, err)
	}
	var sess domainauth.Session
	if err = json.Unmarshal(raw, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("decode session %s: %w", key, err)
	}
	return sess, nil
}

func renderExpiry(t time.Time) string {
	d := time.Until(t)
	if d <= 0 {
		return "expired"
	}
	return d.Truncate(time.Second).String()
}

func parseSessionListFlags(args []string) (sessionListOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionListOptions
	fs.StringVar(&opts.Email, "email", "", "Filter sessions by exact email")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum sessions to display (0 for unlimited)")

	if err := fs.Parse(args); err != nil {
		return sessionListOptions{}, err
	}
	return opts, nil
}

func parseSessionClearFlags(args []string) (sessionClearOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionClearOptions
	fs.StringVar(&opts.Email, "email", "", "Only clear sessions for this email")
	fs.BoolVar(&opts.All, "all", false, "Clear every session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return sessionClearOptions{}, err
	}
	if opts.Email == "" && !opts.All {
		return sessionClearOptions{}, errors.New("--email or --all is required")
	}
	return opts, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
