package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/punch/internal/storage"
)

var (
	loginEmail         string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (defaults to the last login or config)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e := loadEnv(ctx, false)

	email := firstNonEmpty(loginEmail, e.session.Email, e.cfg.Email)
	var password string

	switch {
	case loginPasswordStdin:
		p, err := readPassword(os.Stdin)
		if err != nil {
			exitWith(1, err)
		}
		password = p
	case isTerminal(os.Stdin):
		if err := promptCredentials(&email, &password); err != nil {
			exitWith(1, err)
		}
	default:
		exitWith(1, errors.New("no terminal for the password prompt; use --password-stdin"))
	}
	if email == "" {
		exitWith(1, errors.New("an email is required; pass --email"))
	}

	if ok, err := e.client.VersionMatches(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not check the server version: %v\n", err)
	} else if !ok {
		fmt.Fprintln(os.Stderr, "Warning: the server speaks a different API version; some commands may fail.")
	}

	sid, err := e.client.Authorize(ctx, email, password)
	if err != nil {
		exitWith(1, fmt.Errorf("login failed: %w", err))
	}
	if err := storage.SaveSession(e.base, storage.NewSession(email, sid, time.Now())); err != nil {
		exitWith(2, err)
	}
	forgetStatus(e.base)

	fmt.Printf("Logged in as %s.\n", email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e := loadEnv(cmd.Context(), false)
	if err := storage.ClearSession(e.base); err != nil {
		exitWith(2, err)
	}
	forgetStatus(e.base)
	fmt.Println("Logged out.")
	return nil
}

// forgetStatus drops a status cached for the previous session.
func forgetStatus(base string) {
	if err := (storage.StatusFile{Base: base}).ClearStatus(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// promptCredentials asks for the password, and the email when none is known.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(requireNonEmpty("email")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(password))

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false).Run()
}

func requireNonEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// readPassword reads the first line of r, without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password on stdin")
	}
	return line, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
