// Package cmd — shared Moodle session setup for the remote commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/coursebuild/core/fetch"
	"github.com/gaurav-prasanna/coursebuild/core/moodle"
	"github.com/spf13/cobra"
)

// Credential flag variables. Empty values fall back to the environment.
var (
	flagUsername string
	flagPassword string
)

const (
	envUsername = "MOODLE_USERNAME"
	envPassword = "MOODLE_PASSWORD"
)

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagUsername, "username", "", "Moodle username (default: $"+envUsername+")")
	cmd.Flags().StringVar(&flagPassword, "password", "", "Moodle password (default: $"+envPassword+")")
}

func credentials() (string, string, error) {
	username, password := flagUsername, flagPassword
	if username == "" {
		username = os.Getenv(envUsername)
	}
	if password == "" {
		password = os.Getenv(envPassword)
	}
	if username == "" || password == "" {
		return "", "", fmt.Errorf("moodle credentials required: use --username/--password or $%s/$%s", envUsername, envPassword)
	}
	return username, password, nil
}

// courseID returns the positional course id, or the configured default.
func courseID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Moodle.DefaultCourseID != "" {
		return cfg.Moodle.DefaultCourseID, nil
	}
	return "", fmt.Errorf("course id required (argument or moodle.default_course_id)")
}

// loginClient opens a session and logs in. A rejected login aborts the
// command.
func loginClient(ctx context.Context) (*moodle.Client, error) {
	username, password, err := credentials()
	if err != nil {
		return nil, err
	}

	session, err := fetch.New(fetch.Options{
		Timeout:           cfg.Moodle.Timeout(),
		UserAgent:         cfg.Moodle.UserAgent,
		RequestsPerSecond: cfg.Moodle.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}
	client, err := moodle.NewClient(cfg.Moodle.BaseURL, session, log)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stdout, "Logging in to %s...\n", cfg.Moodle.BaseURL)
	if err := client.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return client, nil
}
