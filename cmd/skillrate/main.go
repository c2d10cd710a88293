// Command skillrate converts skill ratings between rating systems.
//
// Usage:
//
//	skillrate serve
//	skillrate convert --from elo --to ingo --rating 1000
//	skillrate convert --from ingo --to elo --rating 180 --age 30
//	skillrate defaults glicko2
//	skillrate systems
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/skillrate/pkg/logger"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "skillrate",
		Short:         "Convert skill ratings between Elo, Glicko, Glicko-2, DWZ, TrueSkill and Ingo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout carries only command output.
			if err := logger.InitWithOptions(logger.Options{Writer: cmd.ErrOrStderr()}); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return logger.SetLevelString(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(serveCmd())
	root.AddCommand(convertCmd())
	root.AddCommand(defaultsCmd())
	root.AddCommand(systemsCmd())
	return root
}

// execute runs the root command with args and prints any error to errOut.
func execute(args []string, out, errOut io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(errOut, "skillrate:", err)
	}
	return err
}
