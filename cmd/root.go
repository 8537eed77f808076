package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootVerbose bool
	rootNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "punch",
	Short: "punch – clock in and out from the command line",
	Long: `punch talks to the time-and-attendance server: clock in and out, check
how far ahead or behind you are, and browse your work history by day.
Settings and the session token live in ~/.punch/ ($PUNCH_HOME).`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Trace API requests on stderr")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(onlineCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(versionCmd)
}
