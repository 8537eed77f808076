package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are clocked in and your day and month balance",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e := loadEnv(cmd.Context(), true)
	s, err := e.statusCache().Get(cmd.Context())
	if err != nil {
		exitWith(2, err)
	}
	fmt.Print(e.out.Status(s, time.Now()))
	return nil
}
