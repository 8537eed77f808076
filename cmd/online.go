package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var onlineList bool

var onlineCmd = &cobra.Command{
	Use:   "online",
	Short: "Show how many people are clocked in",
	Args:  cobra.NoArgs,
	RunE:  runOnline,
}

func init() {
	onlineCmd.Flags().BoolVar(&onlineList, "list", false, "List clocked-in users (admin only)")
}

func runOnline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e := loadEnv(ctx, true)

	if onlineList {
		users, err := e.client.OnlineUsers(ctx)
		if err != nil {
			exitWith(2, err)
		}
		fmt.Print(e.out.OnlineUsers(users, time.Now()))
		return nil
	}

	n, err := e.client.OnlineCount(ctx)
	if err != nil {
		exitWith(2, err)
	}
	if n == 1 {
		fmt.Println("1 person is clocked in right now.")
	} else {
		fmt.Printf("%d people are clocked in right now.\n", n)
	}
	return nil
}
