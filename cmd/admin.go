package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punch/internal/api"
)

// adminTimeLayout is the local wall-clock form accepted by --from and --to.
const adminTimeLayout = "2006-01-02 15:04"

var (
	adminFrom string
	adminTo   string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative entry maintenance",
}

var adminEditCmd = &cobra.Command{
	Use:   "edit <eid>",
	Short: "Change the start and end of an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminEdit,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <eid>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDelete,
}

func init() {
	adminEditCmd.Flags().StringVar(&adminFrom, "from", "", `New start: epoch seconds or "YYYY-MM-DD HH:MM" local time`)
	adminEditCmd.Flags().StringVar(&adminTo, "to", "", `New end: epoch seconds or "YYYY-MM-DD HH:MM" local time`)
	_ = adminEditCmd.MarkFlagRequired("from")
	_ = adminEditCmd.MarkFlagRequired("to")

	adminCmd.AddCommand(adminEditCmd)
	adminCmd.AddCommand(adminDeleteCmd)
}

func runAdminEdit(cmd *cobra.Command, args []string) error {
	eid, err := parseEntryID(args[0])
	if err != nil {
		exitWith(1, err)
	}
	from, err := parseInstant(adminFrom)
	if err != nil {
		exitWith(1, fmt.Errorf("--from: %w", err))
	}
	to, err := parseInstant(adminTo)
	if err != nil {
		exitWith(1, fmt.Errorf("--to: %w", err))
	}

	e := loadEnv(cmd.Context(), true)
	if err := e.client.EditEntry(cmd.Context(), eid, from, to); err != nil {
		if errors.Is(err, api.ErrInvalidRange) {
			exitWith(1, err)
		}
		exitWith(2, err)
	}
	fmt.Printf("Entry %d updated.\n", eid)
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	eid, err := parseEntryID(args[0])
	if err != nil {
		exitWith(1, err)
	}

	e := loadEnv(cmd.Context(), true)
	if err := e.client.DeleteEntry(cmd.Context(), eid); err != nil {
		exitWith(2, err)
	}
	fmt.Printf("Entry %d deleted.\n", eid)
	return nil
}

func parseEntryID(s string) (int64, error) {
	eid, err := strconv.ParseInt(s, 10, 64)
	if err != nil || eid <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return eid, nil
}

// parseInstant accepts epoch seconds or a local "YYYY-MM-DD HH:MM" time and
// returns epoch seconds.
func parseInstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty time")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.ParseInLocation(adminTimeLayout, s, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want epoch seconds or %q)", s, adminTimeLayout)
	}
	return t.Unix(), nil
}
