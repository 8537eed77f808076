package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punch/internal/api"
	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/render"
	"github.com/Tiliavir/punch/internal/timecalc"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in",
	Args:  cobra.NoArgs,
	RunE:  runIn,
}

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out",
	Args:  cobra.NoArgs,
	RunE:  runOut,
}

func runIn(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e := loadEnv(ctx, true)
	cache := e.statusCache()

	s, err := cache.Get(ctx)
	if err != nil {
		exitWith(2, err)
	}
	if s.ClockedIn() {
		fmt.Printf("Already clocked in since %s (%s).\n",
			timecalc.FormatTime(s.Since*1000), render.Elapsed(s.Since, time.Now()))
		return nil
	}

	if err := e.client.ClockIn(ctx); err != nil {
		exitWith(2, err)
	}
	s, err = refresh(ctx, cache)
	if err != nil {
		fmt.Println("Clocked in.")
		return nil
	}
	fmt.Printf("Clocked in at %s.\n", timecalc.FormatTime(s.Since*1000))
	return nil
}

func runOut(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e := loadEnv(ctx, true)
	cache := e.statusCache()

	s, err := cache.Get(ctx)
	if err != nil {
		exitWith(2, err)
	}
	if !s.ClockedIn() {
		exitWith(1, errors.New("not clocked in"))
	}
	worked := render.Elapsed(s.Since, time.Now())

	if err := e.client.ClockOut(ctx); err != nil {
		exitWith(2, err)
	}
	fmt.Printf("Clocked out after %s.\n", worked)
	if s, err = refresh(ctx, cache); err == nil {
		fmt.Print(e.out.Status(s, time.Now()))
	}
	return nil
}

// refresh drops the cached status and loads it again after a state change.
// A failure only loses the follow-up output, so it is reported as a warning.
func refresh(ctx context.Context, cache *api.StatusCache) (s model.Status, err error) {
	if err := cache.Invalidate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not drop the cached status: %v\n", err)
	}
	s, err = cache.Get(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not reload status: %v\n", err)
	}
	return s, err
}
