package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/punch/internal/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the API version this client speaks and the server's",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	e := loadEnv(cmd.Context(), false)
	fmt.Printf("client API version: %d\n", api.Version)

	v, err := e.client.Version(cmd.Context())
	if err != nil {
		exitWith(2, err)
	}
	fmt.Printf("server API version: %d\n", v)
	if v != api.Version {
		fmt.Println("Versions differ; some commands may fail.")
	}
	return nil
}
