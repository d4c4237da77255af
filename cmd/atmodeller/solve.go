package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixlaga/atmodeller/internal/cli"
	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
	"github.com/felixlaga/atmodeller/pkg/adapters/redis"
	"github.com/felixlaga/atmodeller/pkg/ports"
)

var solveCmd = &cobra.Command{
	Use:   "solve <case-file>",
	Short: "Solve an equilibrium case from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		req, err := cli.LoadCase(args[0])
		if err != nil {
			return err
		}

		var store ports.SolutionStore
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			store = redis.New(addr)
		}

		cli.Statusf("solving %s (%d species)", args[0], len(req.Species))
		resp, err := httpapi.RunCaseWithStore(cmd.Context(), logger, store, req)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		if err := cli.WriteReport(os.Stdout, resp); err != nil {
			return err
		}

		for i, m := range resp.Metadata {
			if !m.Converged {
				return fmt.Errorf("instance %d did not converge (residual %.3g)", i, m.ResidualNorm)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Bool("json", false, "Emit the raw JSON response instead of a report")
	solveCmd.Flags().String("redis", "", "Redis address for the solution cache (empty disables caching)")
}
