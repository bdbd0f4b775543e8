package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hotspots",
		Short: "Rank priority zones and cluster complaints from a JSON snapshot",
	}

	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(clusterCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func rankCmd() *cobra.Command {
	var opts rankOptions

	cmd := &cobra.Command{
		Use:   "rank [snapshot.json|-]",
		Short: "Score grid zones and print the most urgent ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Top, "top", "n", 5, "number of zones to print")
	cmd.Flags().IntVar(&opts.Precision, "precision", 2, "decimal places used to form zones")
	cmd.Flags().StringVar(&opts.Now, "now", "", "evaluate ages as of this RFC3339 time instead of the current time")
	return cmd
}

func clusterCmd() *cobra.Command {
	var opts clusterOptions

	cmd := &cobra.Command{
		Use:   "cluster [snapshot.json|-]",
		Short: "Group nearby complaints into density-based clusters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.EpsKm, "eps-km", 0.5, "neighborhood radius in kilometers")
	cmd.Flags().IntVar(&opts.MinSamples, "min-samples", 2, "minimum neighborhood size, the point itself included")
	return cmd
}
