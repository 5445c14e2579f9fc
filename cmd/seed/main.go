package main

import (
	"fmt"
	"os"
	"stepsurvey/internal/catalog"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare question catalog files for the survey server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCatalogCmd(), newValidateCmd())
	return root
}

func newCatalogCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Write the built-in catalog as YAML (use with SURVEY_CATALOG_PATH)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := catalog.Marshal(catalog.Default())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d questions to %s\n", catalog.Default().Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Check a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d questions\n", args[0], c.Len())
			return nil
		},
	}
}
