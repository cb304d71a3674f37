package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch and validate profile catalogs",
}

var catalogFetchCmd = &cobra.Command{
	Use:   "fetch <usb|bluetooth|dmi>",
	Short: "Fetch a domain's catalog and refresh the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := catalog.ParseDomain(args[0])
		if err != nil {
			return err
		}
		cat, err := source.Fetch(cmd.Context(), domain)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog %q: %d profile(s).\n", domain, len(cat.Profiles))
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog document against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := catalog.ValidateFilePath(args[0])
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := catalog.ValidateDocument(raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid catalog document.\n", path)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogFetchCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}
