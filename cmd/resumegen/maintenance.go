package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/achint227/Resume-Generator/internal/rendering"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the storage schema",
	Long:  "Applies the schema for the configured résumé and cache backends. Running it again is a no-op.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.backends.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", a.backends.Kind)
		return err
	},
}

var cacheClearID string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the PDF cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached PDF entries",
	Long:  "Drops the cache entries of one résumé (--id) or of every résumé. Files already written are left in place.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.gen.ClearCache(ctx, cacheClearID); err != nil {
			return err
		}
		scope := "all résumés"
		if cacheClearID != "" {
			scope = "résumé " + cacheClearID
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "cache cleared for %s\n", scope)
		return err
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, t := range rendering.Templates() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
		}
		return w.Flush()
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheClearID, "id", "", "Only clear entries of this résumé")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(migrateCmd, cacheCmd, templatesCmd)
}
