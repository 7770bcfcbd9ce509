package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/schemas"
)

var loadFile string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate a résumé JSON document and store it",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "Path to a résumé JSON document (required)")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	doc, err := schemas.DecodeResumeFile(loadFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.backends.Resumes.Create(ctx, doc)
	if err != nil {
		return err
	}
	a.logger.Info("resume loaded", zap.String("resume_id", id), zap.String("file", loadFile))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}
