package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/achint227/Resume-Generator/internal/generator"
	"github.com/achint227/Resume-Generator/internal/schemas"
)

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the LaTeX source of a résumé",
	Long:  "Renders a stored résumé (--id) or a JSON document on disk (--file) without compiling it. A file is never persisted.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.ID, "id", "", "Stored résumé id")
	renderCmd.Flags().StringVarP(&renderOpts.File, "file", "f", "", "Path to a résumé JSON document")
	renderCmd.Flags().StringVarP(&renderOpts.Template, "template", "t", "classic", "Template id")
	renderCmd.Flags().StringVarP(&renderOpts.Order, "order", "o", "pwe", "Section order: a permutation of p, w and e")
	renderCmd.Flags().StringVar(&renderOpts.Out, "out", "", "Write the source to this file instead of stdout")
	renderCmd.MarkFlagsMutuallyExclusive("id", "file")
	renderCmd.MarkFlagsOneRequired("id", "file")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if err := checkOptions(renderOpts); err != nil {
		return err
	}

	var (
		markup string
		err    error
	)
	if renderOpts.File != "" {
		markup, err = renderFile(renderOpts)
	} else {
		markup, err = renderStored(cmd.Context(), renderOpts)
	}
	if err != nil {
		return err
	}

	if renderOpts.Out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), markup)
		return err
	}
	if err := os.WriteFile(renderOpts.Out, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOpts.Out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", renderOpts.Out)
	return nil
}

func renderFile(opts renderOptions) (string, error) {
	doc, err := schemas.DecodeResumeFile(opts.File)
	if err != nil {
		return "", err
	}
	return generator.RenderMarkup(doc, opts.Template, opts.Order, nil)
}

func renderStored(ctx context.Context, opts renderOptions) (string, error) {
	a, err := bootstrap(ctx, true)
	if err != nil {
		return "", err
	}
	defer a.Close()
	return a.gen.BuildMarkup(ctx, opts.ID, opts.Template, opts.Order)
}
