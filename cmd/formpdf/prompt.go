package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf"
	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form in the terminal and export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefill, err := a.readRecord(in)
			if err != nil {
				return err
			}
			form, err := formpdf.FormModel(cmd.Context())
			if err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(a.stdout)
			}
			renderer, err := tui.New(tui.WithPromptDriver(driver))
			if err != nil {
				return err
			}

			rec, download, err := renderer.Run(cmd.Context(), form, prefill)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(a.stderr, "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			if !download {
				return nil
			}

			var buf bytes.Buffer
			if err := formpdf.Export(cmd.Context(), &buf, rec, a.exportOptions("")); err != nil {
				a.logger.Error("error generating PDF", zap.Error(err))
				return err
			}
			if err := a.writeOutput(out, buf.Bytes()); err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(a.stdout, "Saved %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "JSON record used to prefill the answers")
	cmd.Flags().StringVarP(&out, "out", "o", contact.Filename, `output file ("-" for stdout)`)
	return cmd
}
