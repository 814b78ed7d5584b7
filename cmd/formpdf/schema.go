package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpdf"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the resolved form model as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := formpdf.FormModel(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(form)
		},
	}
}
