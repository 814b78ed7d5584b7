package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpdf"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		in     string
		fields recordFlags
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a record and print the result as JSON",
		Long:  "Validate a record and print the result as JSON. Exits non-zero when the record is invalid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.readRecord(in)
			if err != nil {
				return err
			}
			rec = fields.apply(cmd, rec)

			result, err := formpdf.Validate(cmd.Context(), rec)
			if err != nil {
				return err
			}
			if err := a.printJSON(result); err != nil {
				return err
			}
			if !result.Valid {
				return errors.New("record is invalid")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", `JSON record file ("-" for stdin)`)
	fields.register(cmd)
	return cmd
}
