package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf"
	"github.com/goliatone/go-formpdf/pkg/contact"
)

type recordFlags struct {
	name, email, phone, position, description string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.position, "position", "", "position (optional)")
	cmd.Flags().StringVar(&f.description, "description", "", "description (optional)")
}

// apply overrides rec with the flags that were set explicitly.
func (f *recordFlags) apply(cmd *cobra.Command, rec contact.Record) contact.Record {
	set := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}
	set("name", &rec.Name, f.name)
	set("email", &rec.Email, f.email)
	set("phone", &rec.Phone, f.phone)
	set("position", &rec.Position, f.position)
	set("description", &rec.Description, f.description)
	return rec
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		in, out, engine string
		fields          recordFlags
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Validate a record and export it as PDF",
		Example: `  formpdf render --name "John Doe" --email johndoe@gmail.com --phone "(220) 222-20002"
  formpdf render --in record.json --out details.pdf --engine chrome`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.readRecord(in)
			if err != nil {
				return err
			}
			rec = fields.apply(cmd, rec)
			if rec.IsZero() {
				return errors.New("no record given: pass --in or the field flags")
			}

			var buf bytes.Buffer
			err = formpdf.Export(cmd.Context(), &buf, rec, a.exportOptions(engine))
			var verr *formpdf.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Result.Issues {
					fmt.Fprintf(a.stderr, "%s: %s\n", issue.Field, issue.Message)
				}
				return errors.New("record is invalid")
			}
			if err != nil {
				a.logger.Error("error generating PDF", zap.Error(err))
				return err
			}
			if err := a.writeOutput(out, buf.Bytes()); err != nil {
				return err
			}
			a.logger.Debug("pdf written", zap.String("path", out), zap.Int("bytes", buf.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", `JSON record file ("-" for stdin)`)
	cmd.Flags().StringVarP(&out, "out", "o", contact.Filename, `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&engine, "engine", "", "pdf engine: native or chrome (overrides pdf.engine)")
	fields.register(cmd)
	return cmd
}
