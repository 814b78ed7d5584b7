package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf"
	"github.com/goliatone/go-formpdf/internal/config"
	"github.com/goliatone/go-formpdf/internal/logging"
	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/renderers/tui"
)

const defaultConfigPath = "formpdf.yaml"

// app carries the state shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// driver overrides the survey prompt driver.
	driver tui.PromptDriver
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formpdf",
		Short: "Collect contact details and export them as PDF",
		Long: `formpdf collects a name, email, phone number and optional position and
description, previews them and exports them as a simply formatted PDF.

Run "formpdf serve" for the browser screens or "formpdf prompt" for the
terminal flow.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log, a.verbose)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "path to the YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newValidateCmd(a),
		newPromptCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) exportOptions(engine string) formpdf.ExportOptions {
	if engine == "" {
		engine = a.cfg.PDF.Engine
	}
	return formpdf.ExportOptions{
		Engine:          engine,
		WrapColumns:     a.cfg.PDF.WrapColumns,
		ChromePath:      a.cfg.PDF.Chrome.Path,
		ChromeDownload:  a.cfg.PDF.Chrome.Download,
		ChromeNoSandbox: a.cfg.PDF.Chrome.NoSandbox,
		ChromeTimeout:   a.cfg.ChromeTimeout(),
	}
}

// readRecord decodes a JSON record from path, or from stdin when path is
// "-". An empty path yields an empty record.
func (a *app) readRecord(path string) (contact.Record, error) {
	var rec contact.Record
	var r io.Reader
	switch strings.TrimSpace(path) {
	case "":
		return rec, nil
	case "-":
		r = a.stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return rec, fmt.Errorf("open record: %w", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *app) printJSON(value any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
