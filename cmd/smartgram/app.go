package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"smartgram/internal/blob"
	"smartgram/internal/config"
	"smartgram/internal/core"
	"smartgram/internal/intake"
	"smartgram/internal/logging"
	"smartgram/internal/metrics"
)

const blobInputPrefix = "blob:"

// app carries state shared by subcommands for a single invocation.
type app struct {
	stdout, stderr io.Writer

	configPath string
	dsn        string
	reportKey  string

	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
	store   blob.Store
	svc     *core.Service
	closers []func() error
}

// setup loads configuration and builds the logger, recorder and service.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dsn != "" {
		cfg.Source.DSN = a.dsn
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.Log)
	a.metrics = metrics.New()
	a.svc = core.NewService(
		core.WithLogger(a.logger),
		core.WithMetrics(a.metrics),
		core.WithThresholds(cfg.Budget.UnderThreshold, cfg.Budget.OverThreshold),
	)
	return nil
}

// blobStore opens the configured store on first use.
func (a *app) blobStore(ctx context.Context) (blob.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := blob.Open(ctx, a.cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	a.store = store
	return store, nil
}

// teardown exports metrics and releases sources.
func (a *app) teardown() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	if a.metrics != nil && a.cfg != nil {
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// source resolves where records come from. A configured DSN wins over
// --input; "blob:KEY" reads from the configured store; anything else is a
// local file.
func (a *app) source(ctx context.Context, input string) (intake.Source, error) {
	if a.cfg.Source.DSN != "" {
		src, err := intake.OpenSQL(ctx, a.cfg.Source.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, src.Close)
		return src, nil
	}
	if input == "" {
		return nil, fmt.Errorf("--input is required without --db")
	}
	if key, ok := strings.CutPrefix(input, blobInputPrefix); ok {
		store, err := a.blobStore(ctx)
		if err != nil {
			return nil, err
		}
		return intake.NewDocumentSource(store, key), nil
	}
	return intake.NewFileSource(input), nil
}

// emit writes a report to stdout and, with --report-key, saves a copy to the
// configured store.
func (a *app) emit(ctx context.Context, render func(io.Writer) error) error {
	var saved bytes.Buffer
	w := a.stdout
	if a.reportKey != "" {
		w = io.MultiWriter(a.stdout, &saved)
	}
	if err := render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if a.reportKey == "" {
		return nil
	}
	store, err := a.blobStore(ctx)
	if err != nil {
		return err
	}
	info, err := store.Put(ctx, a.reportKey, &saved, blob.PutOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	a.logger.Info("report saved", "key", info.Key, "driver", string(store.Driver()), "bytes", info.Size)
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartgram",
		Short:         "Gram panchayat governance assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.dsn, "db", "", "read records from a database (sqlite:PATH, file:PATH, postgres://...)")
	root.PersistentFlags().StringVar(&a.reportKey, "report-key", "", "also save the report under this key in the configured store")

	root.AddCommand(
		newRegisterCmd(a),
		newServiceCmd(a),
		newBudgetCmd(a),
		newSchemesCmd(a),
		newMeetingsCmd(a),
	)
	return root
}
