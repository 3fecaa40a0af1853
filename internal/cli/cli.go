package cli

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskterm/internal/app"
	"taskterm/internal/config"
	"taskterm/internal/export"
	"taskterm/internal/logging"
	"taskterm/internal/storage"
	"taskterm/internal/ui"
)

// Version is set at build time.
var Version = "dev"

type options struct {
	configPath string
	dbPath     string
	memory     bool
	debug      bool
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A keyboard-driven terminal task manager",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := setup(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			order, err := storage.ParseSortOrder(sess.cfg.DefaultSort)
			if err != nil {
				sess.logger.WithError(err).Warn("ignoring default_sort")
			}
			sess.logger.WithFields(log.Fields{"db": sess.cfg.DBPath, "memory": opts.memory}).Info("starting")
			state := app.NewState(sess.store, order)
			return ui.Run(state, app.NewDispatcher(sess.logger), sess.cfg)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.ResolveConfigPath(), "path to config.toml")
	flags.StringVar(&opts.dbPath, "db", "", "database path (overrides db_path)")
	flags.BoolVar(&opts.memory, "memory", false, "use a transient in-memory database")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newExportCommand(opts), newClearCommand(opts))
	return cmd
}

func newExportCommand(opts *options) *cobra.Command {
	var format, output, sortFlag string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as json, csv, yaml or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := storage.ParseSortOrder(sortFlag)
			if err != nil {
				return err
			}
			sess, err := setup(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			data, err := export.NewExporter(sess.store).Export(format, order)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			sess.logger.WithFields(log.Fields{"format": format, "output": output}).Info("exported tasks")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", fmt.Sprintf("output format %v", export.Formats))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&sortFlag, "sort", "none", "none, priority-desc or priority-asc")
	return cmd
}

func newClearCommand(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear tasks without --yes")
			}
			sess, err := setup(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			total, err := sess.store.Count()
			if err != nil {
				return err
			}
			removed, err := sess.store.Clear()
			if err != nil {
				return err
			}
			sess.logger.WithField("removed", removed).Info("cleared tasks")
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d of %d tasks\n", removed, total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

type session struct {
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger
	logs   io.Closer
}

func (s *session) Close() {
	s.store.Close()
	s.logs.Close()
}

func setup(opts *options) (*session, error) {
	cfg, err := config.LoadOrCreate(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch {
	case opts.memory:
		cfg.DBPath = ""
	case opts.dbPath != "":
		cfg.DBPath = opts.dbPath
	}

	logger, logs, err := logging.New(cfg.LogPath, cfg.LogLevel, opts.debug)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &session{cfg: cfg, store: store, logger: logger, logs: logs}, nil
}
