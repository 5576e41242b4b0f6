package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/tagdesk/tagdesk-server/internal/config"
	"github.com/tagdesk/tagdesk-server/internal/di"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/service"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var validOutputFormats = []string{outputTable, outputJSON, outputYAML}

// app holds the persistent flag values shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dataPath     string
	storeBackend string
	logLevel     string
	envFile      string
	output       string
}

// session is an opened store plus the services built on it.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	tags     *service.TagService
	exporter *export.Exporter
	count    int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "tagctl",
		Short:         "Manage the TagDesk tag store",
		Long:          "List, create and export tags in the local TagDesk store, or serve them to MCP clients.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !slices.Contains(validOutputFormats, a.output) {
				return fmt.Errorf("invalid output format: %s (valid: %s)", a.output, strings.Join(validOutputFormats, ", "))
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.dataPath, "data-path", "", "Base path for tag data (env DATA_PATH)")
	pf.StringVar(&a.storeBackend, "store-backend", "", "Tag store backend: badger or sqlite (env STORE_BACKEND)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level for stderr (default warn)")
	pf.StringVar(&a.envFile, "env-file", ".env", "Path to .env file")
	pf.StringVarP(&a.output, "output", "o", outputTable, "Output format: table, json, yaml")

	root.AddCommand(
		newListCmd(a),
		newCreateCmd(a),
		newSlugCmd(a),
		newSeedCmd(a),
		newExportCmd(a),
		newMCPCmd(a),
	)

	return root
}

// loadConfig feeds the persistent flags through config.Load so the CLI shares
// the server's precedence of flags, environment, .env file and defaults.
func (a *app) loadConfig(extra ...string) (*config.Config, error) {
	args := []string{"-env-file", a.envFile}
	if a.dataPath != "" {
		args = append(args, "-data-path", a.dataPath)
	}
	if a.storeBackend != "" {
		args = append(args, "-store-backend", a.storeBackend)
	}
	switch {
	case a.logLevel != "":
		args = append(args, "-log-level", a.logLevel)
	case os.Getenv("LOG_LEVEL") == "":
		args = append(args, "-log-level", "warn")
	}
	args = append(args, extra...)

	fs := flag.NewFlagSet("tagctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return config.Load(fs, args)
}

// withSession opens the store, runs fn and shuts everything down again.
// extra holds additional config flags such as -seed-count.
func (a *app) withSession(fn func(*session) error, extra ...string) (err error) {
	cfg, err := a.loadConfig(extra...)
	if err != nil {
		return err
	}
	log := logger.ForEnvironment(a.stderr, cfg.App.Environment, cfg.Logger.Level)

	injector := di.NewCLIContainer(cfg, log)
	defer func() {
		report := injector.Shutdown()
		if report == nil {
			return
		}
		for svc, shutdownErr := range report.Errors {
			log.WithError(shutdownErr).WithField("service", svc.Service).Error("Shutdown failed")
			if err == nil {
				err = shutdownErr
			}
		}
	}()

	tags, err := do.Invoke[*service.TagService](injector)
	if err != nil {
		return err
	}
	exporter, err := do.Invoke[*export.Exporter](injector)
	if err != nil {
		return err
	}
	all, err := tags.All(context.Background())
	if err != nil {
		return err
	}

	return fn(&session{cfg: cfg, log: log, tags: tags, exporter: exporter, count: len(all)})
}

// formatError renders domain errors as "CODE: message" with any details.
func formatError(err error) string {
	var de *domainerrors.Error
	if !errors.As(err, &de) {
		return err.Error()
	}
	msg := fmt.Sprintf("%s: %s", de.Code, de.Error())
	if de.Details != nil {
		msg += fmt.Sprintf(" %v", de.Details)
	}
	return msg
}
