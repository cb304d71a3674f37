package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/config"
	"github.com/hwdb-project/hwdbctl/pkg/hwd"
	"github.com/hwdb-project/hwdbctl/pkg/i18n"
	"github.com/hwdb-project/hwdbctl/pkg/output"
	"github.com/hwdb-project/hwdbctl/pkg/runner"
)

// CatalogSource retrieves the parsed profile catalog for a domain.
type CatalogSource interface {
	Fetch(ctx context.Context, domain catalog.Domain) (*catalog.Catalog, error)
}

// ProfileRunner drives profile status checks and install/uninstall
// execution, and runs privileged device-action commands.
type ProfileRunner interface {
	Status(p *catalog.Profile) bool
	Install(p *catalog.Profile) (runner.Outcome, error)
	Uninstall(p *catalog.Profile) (runner.Outcome, error)
	Run(name string, args ...string) error
}

var (
	// Global flags
	cfgFile      string
	outputFormat string
	localeFlag   string
	verbose      bool
	yesFlag      bool // --yes: skip confirmation prompts for destructive operations
	allFlag      bool // --all: include veiled profiles in listings
	dryRun       bool // --dry-run: print what install/uninstall would execute

	// Shared state set during PersistentPreRunE. Tests inject doubles via
	// the Set* hooks before executing commands.
	cfg       *config.Config
	tr        *i18n.Table
	logger    *slog.Logger
	source    CatalogSource
	enum      hwd.Enumerator
	prun      ProfileRunner
	control   *hwd.Control
	formatter output.Formatter
)

// rootCmd is the base command for hwdbctl.
var rootCmd = &cobra.Command{
	Use:   "hwdbctl",
	Short: "Hardware profile database CLI — match and install driver profiles for USB, Bluetooth, and DMI devices",
	Long: `hwdbctl identifies the hardware devices on this machine and resolves which
driver/software profiles from the hwdb catalogs apply to each of them.
Matching profiles can be installed, checked, and removed; USB and Bluetooth
devices can additionally be started, stopped, enabled, disabled, paired, and
trusted through the platform tooling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		tr, err = i18n.Load(i18n.Detect(firstNonEmpty(localeFlag, cfg.Locale)))
		if err != nil {
			return fmt.Errorf("failed to load locale data: %w", err)
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if source == nil {
			urls := map[catalog.Domain]string{}
			for name, url := range cfg.CatalogURLs {
				domain, err := catalog.ParseDomain(name)
				if err != nil {
					return fmt.Errorf("config catalog_urls: %w", err)
				}
				urls[domain] = url
			}
			source = catalog.NewFetcher(urls, &catalog.Cache{Dir: cfg.CacheDir}, logger, catalog.ParseOptions{
				Locale:         tr.Locale(),
				UnknownLicense: tr.T("unknown"),
			})
		}
		if enum == nil {
			enum = &hwd.SysfsEnumerator{Root: cfg.SysfsRoot}
		}
		if prun == nil {
			prun = runner.New(cfg.CacheDir, cfg.PackageManager.Install, cfg.PackageManager.Remove, logger)
		}
		control = &hwd.Control{Runner: prun, Helper: cfg.PrivilegeHelper}
		if formatter == nil || outputFormat != "" {
			formatter = output.NewFormatter(outputFormat)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetCatalogSource allows tests to inject a catalog source.
func SetCatalogSource(s CatalogSource) { source = s }

// SetEnumerator allows tests to inject a device enumerator.
func SetEnumerator(e hwd.Enumerator) { enum = e }

// SetRunner allows tests to inject a profile runner.
func SetRunner(r ProfileRunner) { prun = r }

// SetFormatter allows tests to inject a formatter.
func SetFormatter(f output.Formatter) { formatter = f }

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hwdb/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "override locale auto-detection (e.g. \"ru\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&yesFlag, "yes", false, "skip confirmation prompts for destructive operations")
	rootCmd.PersistentFlags().BoolVar(&allFlag, "all", false, "include veiled profiles in listings")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print what install/uninstall would execute without running it")
}
