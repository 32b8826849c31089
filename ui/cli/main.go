// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command: flags, configuration, logging and the
// key registry every subcommand works on.

package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/keyman/buildvars"
	"github.com/toeirei/keyman/internal/config"
	"github.com/toeirei/keyman/internal/i18n"
	"github.com/toeirei/keyman/internal/logging"
	"github.com/toeirei/keyman/internal/platform"
	"github.com/toeirei/keyman/internal/store"
)

var version = "dev" // this will be set by the linker

// BinName is how usage hints refer to the executable.
const BinName = "keyman"

// newFilesystem returns the filesystem the registry works on. Tests swap it.
var newFilesystem = func() platform.Filesystem { return platform.OS{} }

// app carries state shared by the commands of one root command instance.
type app struct {
	cfgFile  string
	verbose  bool
	cfg      config.Config
	registry *store.Registry
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.verbose {
		logging.SetDebug(true)
	}

	var cfgPath *string
	if cmd.Flags().Changed("config") && a.cfgFile != "" {
		if _, err := os.Stat(a.cfgFile); err != nil {
			return fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		cfgPath = &a.cfgFile
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), cfgPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the defaults so there is a file to edit.
		defaults := config.DefaultConfig()
		if writeErr := config.WriteConfigFile(&defaults, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return newUserError(i18n.T("error.config_failed", err), err)
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if !slices.Contains(i18n.Locales(), cfg.Language) {
		return newUserError(i18n.T("error.unknown_language", cfg.Language, languageChoices()), nil)
	}
	a.cfg = cfg
	i18n.Init(cfg.Language)

	home := cfg.Home
	if home == "" {
		home = platform.HomeDir()
	}
	layout := platform.NewLayout(home, cfg.AppName, cfg.LinkName)
	logging.Debugf("using %s (link %s)", layout.AppDir, layout.LinkPath)

	reg, err := store.Load(layout, newFilesystem())
	if err != nil {
		return newUserError(i18n.T("error.load_failed", err), err)
	}
	a.registry = reg
	return nil
}

// save commits the registry and reports failures as one user-facing line.
func (a *app) save() error {
	path, err := a.registry.Save()
	if err != nil {
		return newUserError(i18n.T("error.save_failed", err), err)
	}
	logging.Debugf("saved registry to %s", path)
	return nil
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   BinName,
		Short: "SSH Key Manager for easily swapping your SSH keys around",
		Long: `keyman keeps copies of your SSH private keys under ~/.keyman and
switches between them by pointing ~/.ssh/id_rsa at the key you pick.

Running without a subcommand prints this help.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.Version = buildvars.VersionOrDefault(version)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("home", "", "Home directory to manage keys in (defaults to $HOME)")
	cmd.PersistentFlags().String("link-name", platform.DefaultLinkName, "File name in ~/.ssh that points at the active key")
	cmd.PersistentFlags().String("language", "en", "Message language, one of: "+languageChoices())
	cmd.Flags().BoolP("version", "V", false, "Print version and exit")

	cmd.AddCommand(
		newAddCmd(a),
		newUseCmd(a),
		newInfoCmd(a),
		newRenameCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
	)
	return cmd
}

// languageChoices lists the embedded locales with their own names, such as
// "de (Deutsch), en (English)".
func languageChoices() string {
	names := i18n.GetAvailableLocales()
	choices := make([]string, 0, len(names))
	for _, tag := range i18n.Locales() {
		choices = append(choices, fmt.Sprintf("%s (%s)", tag, names[tag]))
	}
	return strings.Join(choices, ", ")
}

// Execute runs the CLI entrypoint. Errors are printed here as a single line;
// the caller only decides the exit code.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}
