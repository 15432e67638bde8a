// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-toolkit CLI.
// Each document operation is a subcommand: split, merge, compress, convert,
// edit, sign and info. history reads the optional operation journal.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/journal"
	"github.com/pdiddy/pdf-toolkit/internal/pdfengine"
	"github.com/pdiddy/pdf-toolkit/internal/secrets"
	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log carries diagnostics to stderr. --verbose turns on debug output.
var log = logrus.New()

// errReported marks a failure whose message was already printed.
var errReported = errors.New("operation failed")

// rootCmd is the base command for the pdf-toolkit CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-toolkit",
	Short: "Split, merge, compress, convert, edit and sign PDF files",
	Long: `pdf-toolkit bundles everyday PDF chores behind one command. Each
operation is a subcommand that takes file paths as arguments and writes its
results into --output-dir.

Passwords for encrypted inputs are read from the secrets directory
(pdf-user-password, pdf-owner-password). Set journal.path in the config file
or pass --journal to keep a history of every operation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-toolkit.yaml or ~/.config/pdf-toolkit/pdf-toolkit.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log library calls to stderr")
	rootCmd.PersistentFlags().StringP("output-dir", "o", ".", "directory for written files")
	rootCmd.PersistentFlags().String("journal", "", "SQLite file recording every operation (empty disables)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory holding password files for encrypted inputs")

	bindFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	bindFlag("journal.path", rootCmd.PersistentFlags().Lookup("journal"))
	bindFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

// bindFlag lets a flag override the config key when it is set.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-toolkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-toolkit"))
		}
	}

	viper.SetEnvPrefix("PDF_TOOLKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged config file, environment and flags.
func loadConfig() (types.ToolkitConfig, error) {
	var cfg types.ToolkitConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.ToolkitConfig{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// openToolkit builds a Toolkit from the configuration. The returned close
// function releases the journal, if one was opened.
func openToolkit() (*toolkit.Toolkit, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	user, owner, err := secrets.Passwords(cfg.SecretsDir, log)
	if err != nil {
		return nil, nil, err
	}
	if user != "" || owner != "" {
		log.WithField("dir", cfg.SecretsDir).Debug("loaded PDF passwords")
	}
	engine := pdfengine.New(pdfengine.Options{UserPassword: user, OwnerPassword: owner, Logger: log})

	closeFn := func() {}
	var store *journal.Store
	if cfg.Journal.Path != "" {
		store, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { store.Close() }
	}

	tk, err := toolkit.New(toolkit.Options{
		Config:  cfg,
		Engine:  engine,
		Journal: store,
		Logger:  log,
		Status:  os.Stdout,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return tk, closeFn, nil
}

// withToolkit opens a Toolkit, runs fn and reports its Result.
func withToolkit(fn func(tk *toolkit.Toolkit) types.Result) error {
	tk, closeFn, err := openToolkit()
	if err != nil {
		return err
	}
	defer closeFn()
	return report(fn(tk))
}

// report prints a Result the way every subcommand does and turns a failed
// Result into errReported.
func report(res types.Result) error {
	if res.OK {
		fmt.Fprintln(os.Stdout, "SUCCESS:", res.Message)
		return nil
	}
	fmt.Fprintln(os.Stderr, "ERROR:", res.Message)
	return errReported
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
