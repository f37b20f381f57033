package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/emblem/internal/config"
	"github.com/zjrosen/emblem/internal/log"
	"github.com/zjrosen/emblem/internal/registry"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "emblem",
	Short: "Decorate markdown documents with badges, glyphs and styled text",
	Long: `Emblem expands {{...}} tags in markdown documents into badges, glyphs,
frames and Unicode-styled text, rendered either as shields.io URLs or as
deterministic local SVG files.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .emblem/config.yaml, then ~/.config/emblem/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging to emblem-debug.log")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("render.target", defaults.Render.Target)
	viper.SetDefault("render.backend", defaults.Render.Backend)
	viper.SetDefault("render.assets_dir", defaults.Render.AssetsDir)
	viper.SetDefault("strict", defaults.Strict)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .emblem/config.yaml (current directory)
		// 2. ~/.config/emblem/config.yaml (user config)
		if _, err := os.Stat(".emblem/config.yaml"); err == nil {
			viper.SetConfigFile(".emblem/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "emblem"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: seed a commented config in the working directory so
			// there is something to edit.
			path := filepath.Join(".emblem", "config.yaml")
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				viper.SetConfigFile(path)
				_ = viper.ReadInConfig()
			}
		} else if cfgFile != "" {
			printError("reading config: " + err.Error())
			os.Exit(1)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if err := config.Validate(cfg); err != nil {
		printError("invalid configuration: " + err.Error())
		os.Exit(1)
	}
}

func initLogging() {
	if !debug && os.Getenv("EMBLEM_DEBUG") == "" {
		return
	}
	if _, err := log.Init("emblem-debug.log"); err == nil {
		log.SetEnabled(true)
		log.Debug(log.CatConfig, "Debug logging enabled", "config", viper.ConfigFileUsed())
	}
}

// Execute runs the root command and maps error classes to exit codes:
// 1 for document or usage failures, 2 when the registry itself is broken.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())

		if errors.Is(err, registry.ErrLoad) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
