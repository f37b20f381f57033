package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/emblem/internal/config"
)

var (
	setTarget    string
	setBackend   string
	setAssetsDir string
)

var configSetCmd = &cobra.Command{
	Use:   "config:set",
	Short: "Persist rendering defaults to the config file",
	Long: `Update the render section of the config file. Only the given flags
change; other sections and their comments are left intact.

Examples:
  # Default to local SVG rendering for this project
  emblem config:set --target local --assets-dir img

  # Force the shields backend everywhere
  emblem config:set --backend shields`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc := cfg.Render
		if cmd.Flags().Changed("target") {
			rc.Target = setTarget
		}
		if cmd.Flags().Changed("backend") {
			rc.Backend = setBackend
		}
		if cmd.Flags().Changed("assets-dir") {
			rc.AssetsDir = setAssetsDir
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			path = filepath.Join(".emblem", "config.yaml")
		}
		if err := saveRenderDefaults(path, rc); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", path)
		return nil
	},
}

// saveRenderDefaults validates the merged defaults before touching the file.
func saveRenderDefaults(path string, rc config.RenderConfig) error {
	if err := config.Validate(config.Config{Render: rc}); err != nil {
		return err
	}
	return config.SaveRenderDefaults(path, rc)
}

func init() {
	configSetCmd.Flags().StringVar(&setTarget, "target", "",
		`default publishing target: "github", "local", or "npm"`)
	configSetCmd.Flags().StringVar(&setBackend, "backend", "",
		`default backend override: "shields" or "svg"`)
	configSetCmd.Flags().StringVar(&setAssetsDir, "assets-dir", "",
		"default directory for generated SVG files")
	rootCmd.AddCommand(configSetCmd)
}
