package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/registry"
)

var regKind string

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List all registered renderable definitions",
	Long: `List every renderable definition the binary knows about as JSON.

Use --kind to filter by definition kind.

Examples:
  # List all definitions
  emblem registry:list

  # Only glyphs
  emblem registry:list --kind glyph

  # Parse specific fields with jq
  emblem registry:list | jq '.[].id'
  emblem registry:list | jq '.[] | select(.aliases != null)'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Load()
		if err != nil {
			return fmt.Errorf("loading registry: %w", err)
		}

		var defs []*registry.Definition
		if cmd.Flags().Changed("kind") {
			kind, err := registry.ParseKind(regKind)
			if err != nil {
				return err
			}
			defs = reg.ListKind(kind)
		} else {
			defs = reg.List()
		}

		entries := make([]definitionEntry, 0, len(defs))
		for _, def := range defs {
			entries = append(entries, definitionEntry{
				ID:       def.ID,
				Kind:     def.Kind.String(),
				Aliases:  def.Aliases,
				Contexts: evalctx.Names(def.Contexts),
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

// definitionEntry is the JSON shape of one definition listing.
type definitionEntry struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Aliases  []string `json:"aliases,omitempty"`
	Contexts []string `json:"contexts"`
}

func init() {
	registryListCmd.Flags().StringVarP(&regKind, "kind", "k", "",
		"Filter by definition kind (glyph, snippet, component, frame, style, badge)")
	rootCmd.AddCommand(registryListCmd)
}
