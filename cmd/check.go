package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/registry"
	"github.com/zjrosen/emblem/internal/template"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate documents without rendering",
	Long: `Check parses and resolves each document, reporting every diagnostic,
and writes nothing. Exit status is non-zero when any document fails.

Examples:
  emblem check README.md
  emblem check docs/*.md --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false,
		"treat unknown-tag warnings as errors")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if !cmd.Flags().Changed("strict") {
		strict = viper.GetBool("strict")
	}

	resolver := template.NewResolver(reg)
	failed := 0
	for _, path := range args {
		if !checkFile(resolver, path, strict) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failed, len(args))
	}
	fmt.Fprintf(os.Stderr, "%d document(s) ok\n", len(args))
	return nil
}

// checkFile validates one document and reports its diagnostics. Returns
// false when the document fails.
func checkFile(resolver *template.Resolver, path string, strict bool) bool {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
	if err != nil {
		printError(fmt.Sprintf("%s: %v", path, err))
		return false
	}
	source := string(data)

	doc, err := template.Parse(source)
	if err != nil {
		var parseErr *template.ParseError
		if errors.As(err, &parseErr) {
			line, col := lineCol(source, parseErr.Span.Start)
			printError(fmt.Sprintf("%s:%d:%d: %s", path, line, col, parseErr.Msg))
		} else {
			printError(fmt.Sprintf("%s: %v", path, err))
		}
		return false
	}

	_, diags, err := resolver.ResolveDocument(doc, evalctx.Block)
	if err != nil {
		printError(fmt.Sprintf("%s: %v", path, err))
		return false
	}
	printDiagnostics(path, source, diags)

	if template.HasErrors(diags) {
		return false
	}
	if strict && len(diags) > 0 {
		return false
	}
	return true
}
