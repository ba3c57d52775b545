package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	compact bool
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "Translate text and interpret model responses",
	Long: `lingo works with the translation pipeline from the command line.

Commands:
  interpret  - recover a translation from a raw model response
  translate  - translate text with the configured model`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $CONFIG_PATH or ./config/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&compact, "compact", false, "print one JSON document per line")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
