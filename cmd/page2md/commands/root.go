// Package commands implements the CLI commands for page2md.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aias/page-to-markdown/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "page2md",
	Short:   "Convert web pages to clean Markdown",
	Version: version.String(),
	Long: `page2md converts a web page into a self-contained Markdown document
with YAML front matter, a table of contents, and a normalized body.

It locates the readable content region, strips navigation and other
noise, resolves lazy-loaded images, de-tracks links, preserves code
block languages and titles, and extracts footnotes into an appendix.

Examples:
  # Convert a URL to Markdown on stdout
  page2md convert -u "https://example.com/article"

  # Convert saved HTML, telling it which site's settings to use
  page2md convert -f page.html --hostname example.com -o article.md

  # Store a custom content selector for a site
  page2md config set example.com "div.post-body"`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.page2md.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.SetVersionTemplate(version.Full() + "\n")
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".page2md")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PAGE2MD")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
