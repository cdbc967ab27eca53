package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yosssi/gohtml"

	"github.com/Aias/page-to-markdown/internal/logger"
	"github.com/Aias/page-to-markdown/pkg/fetcher"
	"github.com/Aias/page-to-markdown/pkg/locate"
	"github.com/Aias/page-to-markdown/pkg/pipeline"
	"github.com/Aias/page-to-markdown/pkg/siteconfig"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a page to Markdown",
	Long: `Convert a web page (fetched from a URL or read from a file) into a
Markdown document.

Before converting the DOM, it probes for an already-authored Markdown
version of the page (a ".md" sibling URL) and uses that body when one
exists. Disable with --no-canonical.

Examples:
  # Fetch and convert
  page2md convert -u "https://example.com/article" -o article.md

  # Convert saved HTML with a site's settings
  page2md convert -f page.html --hostname example.com

  # Inspect the located content region instead of converting
  page2md convert -u "https://example.com/article" --dump-html`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()

	flags.StringP("url", "u", "", "URL to fetch and convert")
	flags.StringP("file", "f", "", "HTML file to convert")
	flags.StringP("output", "o", "", "output file (default: stdout)")

	flags.String("hostname", "", "hostname for per-site settings (default: host of --url)")
	flags.String("selector", "", "CSS selector for the content region (overrides site settings)")
	flags.StringSlice("remove", nil, "extra CSS selectors to strip (can be repeated)")

	flags.Bool("no-canonical", false, "skip the canonical .md sibling lookup")
	flags.Bool("dump-html", false, "print the located content region as formatted HTML and exit")

	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "custom User-Agent header")
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pageURL, _ := cmd.Flags().GetString("url")
	filePath, _ := cmd.Flags().GetString("file")
	if pageURL == "" && filePath == "" {
		return cmd.Help()
	}
	if pageURL != "" && filePath != "" {
		return fmt.Errorf("--url and --file are mutually exclusive")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	var (
		pageHTML  string
		parsedURL *url.URL
	)

	f := fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent: userAgent,
		Timeout:   timeout,
	})
	defer func() { _ = f.Close() }()

	if pageURL != "" {
		var err error
		parsedURL, err = url.Parse(pageURL)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", pageURL, err)
		}

		logInfo("Fetching %s...", pageURL)
		content, err := f.Fetch(ctx, pageURL, fetcher.Options{})
		if err != nil {
			logError("fetch failed: %v", err)
			return err
		}
		pageHTML = content.HTML
	} else {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}
		pageHTML = string(data)
	}

	hostname, _ := cmd.Flags().GetString("hostname")
	if hostname == "" && parsedURL != nil {
		hostname = parsedURL.Hostname()
	}

	configs, err := siteConfigs(cmd, hostname)
	if err != nil {
		return err
	}

	if dump, _ := cmd.Flags().GetBool("dump-html"); dump {
		region := locate.Locate(pageHTML, parsedURL, hostname, configs)
		return writeOutput(cmd, gohtml.Format(region)+"\n")
	}

	canonical := ""
	if noCanonical, _ := cmd.Flags().GetBool("no-canonical"); !noCanonical && pageURL != "" {
		canonical = f.CanonicalMarkdown(ctx, pageURL)
		if canonical != "" {
			logInfo("Using canonical Markdown source")
		}
	}

	p := pipeline.New(
		pipeline.WithPageURL(parsedURL),
		pipeline.WithHostname(hostname),
		pipeline.WithConfigs(configs),
		pipeline.WithCanonical(canonical),
	)

	result, err := p.Convert(ctx, pageHTML)
	if err != nil {
		logError("conversion failed: %v", err)
		return err
	}

	return writeOutput(cmd, result.Markdown)
}

// siteConfigs loads stored per-site settings merged over the built-in
// defaults, then applies the --selector and --remove flag overrides
// for the active hostname.
func siteConfigs(cmd *cobra.Command, hostname string) (map[string]siteconfig.Config, error) {
	store := siteconfig.NewFileStore(siteconfig.DefaultStorePath())
	configs, err := store.Merged()
	if err != nil {
		return nil, fmt.Errorf("loading site settings: %w", err)
	}

	selector, _ := cmd.Flags().GetString("selector")
	remove, _ := cmd.Flags().GetStringSlice("remove")
	if selector == "" && len(remove) == 0 {
		return configs, nil
	}

	cfg := siteconfig.Lookup(configs, hostname)
	if selector != "" {
		cfg.Selector = selector
	}
	cfg.Remove = append(cfg.Remove, remove...)
	configs[hostname] = cfg
	return configs, nil
}

func writeOutput(cmd *cobra.Command, content string) error {
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	logInfo("Wrote %s", outPath)
	return nil
}
