package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Aias/page-to-markdown/internal/logger"
	"github.com/Aias/page-to-markdown/pkg/siteconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage per-site extraction settings",
	Long: `Manage the per-hostname content selectors and removal rules used
when converting pages from that site.

Settings are stored in a YAML file under the user config directory
and layered over the built-in defaults.

Examples:
  page2md config set example.com "div.post-body"
  page2md config set example.com "article" --remove ".newsletter" --remove ".share-bar"
  page2md config show example.com
  page2md config rm example.com
  page2md config reset`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <hostname> <selector>",
	Short: "Set the content selector for a hostname",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configRmCmd = &cobra.Command{
	Use:   "rm <hostname>",
	Short: "Remove the stored settings for a hostname",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigRm,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all stored settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigReset,
}

var configShowCmd = &cobra.Command{
	Use:   "show [hostname]",
	Short: "Show effective settings (defaults plus overrides)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configRmCmd, configResetCmd, configShowCmd)

	configSetCmd.Flags().StringSlice("remove", nil, "extra CSS selectors to strip (can be repeated)")
}

func configStore() siteconfig.Store {
	return siteconfig.NewFileStore(siteconfig.DefaultStorePath())
}

func initCommandLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	initCommandLogger()

	hostname, selector := args[0], args[1]
	remove, _ := cmd.Flags().GetStringSlice("remove")

	if err := configStore().Save(hostname, siteconfig.Config{
		Selector: selector,
		Remove:   remove,
	}); err != nil {
		logError("saving settings: %v", err)
		return err
	}
	logInfo("Saved settings for %s", hostname)
	return nil
}

func runConfigRm(cmd *cobra.Command, args []string) error {
	initCommandLogger()

	hostname := args[0]
	if err := configStore().Remove(hostname); err != nil {
		logError("removing settings: %v", err)
		return err
	}
	logInfo("Removed settings for %s", hostname)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	initCommandLogger()

	if err := configStore().Reset(); err != nil {
		logError("resetting settings: %v", err)
		return err
	}
	logInfo("Removed all stored settings")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	initCommandLogger()

	configs, err := configStore().Merged()
	if err != nil {
		logError("loading settings: %v", err)
		return err
	}

	if len(args) == 1 {
		cfg := siteconfig.Lookup(configs, args[0])
		out, err := yaml.Marshal(map[string]siteconfig.Config{args[0]: cfg})
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	hosts := make([]string, 0, len(configs))
	for host := range configs {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		out, err := yaml.Marshal(map[string]siteconfig.Config{host: configs[host]})
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	}
	return nil
}
