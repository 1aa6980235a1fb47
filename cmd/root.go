package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deduplino",
	Short: "Compress link-notation text with numbered back-references",
	Long: `Deduplino detects repeated token sequences in link-notation text and
rewrites them as a small dictionary of numbered definitions plus
back-references.

It finds exact duplicates as well as shared prefixes and suffixes,
greedily keeps the best-scoring patterns, and leaves everything else
canonically formatted.

Examples:
  deduplino dedup input.lino
  deduplino dedup --top 0.5 --auto-escape app.log
  deduplino stats --token-model gpt-4 input.lino
  deduplino watch --output out.lino input.lino`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deduplino.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".deduplino")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DEDUPLINO")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("top_percentage", 0.2)
	viper.SetDefault("auto_escape", false)
	viper.SetDefault("strict", false)
	viper.SetDefault("token_model", "")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
