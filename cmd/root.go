package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swap-link/config"
	"swap-link/pkg/logging"
	"swap-link/pkg/parser"
)

var rootCmd = &cobra.Command{
	Use:   "swap-link",
	Short: "Parse, dispatch and quote swap deep links",
	Long: `swap-link validates swap deep links of the form

  uniswap://swap?inputCurrencyId=<chainId>-<address>&outputCurrencyId=<chainId>-<address>&currencyField=input|output&amount=<n>

and turns each link into exactly one "open swap" event. Invalid links open an
empty swap form and the rejection is logged.

Examples:
  swap-link open "uniswap://swap?inputCurrencyId=1-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE&outputCurrencyId=1-0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48&currencyField=input&amount=1"
  swap-link build --in 1-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE --out 137-0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359 --amount 5
  swap-link chains
  swap-link serve`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

// newLogger builds the command logger; --verbose lowers the level to debug
func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logging.New(level, cfg.LogFormat)
}

func newValidator(cfg *config.Config) (*parser.Validator, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return parser.NewValidator(registry), nil
}
