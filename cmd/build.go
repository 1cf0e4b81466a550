package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-link/config"
	"swap-link/pkg/currency"
	"swap-link/pkg/parser"
	"swap-link/pkg/types"
)

var (
	buildInput  string
	buildOutput string
	buildField  string
	buildAmount string
	buildBase   string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a swap deep link",
	Long: `Build a swap deep link from currency identifiers and validate it.

Currency identifiers use the <chainId>-<tokenAddress> format. Use the native
sentinel address 0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE for a chain's
native asset.

Examples:
  swap-link build --in 1-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE --out 1-0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 --amount 0.5
  swap-link build --in 8453-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE --out 42161-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE --field output --amount 2`,
	Run: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildInput, "in", "", "Input currency id (<chainId>-<address>)")
	buildCmd.Flags().StringVar(&buildOutput, "out", "", "Output currency id (<chainId>-<address>)")
	buildCmd.Flags().StringVar(&buildField, "field", "input", "Exact currency field (input or output)")
	buildCmd.Flags().StringVar(&buildAmount, "amount", "", "Exact amount (optional)")
	buildCmd.Flags().StringVar(&buildBase, "base", "", "Link base URL (defaults to link_base from config)")

	buildCmd.MarkFlagRequired("in")
	buildCmd.MarkFlagRequired("out")
}

func runBuild(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Get()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	base := buildBase
	if base == "" {
		base = cfg.LinkBase
	}

	field, err := types.ParseCurrencyField(buildField)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	inChain, inAddress := currency.ParseCurrencyID(buildInput)
	outChain, outAddress := currency.ParseCurrencyID(buildOutput)

	link, err := parser.BuildSwapLink(base, types.SwapLinkParams{
		InputChainID:  inChain,
		InputAddress:  inAddress,
		OutputChainID: outChain,
		OutputAddress: outAddress,
		ExactField:    field,
		ExactAmount:   buildAmount,
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	validator, err := newValidator(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Refuse to hand out a link the app would reject
	params, err := validator.ParseSwapLink(link)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output, _ := json.MarshalIndent(map[string]interface{}{
			"link":   link,
			"params": params,
		}, "", "  ")
		fmt.Println(string(output))
		return
	}

	color.Cyan("\n%s\n\n", link)
}
