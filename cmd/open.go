package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-link/config"
	"swap-link/pkg/chains"
	"swap-link/pkg/dispatch"
	"swap-link/pkg/types"
)

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Handle a swap deep link and print the resulting event",
	Long: `Validate a swap deep link and emit the "open swap" event it produces.

A valid link opens the swap form prefilled with both currencies and the exact
amount. An invalid link still opens the swap form, empty, and the reason is
written to the log.

Examples:
  swap-link open "uniswap://swap?inputCurrencyId=1-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE&outputCurrencyId=137-0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359&currencyField=output&amount=500"
  swap-link open --json "uniswap://swap?inputCurrencyId=1-0x1234"`,
	Args: cobra.ExactArgs(1),
	Run:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Get()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer logger.Sync()

	validator, err := newValidator(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	sink := dispatch.SinkFunc(func(event types.Event) {
		if jsonOutput {
			output, _ := json.MarshalIndent(event, "", "  ")
			fmt.Println(string(output))
			return
		}
		displayEvent(event)
	})

	dispatcher := dispatch.NewDispatcher(validator,
		dispatch.WithSink(sink),
		dispatch.WithLogger(logger),
	)
	dispatcher.HandleString(args[0])
}

func displayEvent(event types.Event) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                   OPEN %s VIEW", strings.ToUpper(event.Name))
	fmt.Println(strings.Repeat("=", 60))

	if !event.Prefilled() {
		color.Yellow("\n  Link rejected: opening an empty swap form\n")
		fmt.Println(strings.Repeat("=", 60) + "\n")
		return
	}

	state := event.InitialState
	fmt.Printf("\n  Input:             %s on %s\n", color.CyanString(state.Input.Address), chainName(state.Input.ChainID))
	fmt.Printf("  Output:            %s on %s\n", color.CyanString(state.Output.Address), chainName(state.Output.ChainID))
	fmt.Printf("  Exact Field:       %s\n", color.YellowString(string(state.ExactCurrencyField)))
	fmt.Printf("  Exact Amount:      %s\n", state.ExactAmountToken)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func chainName(id chains.ID) string {
	if c, ok := chains.Known(id); ok {
		return fmt.Sprintf("%s (%d)", c.Name, id)
	}
	return fmt.Sprintf("chain %d", id)
}
