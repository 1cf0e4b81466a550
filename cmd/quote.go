package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swap-link/config"
	"swap-link/pkg/client"
	"swap-link/pkg/routing"
	"swap-link/pkg/types"
)

var (
	quoteRecipient   string
	quoteRefundTo    string
	quoteSlippage    float64
	quoteDeadline    time.Duration
	quoteSimulateGas bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <url>",
	Short: "Fetch a dry-run quote for a swap deep link",
	Long: `Validate a swap deep link and request a dry-run quote for it from the
NEAR Intents 1Click API. No deposit address is reserved.

Requires SWAP_LINK_JWT_TOKEN (or jwt_token in .swap-link.yaml).

Examples:
  swap-link quote --recipient 0x123... "uniswap://swap?inputCurrencyId=1-0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE&outputCurrencyId=1-0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48&currencyField=input&amount=0.1"`,
	Args: cobra.ExactArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteRecipient, "recipient", "", "Recipient address (REQUIRED - where you'll receive tokens)")
	quoteCmd.Flags().StringVar(&quoteRefundTo, "refund-to", "", "Refund address on source chain (optional, defaults to recipient)")
	quoteCmd.Flags().Float64Var(&quoteSlippage, "slippage", routing.DefaultSlippageTolerance, "Routing slippage tolerance in percent")
	quoteCmd.Flags().DurationVar(&quoteDeadline, "deadline", routing.DefaultDeadline, "Routing trade deadline")
	quoteCmd.Flags().BoolVar(&quoteSimulateGas, "simulate-gas", false, "Ask the routing API to simulate gas from the recipient")
	quoteCmd.MarkFlagRequired("recipient")
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Get()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := cfg.RequireJWT(); err != nil {
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

	params, err := validator.ParseSwapLink(args[0])
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	apiClient := client.NewOneClickClient(cfg.JWTToken, cfg.BaseURL, cfg.TokenCacheTTL)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	quote, err := apiClient.Quote(client.QuoteRequest{
		Params:    params,
		Recipient: quoteRecipient,
		RefundTo:  quoteRefundTo,
	})
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		logger.Debug("quote request failed", zap.Error(err))
		printError(err)
		os.Exit(1)
	}

	var routingPath string
	routingReq, err := routingRequest(apiClient, params, routingOptions{
		recipient:   quoteRecipient,
		slippage:    quoteSlippage,
		deadline:    quoteDeadline,
		simulateGas: quoteSimulateGas,
	})
	if err != nil {
		logger.Debug("routing request not built", zap.Error(err))
	} else {
		routingPath = routingReq.QuotePath()
	}

	quoteDetails := quote.GetQuote()

	if jsonOutput {
		output := map[string]interface{}{
			"params":            params,
			"amount_in":         quoteDetails.GetAmountInFormatted(),
			"amount_out":        quoteDetails.GetAmountOutFormatted(),
			"time_estimate_sec": quoteDetails.GetTimeEstimate(),
			"routing_request":   routingPath,
		}
		if routingReq != nil {
			output["token_in_is_native"] = routingReq.TokenInIsNative()
			output["token_out_is_native"] = routingReq.TokenOutIsNative()
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayQuote(&quoteDetails, params, routingReq)
}

type routingOptions struct {
	recipient   string
	slippage    float64
	deadline    time.Duration
	simulateGas bool
}

// routingRequest builds the routing API request matching the link
func routingRequest(apiClient *client.OneClickClient, params *types.SwapLinkParams, opts routingOptions) (*routing.TradeQuoteRequest, error) {
	chainID, address := params.InputChainID, params.InputAddress
	if params.ExactField == types.CurrencyFieldOutput {
		chainID, address = params.OutputChainID, params.OutputAddress
	}

	token, err := apiClient.FindToken(chainID, address)
	if err != nil {
		return nil, err
	}

	amount, err := client.BaseUnits(params.ExactAmount, token.Decimals)
	if err != nil {
		return nil, err
	}

	return newRoutingRequest(params, amount, opts), nil
}

func newRoutingRequest(params *types.SwapLinkParams, amount string, opts routingOptions) *routing.TradeQuoteRequest {
	req := routing.NewTradeQuoteRequest(params, amount)
	req.Recipient = opts.recipient
	req.SlippageTolerance = opts.slippage
	req.Deadline = opts.deadline
	req.FetchSimulatedGasLimit = opts.simulateGas
	return req
}

func displayQuote(quote *oneclick.Quote, params *types.SwapLinkParams, routingReq *routing.TradeQuoteRequest) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:              %s on %s\n", quote.GetAmountInFormatted(), chainName(params.InputChainID))
	fmt.Printf("  To:                ~%s on %s\n", quote.GetAmountOutFormatted(), chainName(params.OutputChainID))
	fmt.Printf("  Exact Field:       %s\n", color.YellowString(string(params.ExactField)))
	fmt.Printf("  Estimated Time:    %.0f seconds\n", float64(quote.GetTimeEstimate()))

	if routingReq != nil {
		fmt.Printf("\n  Native Input:      %t\n", routingReq.TokenInIsNative())
		fmt.Printf("  Native Output:     %t\n", routingReq.TokenOutIsNative())
		fmt.Printf("  Routing Request:   %s\n", color.HiBlackString(routingReq.QuotePath()))
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
