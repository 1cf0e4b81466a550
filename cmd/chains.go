package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-link/config"
	"swap-link/pkg/chains"
	"swap-link/pkg/client"
)

var showTokens bool

var chainsCmd = &cobra.Command{
	Use:     "chains",
	Aliases: []string{"ls"},
	Short:   "List chains accepted in swap links",
	Long: `List the chains a swap deep link may reference.

With --tokens, also list the 1Click tokens available on each supported chain
(requires SWAP_LINK_JWT_TOKEN).

Examples:
  swap-link chains
  swap-link chains --tokens
  swap-link chains --json`,
	Run: runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)

	chainsCmd.Flags().BoolVar(&showTokens, "tokens", false, "Also list 1Click tokens per chain")
}

func runChains(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Get()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	registry, err := cfg.Registry()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	supported := registry.List()

	var tokensByChain map[chains.ID][]client.Token
	if showTokens {
		if err := cfg.RequireJWT(); err != nil {
			printError(err)
			os.Exit(1)
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		if !jsonOutput {
			s.Suffix = " Fetching supported tokens..."
			s.Start()
		}

		apiClient := client.NewOneClickClient(cfg.JWTToken, cfg.BaseURL, cfg.TokenCacheTTL)
		tokens, err := apiClient.GetSupportedTokens()
		if !jsonOutput {
			s.Stop()
		}
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		tokensByChain = groupTokens(supported, tokens)
	}

	if jsonOutput {
		output := map[string]interface{}{"chains": supported}
		if tokensByChain != nil {
			output["tokens"] = tokensByChain
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayChains(supported, tokensByChain)
}

// groupTokens assigns 1Click tokens to the supported chains they live on
func groupTokens(supported []chains.Chain, tokens []client.Token) map[chains.ID][]client.Token {
	grouped := make(map[chains.ID][]client.Token)
	for _, c := range supported {
		if c.Blockchain == "" {
			continue
		}
		for _, token := range tokens {
			if strings.EqualFold(token.Blockchain, c.Blockchain) {
				grouped[c.ID] = append(grouped[c.ID], token)
			}
		}
		sort.Slice(grouped[c.ID], func(i, j int) bool {
			return grouped[c.ID][i].Symbol < grouped[c.ID][j].Symbol
		})
	}
	return grouped
}

func displayChains(supported []chains.Chain, tokensByChain map[chains.ID][]client.Token) {
	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                                SUPPORTED CHAINS")
	fmt.Println(strings.Repeat("=", 90))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tNAME\tPLATFORM\tNATIVE\tNATIVE ADDRESS")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, c := range supported {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Platform, c.NativeSymbol, c.NativeAddress())
	}
	w.Flush()

	if tokensByChain != nil {
		for _, c := range supported {
			tokens := tokensByChain[c.ID]
			if len(tokens) == 0 {
				continue
			}

			color.Cyan("\n%s", strings.ToUpper(c.Name))
			fmt.Println(strings.Repeat("-", 90))
			for _, token := range tokens {
				address := token.ContractAddress
				if address == "" {
					address = c.NativeAddress()
				}
				fmt.Printf("  %-10s  %2d decimals  %s\n",
					color.YellowString(token.Symbol),
					token.Decimals,
					color.HiBlackString(address))
			}
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d chains\n\n", len(supported))
}
