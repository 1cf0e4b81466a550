package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/shopspring/decimal"

	"swap-link/pkg/chains"
	"swap-link/pkg/currency"
	"swap-link/pkg/parser"
	"swap-link/pkg/types"
)

// DefaultTokenCacheTTL is how long the supported token list is reused
const DefaultTokenCacheTTL = time.Minute

// slippage tolerance in basis points (1%)
const slippageBps = 100

// Token is the subset of a 1Click token the quote adapter needs
type Token struct {
	AssetID         string `json:"asset_id"`
	Symbol          string `json:"symbol"`
	Blockchain      string `json:"blockchain"`
	ContractAddress string `json:"contract_address,omitempty"`
	Decimals        int32  `json:"decimals"`
}

// OneClickClient wraps the 1Click SDK
type OneClickClient struct {
	client *oneclick.APIClient
	ctx    context.Context

	ttl         time.Duration
	now         func() time.Time
	fetchTokens func() ([]Token, error)

	mu        sync.Mutex
	tokens    []Token
	fetchedAt time.Time
}

// NewOneClickClient creates a new 1Click API client
func NewOneClickClient(jwtToken, baseURL string, cacheTTL time.Duration) *OneClickClient {
	config := oneclick.NewConfiguration()
	if baseURL != "" {
		config.Servers = oneclick.ServerConfigurations{{URL: baseURL}}
	}

	// Create authenticated context
	ctx := context.WithValue(context.Background(), oneclick.ContextAccessToken, jwtToken)

	if cacheTTL <= 0 {
		cacheTTL = DefaultTokenCacheTTL
	}

	c := &OneClickClient{
		client: oneclick.NewAPIClient(config),
		ctx:    ctx,
		ttl:    cacheTTL,
		now:    time.Now,
	}
	c.fetchTokens = c.fetchSupportedTokens

	return c
}

// GetSupportedTokens returns the supported token list, refetching it once the
// cached copy is older than the cache TTL.
func (c *OneClickClient) GetSupportedTokens() ([]Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokens != nil && c.now().Sub(c.fetchedAt) <= c.ttl {
		return c.tokens, nil
	}

	tokens, err := c.fetchTokens()
	if err != nil {
		return nil, err
	}

	c.tokens = tokens
	c.fetchedAt = c.now()
	return tokens, nil
}

func (c *OneClickClient) fetchSupportedTokens() ([]Token, error) {
	resp, httpResp, err := c.client.OneClickAPI.GetTokens(c.ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}

	tokens := make([]Token, 0, len(resp))
	for _, t := range resp {
		tokens = append(tokens, Token{
			AssetID:         t.GetAssetId(),
			Symbol:          t.GetSymbol(),
			Blockchain:      t.GetBlockchain(),
			ContractAddress: t.GetContractAddress(),
			Decimals:        int32(t.GetDecimals()),
		})
	}

	return tokens, nil
}

// FindToken resolves a chain id and token address to a 1Click token
func (c *OneClickClient) FindToken(chainID chains.ID, address string) (*Token, error) {
	tokens, err := c.GetSupportedTokens()
	if err != nil {
		return nil, err
	}
	return MatchToken(tokens, chainID, address)
}

// MatchToken finds the token for chainID and address in tokens. Native
// sentinels match the chain's native symbol with no contract address.
func MatchToken(tokens []Token, chainID chains.ID, address string) (*Token, error) {
	chain, ok := chains.Known(chainID)
	if !ok || chain.Blockchain == "" {
		return nil, fmt.Errorf("chain %d is not available on 1Click", chainID)
	}

	native := currency.IsNativeOn(chainID, address)
	for i := range tokens {
		token := &tokens[i]
		if !strings.EqualFold(token.Blockchain, chain.Blockchain) {
			continue
		}

		if native {
			if token.ContractAddress == "" && strings.EqualFold(token.Symbol, chain.NativeSymbol) {
				return token, nil
			}
			continue
		}

		if token.ContractAddress == address ||
			(chain.Platform == chains.PlatformEVM && strings.EqualFold(token.ContractAddress, address)) {
			return token, nil
		}
	}

	return nil, fmt.Errorf("token %s not found on %s", address, chain.Name)
}

// BaseUnits converts a decimal token amount into its smallest unit
func BaseUnits(amount string, decimals int32) (string, error) {
	d, err := parser.ParseAmount(amount)
	if err != nil {
		return "", err
	}
	return d.Shift(decimals).Truncate(0).String(), nil
}

// QuoteRequest carries the addresses a 1Click quote needs besides the link
type QuoteRequest struct {
	Params    *types.SwapLinkParams
	Recipient string
	RefundTo  string
}

// Quote requests a dry-run quote for a validated swap link
func (c *OneClickClient) Quote(req QuoteRequest) (*oneclick.QuoteResponse, error) {
	params := req.Params

	sourceToken, err := c.FindToken(params.InputChainID, params.InputAddress)
	if err != nil {
		return nil, fmt.Errorf("source token error: %w", err)
	}
	destToken, err := c.FindToken(params.OutputChainID, params.OutputAddress)
	if err != nil {
		return nil, fmt.Errorf("destination token error: %w", err)
	}

	// Exact output amounts are denominated in the destination token
	exactToken := sourceToken
	if params.ExactField == types.CurrencyFieldOutput {
		exactToken = destToken
	}
	amount, err := BaseUnits(params.ExactAmount, exactToken.Decimals)
	if err != nil {
		return nil, err
	}
	if decimal.RequireFromString(amount).IsZero() {
		return nil, fmt.Errorf("swap amount must be greater than 0")
	}

	if req.Recipient == "" {
		return nil, fmt.Errorf("recipient address is required. Use --recipient flag to specify where you want to receive the tokens")
	}
	refundTo := req.RefundTo
	if refundTo == "" {
		refundTo = req.Recipient
	}

	deadline := time.Now().Add(24 * time.Hour)

	var quoteReq *oneclick.QuoteRequest
	if params.ExactField == types.CurrencyFieldOutput {
		quoteReq = oneclick.NewQuoteRequest(true, "EXACT_OUTPUT", slippageBps,
			sourceToken.AssetID, "ORIGIN_CHAIN", destToken.AssetID, amount,
			refundTo, "ORIGIN_CHAIN", req.Recipient, "DESTINATION_CHAIN", deadline)
	} else {
		quoteReq = oneclick.NewQuoteRequest(true, "EXACT_INPUT", slippageBps,
			sourceToken.AssetID, "ORIGIN_CHAIN", destToken.AssetID, amount,
			refundTo, "ORIGIN_CHAIN", req.Recipient, "DESTINATION_CHAIN", deadline)
	}

	resp, httpResp, err := c.client.OneClickAPI.GetQuote(c.ctx).QuoteRequest(*quoteReq).Execute()
	if err != nil {
		return nil, apiError(httpResp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}

	if resp == nil {
		return nil, fmt.Errorf("empty quote response")
	}

	return resp, nil
}

// apiError extracts the API's message from a failed response when it has one
func apiError(httpResp *http.Response, err error) error {
	if httpResp == nil {
		return fmt.Errorf("failed to get quote from API: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil || len(bodyBytes) == 0 {
		return fmt.Errorf("failed to get quote from API (status: %d): %w", httpResp.StatusCode, err)
	}

	var errorResp map[string]interface{}
	if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
		if message, ok := errorResp["message"].(string); ok {
			return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, message)
		}
		if errors, ok := errorResp["errors"]; ok {
			return fmt.Errorf("API error (status %d): %v", httpResp.StatusCode, errors)
		}
	}

	return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(bodyBytes))
}
