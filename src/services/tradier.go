package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jastley/tradier-autotrader/src/models"
	"github.com/jastley/tradier-autotrader/src/utils"
)

const DefaultTradierHost = "https://api.tradier.com"

// Broker is the brokerage API surface the run depends on. TradierClient is
// the live implementation; tests use MockBroker.
type Broker interface {
	FetchQuote(ctx context.Context, symbol string) (*models.TradierQuoteDTO, error)
	FetchPositions(ctx context.Context, accountID string) ([]models.TradierPositionDTO, error)
	FetchAccounts(ctx context.Context) ([]models.TradierAccountDTO, error)
	FetchBalances(ctx context.Context, accountID string) (*models.TradierBalancesDTO, error)
	PlaceOrder(ctx context.Context, accountID string, order *models.Order) (*models.SubmissionResult, error)
}

type TradierClient struct {
	host   string
	token  string
	client http.Client
}

func NewTradierClient(host, token string) *TradierClient {
	if host == "" {
		host = DefaultTradierHost
	}

	return &TradierClient{
		host:  strings.TrimRight(host, "/"),
		token: token,
		client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchQuote returns the live quote for one symbol. Tradier accepts a
// comma-separated symbol list on this endpoint, but only single-symbol
// lookups are supported here.
func (c *TradierClient) FetchQuote(ctx context.Context, symbol string) (*models.TradierQuoteDTO, error) {
	if strings.Contains(symbol, ",") {
		log.Warnf("FetchQuote: multi-symbol quotes are not supported, quoting %q as given", symbol)
	}

	queryParams := url.Values{}
	queryParams.Add("symbols", symbol)

	fullUrl := fmt.Sprintf("%s/v1/markets/quotes?%s", c.host, queryParams.Encode())

	bytes, _, err := c.get(ctx, fullUrl)
	if err != nil {
		return nil, fmt.Errorf("FetchQuote: %w", err)
	}

	quotes, err := utils.ParseTradierResponse[models.TradierQuoteDTO](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchQuote: failed to parse response: %w", err)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("FetchQuote: %s: %w", symbol, models.ErrNoQuoteFound)
	}

	// Only the first quote is used.
	return &quotes[0], nil
}

func (c *TradierClient) FetchPositions(ctx context.Context, accountID string) ([]models.TradierPositionDTO, error) {
	fullUrl := fmt.Sprintf("%s/v1/accounts/%s/positions", c.host, accountID)

	bytes, status, err := c.get(ctx, fullUrl)
	if err != nil {
		return nil, &models.PositionsQueryError{Account: accountID, Status: status, Err: err}
	}

	positions, err := utils.ParseTradierResponse[models.TradierPositionDTO](bytes)
	if err != nil {
		return nil, &models.PositionsQueryError{Account: accountID, Err: err}
	}

	return positions, nil
}

// FetchAccounts discovers the account numbers owned by the authenticated
// user, in the order the profile lists them.
func (c *TradierClient) FetchAccounts(ctx context.Context) ([]models.TradierAccountDTO, error) {
	fullUrl := fmt.Sprintf("%s/v1/user/profile", c.host)

	bytes, _, err := c.get(ctx, fullUrl)
	if err != nil {
		return nil, fmt.Errorf("FetchAccounts: %w", err)
	}

	var resp models.TradierProfileResponseDTO
	if err := json.Unmarshal(bytes, &resp); err != nil {
		return nil, fmt.Errorf("FetchAccounts: failed to parse response: %w", err)
	}

	return resp.Profile.Account, nil
}

func (c *TradierClient) FetchBalances(ctx context.Context, accountID string) (*models.TradierBalancesDTO, error) {
	fullUrl := fmt.Sprintf("%s/v1/accounts/%s/balances", c.host, accountID)

	bytes, _, err := c.get(ctx, fullUrl)
	if err != nil {
		return nil, fmt.Errorf("FetchBalances: %w", err)
	}

	var resp models.FetchTradierBalancesResponseDTO
	if err := json.Unmarshal(bytes, &resp); err != nil {
		return nil, fmt.Errorf("FetchBalances: failed to parse response: %w", err)
	}

	return &resp.Balances, nil
}

// PlaceOrder submits an equity order for one account. A non-success status
// is not an error here: the status and body are returned for the caller to
// act on.
func (c *TradierClient) PlaceOrder(ctx context.Context, accountID string, order *models.Order) (*models.SubmissionResult, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("PlaceOrder: %w", err)
	}

	fullUrl := fmt.Sprintf("%s/v1/accounts/%s/orders", c.host, accountID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fullUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to create request: %w", err)
	}

	q := httpReq.URL.Query()
	q.Add("class", models.TradierOrderClassEquity)
	q.Add("type", string(order.OrderType))
	q.Add("duration", string(order.Duration))
	q.Add("symbol", strings.ToUpper(order.Symbol))
	q.Add("quantity", strconv.Itoa(order.Quantity))
	q.Add("side", string(order.Side))

	if order.OrderType == models.TradierOrderTypeLimit {
		q.Add("price", strconv.FormatFloat(order.LimitPrice, 'f', 2, 64))
	}

	if order.Tag != "" {
		q.Add("tag", order.Tag)
	}

	if order.DryRun {
		q.Add("preview", "true")
	}

	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Add("Accept", "application/json")
	httpReq.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))

	log.Infof("PlaceOrder: placing trade: %v", httpReq.URL.String())

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to place trade: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to read response body: %w", err)
	}

	return &models.SubmissionResult{
		Account:    accountID,
		Order:      order,
		StatusCode: res.StatusCode,
		Body:       string(body),
	}, nil
}

func (c *TradierClient) get(ctx context.Context, fullUrl string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))

	res, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, res.Status, fmt.Errorf("invalid status code: %s", res.Status)
	}

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.Status, fmt.Errorf("failed to read response body: %w", err)
	}

	return bytes, res.Status, nil
}
