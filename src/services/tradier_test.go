package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jastley/tradier-autotrader/src/models"
)

func TestTradierClientFetchQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a single quote", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/markets/quotes", r.URL.Path)
			assert.Equal(t, "PIXY", r.URL.Query().Get("symbols"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			w.Write([]byte(`{"quotes":{"quote":{"symbol":"PIXY","last":1.25}}}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		quote, err := client.FetchQuote(ctx, "PIXY")
		require.NoError(t, err)
		assert.Equal(t, "PIXY", quote.Symbol)
		assert.Equal(t, 1.25, quote.Last)
	})

	t.Run("returns the first quote of a list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quotes":{"quote":[{"symbol":"AAPL","last":150.0},{"symbol":"PIXY","last":1.25}]}}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		quote, err := client.FetchQuote(ctx, "AAPL,PIXY")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", quote.Symbol)
	})

	t.Run("zero quote entries is ErrNoQuoteFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quotes":"null"}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		_, err := client.FetchQuote(ctx, "NOPE")
		assert.ErrorIs(t, err, models.ErrNoQuoteFound)
	})
}

func TestTradierClientFetchPositions(t *testing.T) {
	ctx := context.Background()

	t.Run("null positions is an empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts/VA000001/positions", r.URL.Path)
			w.Write([]byte(`{"positions":"null"}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		positions, err := client.FetchPositions(ctx, "VA000001")
		require.NoError(t, err)
		assert.Len(t, positions, 0)
	})

	t.Run("non-success status is a PositionsQueryError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		_, err := client.FetchPositions(ctx, "VA000001")
		require.Error(t, err)

		var positionsErr *models.PositionsQueryError
		require.True(t, errors.As(err, &positionsErr))
		assert.Equal(t, "VA000001", positionsErr.Account)
		assert.Equal(t, "401 Unauthorized", positionsErr.Status)
	})
}

func TestTradierClientFetchAccounts(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/user/profile", r.URL.Path)
		w.Write([]byte(`{"profile":{"id":"id-1","account":[{"account_number":"VA000001"},{"account_number":"VA000002"}]}}`))
	}))
	defer server.Close()

	client := NewTradierClient(server.URL, "test-token")

	accounts, err := client.FetchAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "VA000001", accounts[0].AccountNumber)
}

func TestTradierClientPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("encodes the order as query params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/accounts/VA000001/orders", r.URL.Path)

			q := r.URL.Query()
			assert.Equal(t, "equity", q.Get("class"))
			assert.Equal(t, "limit", q.Get("type"))
			assert.Equal(t, "day", q.Get("duration"))
			assert.Equal(t, "PIXY", q.Get("symbol"))
			assert.Equal(t, "1", q.Get("quantity"))
			assert.Equal(t, "buy", q.Get("side"))
			assert.Equal(t, "1.10", q.Get("price"))
			assert.Equal(t, "run-abc", q.Get("tag"))
			assert.Empty(t, q.Get("preview"))

			w.Write([]byte(`{"order":{"id":873523,"status":"ok"}}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		order := models.NewEquityOrder("pixy", 1, models.TradierOrderSideBuy, models.TradeDurationDay, "run-abc", false).WithLimitPrice(1.10)

		result, err := client.PlaceOrder(ctx, "VA000001", order)
		require.NoError(t, err)
		assert.True(t, result.OK())
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Contains(t, result.Body, "873523")
	})

	t.Run("dry run adds preview", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("preview"))
			w.Write([]byte(`{"order":{"status":"ok"}}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		order := models.NewEquityOrder("PIXY", 1, models.TradierOrderSideSell, models.TradeDurationDay, "", true).WithLimitPrice(0.90)

		_, err := client.PlaceOrder(ctx, "VA000001", order)
		require.NoError(t, err)
	})

	t.Run("non-success status comes back in the result, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"errors":{"error":"account not authorized"}}`))
		}))
		defer server.Close()

		client := NewTradierClient(server.URL, "test-token")

		order := models.NewEquityOrder("PIXY", 1, models.TradierOrderSideBuy, models.TradeDurationDay, "", false).WithLimitPrice(1.10)

		result, err := client.PlaceOrder(ctx, "VA000001", order)
		require.NoError(t, err)
		assert.False(t, result.OK())
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
		assert.Contains(t, result.Body, "not authorized")
	})

	t.Run("invalid order is rejected before any request", func(t *testing.T) {
		client := NewTradierClient("http://127.0.0.1:1", "test-token")

		order := models.NewEquityOrder("PIXY", -1, models.TradierOrderSideBuy, models.TradeDurationDay, "", false)

		_, err := client.PlaceOrder(ctx, "VA000001", order)
		assert.Error(t, err)
	})
}

func TestPositionTrackerBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("accounts with no positions map to empty sets", func(t *testing.T) {
		broker := NewMockBroker()
		broker.AddAccount("1")
		broker.AddAccount("2", "PIXY", "AAPL")

		positions, err := NewPositionTracker(broker).Build(ctx, broker.Accounts)
		require.NoError(t, err)

		assert.False(t, positions.Holds("1", "PIXY"))
		assert.True(t, positions.Holds("2", "PIXY"))
		assert.Equal(t, []string{"AAPL", "PIXY"}, positions.Symbols("2"))
		assert.Len(t, positions.Symbols("1"), 0)
	})

	t.Run("a failed positions query surfaces as an error", func(t *testing.T) {
		broker := NewMockBroker()
		broker.AddAccount("1")
		broker.PositionsErrs["1"] = &models.PositionsQueryError{Account: "1", Status: "500 Internal Server Error"}

		_, err := NewPositionTracker(broker).Build(ctx, broker.Accounts)
		require.Error(t, err)

		var positionsErr *models.PositionsQueryError
		assert.True(t, errors.As(err, &positionsErr))
	})
}
