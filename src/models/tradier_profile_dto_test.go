package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradierProfileAccountList(t *testing.T) {
	t.Run("single account object", func(t *testing.T) {
		payload := []byte(`{"profile":{"id":"id-1","name":"Test User","account":{"account_number":"VA000001","type":"margin"}}}`)

		var resp TradierProfileResponseDTO
		require.NoError(t, json.Unmarshal(payload, &resp))
		require.Len(t, resp.Profile.Account, 1)
		assert.Equal(t, "VA000001", resp.Profile.Account[0].AccountNumber)
	})

	t.Run("list of accounts keeps order", func(t *testing.T) {
		payload := []byte(`{"profile":{"id":"id-1","account":[{"account_number":"VA000001"},{"account_number":"VA000002"}]}}`)

		var resp TradierProfileResponseDTO
		require.NoError(t, json.Unmarshal(payload, &resp))
		require.Len(t, resp.Profile.Account, 2)
		assert.Equal(t, "VA000001", resp.Profile.Account[0].AccountNumber)
		assert.Equal(t, "VA000002", resp.Profile.Account[1].AccountNumber)
	})

	t.Run("scalar account field is malformed", func(t *testing.T) {
		payload := []byte(`{"profile":{"id":"id-1","account":5}}`)

		var resp TradierProfileResponseDTO
		err := json.Unmarshal(payload, &resp)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
