package model

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) *ValuationRequest {
	t.Helper()
	var req ValuationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestValidateRequestShape(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "explicit forecast",
			body: `{"forecast_cash_flows":[1000,1100],"discount_rate":0.1}`,
		},
		{
			name: "empty forecast reaches business rules",
			body: `{"forecast_cash_flows":[],"discount_rate":0.1}`,
		},
		{
			name: "growth forecast",
			body: `{"starting_cash_flow":72.764,"growth_rate":12,"years":10,"discount_rate":8,"rate_format":"percent"}`,
		},
		{
			name:    "missing discount rate",
			body:    `{"forecast_cash_flows":[1000]}`,
			wantErr: "discount_rate is required",
		},
		{
			name:    "no forecast",
			body:    `{"discount_rate":0.1}`,
			wantErr: "either forecast_cash_flows or starting_cash_flow is required",
		},
		{
			name:    "both forecasts",
			body:    `{"forecast_cash_flows":[1],"starting_cash_flow":1,"growth_rate":0,"years":1,"discount_rate":0.1}`,
			wantErr: "starting_cash_flow cannot be combined with forecast_cash_flows",
		},
		{
			name:    "explicit forecast with growth rate",
			body:    `{"forecast_cash_flows":[1],"growth_rate":0.05,"discount_rate":0.1}`,
			wantErr: "growth_rate cannot be combined with forecast_cash_flows",
		},
		{
			name:    "explicit forecast with years",
			body:    `{"forecast_cash_flows":[1],"years":5,"discount_rate":0.1}`,
			wantErr: "years cannot be combined with forecast_cash_flows",
		},
		{
			name:    "growth without years",
			body:    `{"starting_cash_flow":1,"growth_rate":0.1,"discount_rate":0.1}`,
			wantErr: "years is required with starting_cash_flow",
		},
		{
			name:    "unknown rate format",
			body:    `{"forecast_cash_flows":[1],"discount_rate":0.1,"rate_format":"bps"}`,
			wantErr: "rate_format must be one of [ratio percent]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(t, tt.body).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExplicitZeroTerminalValueIsPresent(t *testing.T) {
	withZero := decode(t, `{"forecast_cash_flows":[1],"discount_rate":0.1,"terminal_value":0}`)
	require.NotNil(t, withZero.TerminalValue)
	assert.Equal(t, 0.0, *withZero.TerminalValue)

	omitted := decode(t, `{"forecast_cash_flows":[1],"discount_rate":0.1}`)
	assert.Nil(t, omitted.TerminalValue)

	null := decode(t, `{"forecast_cash_flows":[1],"discount_rate":0.1,"terminal_value":null}`)
	assert.Nil(t, null.TerminalValue)
}
