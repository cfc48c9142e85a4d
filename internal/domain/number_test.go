package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"number", `42.5`, 42.5},
		{"integer", `7`, 7},
		{"numeric string", `"19.99"`, 19.99},
		{"padded string", `"  3 "`, 3},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"garbage", `"abc"`, 0},
		{"boolean", `true`, 0},
		{"negative", `-12.5`, -12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.expected, n.Float())
		})
	}
}

func TestNumber_InStruct(t *testing.T) {
	var item LineItem
	// A half-filled form row: qty as string, rate missing, junk in tax.
	payload := `{"description":"Widget","qty":"2","tax":"n/a","discount":1.5}`
	require.NoError(t, json.Unmarshal([]byte(payload), &item))

	assert.Equal(t, 2.0, item.Quantity.Float())
	assert.Zero(t, item.Rate.Float())
	assert.Zero(t, item.TaxPercent.Float())
	assert.Equal(t, 1.5, item.Discount.Float())
}
