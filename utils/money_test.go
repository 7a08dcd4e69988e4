package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		symbol string
		want   string
	}{
		{name: "small whole", amount: "500", symbol: "$", want: "$500"},
		{name: "thousands", amount: "12500", symbol: "$", want: "$12,500"},
		{name: "millions with cents", amount: "1234567.5", symbol: "$", want: "$1,234,567.50"},
		{name: "single digit cents", amount: "10.05", symbol: "€", want: "€10.05"},
		{name: "rounds to cents", amount: "9.999", symbol: "$", want: "$10"},
		{name: "negative", amount: "-1500", symbol: "$", want: "-$1,500"},
		{name: "default symbol", amount: "0", symbol: "", want: "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.symbol))
		})
	}
}
