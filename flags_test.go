package goplus

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_KeepsRepresentation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		quoted bool
	}{
		{"string", `"1"`, "1", true},
		{"number", `1`, "1", false},
		{"negative number", `-1`, "-1", false},
		{"empty string", `""`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.text, f.String())
			assert.Equal(t, tt.quoted, f.Quoted())

			out, err := json.Marshal(f)
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(out))
		})
	}
}

func TestFlag_Null(t *testing.T) {
	var f Flag
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.True(t, f.IsZero())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestFlag_RejectsObjects(t *testing.T) {
	var f Flag
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
}

func TestFlag_Bool(t *testing.T) {
	v, ok := StringFlag("1").Bool()
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = NumberFlag(0).Bool()
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = NumberFlag(-1).Bool()
	assert.False(t, ok, "-1 means unknown, not false")

	n, err := NumberFlag(-1).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("0.05")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("0.05")))

	_, err = ParseDecimal("")
	assert.Error(t, err)

	_, err = ParseDecimal("n/a")
	assert.Error(t, err)
}

func TestTokenRisk_Decimals(t *testing.T) {
	sell := "0.1"
	tok := TokenRisk{BuyTax: "0.02", SellTax: &sell}

	buy, err := tok.BuyTaxDecimal()
	require.NoError(t, err)
	assert.Equal(t, "0.02", buy.String())

	s, ok, err := tok.SellTaxDecimal()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0.1", s.String())

	tok.SellTax = nil
	_, ok, err = tok.SellTaxDecimal()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xea51801b8f5b88543ddad3d1727400c15b209d8f",
		NormalizeAddress("0xEa51801b8F5B88543DdaD3D1727400c15b209D8f"))

	solana := "So11111111111111111111111111111111111111112"
	assert.Equal(t, solana, NormalizeAddress(solana))

	assert.Equal(t, "0xa,0xb", JoinAddresses("0xa", "0xb"))
}

func TestTokenRiskMap_Lookup(t *testing.T) {
	m := TokenRiskMap{
		"0xea51801b8f5b88543ddad3d1727400c15b209d8f": {TokenSymbol: "GPT"},
		"So11111111111111111111111111111111111111112": {TokenSymbol: "SOL"},
	}

	tok, ok := m.Lookup("0xEA51801B8F5B88543DDAD3D1727400C15B209D8F")
	require.True(t, ok)
	assert.Equal(t, "GPT", tok.TokenSymbol)

	tok, ok = m.Lookup("So11111111111111111111111111111111111111112")
	require.True(t, ok)
	assert.Equal(t, "SOL", tok.TokenSymbol)

	_, ok = m.Lookup("so11111111111111111111111111111111111111112")
	assert.False(t, ok, "non-EVM keys are case sensitive")
}

func TestAddressRisk_HasContractAddress(t *testing.T) {
	empty, zero, one := StringFlag(""), NumberFlag(0), StringFlag("1")

	assert.False(t, AddressRisk{}.HasContractAddress())
	assert.False(t, AddressRisk{ContractAddress: &empty}.HasContractAddress())
	assert.True(t, AddressRisk{ContractAddress: &zero}.HasContractAddress())
	assert.True(t, AddressRisk{ContractAddress: &one}.HasContractAddress())
}
