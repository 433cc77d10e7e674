package goplus

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Resolve(t *testing.T) {
	r := NewRouter("https://api.example.test/")

	tests := []struct {
		op     Operation
		kind   ApprovalKind
		arg    string
		method string
		url    string
	}{
		{OpSupportedChains, 0, "", http.MethodGet, "https://api.example.test/api/v1/supported_chains"},
		{OpTokenRisk, 0, "56", http.MethodGet, "https://api.example.test/api/v1/token_security/56"},
		{OpAddressRisk, 0, "0xabc", http.MethodGet, "https://api.example.test/api/v1/address_security/0xabc"},
		{OpApprovalV1, 0, "1", http.MethodGet, "https://api.example.test/api/v1/approval_security/1"},
		{OpApprovalV2, ApprovalERC20, "1", http.MethodGet, "https://api.example.test/api/v2/token_approval_security/1"},
		{OpApprovalV2, ApprovalERC721, "1", http.MethodGet, "https://api.example.test/api/v2/nft721_approval_security/1"},
		{OpApprovalV2, ApprovalERC1155, "1", http.MethodGet, "https://api.example.test/api/v2/nft1155_approval_security/1"},
		{OpAbiDecode, 0, "", http.MethodPost, "https://api.example.test/api/v1/abi/input_decode"},
		{OpNftRisk, 0, "1", http.MethodGet, "https://api.example.test/api/v1/nft_security/1"},
		{OpPhishingSite, 0, "", http.MethodGet, "https://api.example.test/api/v1/phishing_site"},
		{OpRugPull, 0, "1", http.MethodGet, "https://api.example.test/api/v1/rugpull_detecting/1"},
		{OpAccessToken, 0, "", http.MethodPost, "https://api.example.test/api/v1/token"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String()+"/"+tt.kind.String(), func(t *testing.T) {
			ep, err := r.Resolve(tt.op, tt.kind, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.method, ep.Method)
			assert.Equal(t, tt.url, ep.URL)
		})
	}
}

func TestRouter_ApprovalPrefixesDistinct(t *testing.T) {
	r := NewRouter("")
	seen := map[string]ApprovalKind{}
	for _, kind := range []ApprovalKind{ApprovalERC20, ApprovalERC721, ApprovalERC1155} {
		ep, err := r.Resolve(OpApprovalV2, kind, "56")
		require.NoError(t, err)
		_, dup := seen[ep.URL]
		assert.False(t, dup, "duplicate URL %s", ep.URL)
		seen[ep.URL] = kind
	}
	assert.Len(t, seen, 3)
}

func TestRouter_EscapesPathSegments(t *testing.T) {
	ep, err := NewRouter("").Resolve(OpTokenRisk, 0, "../x y")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/api/v1/token_security/..%2Fx%20y", ep.URL)
}

func TestRouter_Unknown(t *testing.T) {
	r := NewRouter("")

	_, err := r.Resolve(OpApprovalV2, ApprovalKind(42), "1")
	assert.ErrorIs(t, err, ErrUnknownApprovalKind)

	_, err = r.Resolve(Operation(99), 0, "")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseApprovalKind(t *testing.T) {
	k, err := ParseApprovalKind("ERC721")
	require.NoError(t, err)
	assert.Equal(t, ApprovalERC721, k)

	_, err = ParseApprovalKind("erc777")
	assert.ErrorIs(t, err, ErrUnknownApprovalKind)
}
