package goplus

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public GoPlus API host
const DefaultBaseURL = "https://api.gopluslabs.io"

// Operation identifies a remote call.
type Operation int

const (
	OpSupportedChains Operation = iota + 1
	OpTokenRisk
	OpAddressRisk
	OpApprovalV1
	OpApprovalV2
	OpAbiDecode
	OpNftRisk
	OpPhishingSite
	OpRugPull
	OpAccessToken
)

// String returns the operation name used in logs and metrics.
func (o Operation) String() string {
	switch o {
	case OpSupportedChains:
		return "supported_chains"
	case OpTokenRisk:
		return "token_risk"
	case OpAddressRisk:
		return "address_risk"
	case OpApprovalV1:
		return "approval_security_v1"
	case OpApprovalV2:
		return "approval_security_v2"
	case OpAbiDecode:
		return "abi_decode"
	case OpNftRisk:
		return "nft_risk"
	case OpPhishingSite:
		return "phishing_site_risk"
	case OpRugPull:
		return "rug_pull_risk"
	case OpAccessToken:
		return "refresh_credential"
	default:
		return "unknown"
	}
}

// ApprovalKind selects the v2 approval resource family.
type ApprovalKind int

const (
	ApprovalERC20 ApprovalKind = iota + 1
	ApprovalERC721
	ApprovalERC1155
)

// String returns the lower-case token standard name.
func (k ApprovalKind) String() string {
	switch k {
	case ApprovalERC20:
		return "erc20"
	case ApprovalERC721:
		return "erc721"
	case ApprovalERC1155:
		return "erc1155"
	default:
		return "unknown"
	}
}

// ParseApprovalKind accepts "erc20", "erc721" or "erc1155" in any case.
func ParseApprovalKind(s string) (ApprovalKind, error) {
	switch strings.ToLower(s) {
	case "erc20":
		return ApprovalERC20, nil
	case "erc721":
		return ApprovalERC721, nil
	case "erc1155":
		return ApprovalERC1155, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownApprovalKind)
}

// Endpoint is a resolved verb and URL.
type Endpoint struct {
	Method string
	URL    string
}

// Router builds endpoint URLs. It never interprets chain IDs or addresses.
type Router struct {
	baseURL string
}

// NewRouter creates a router rooted at baseURL (scheme and host, no /api suffix).
func NewRouter(baseURL string) Router {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Router{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r Router) v1(path string) string { return r.baseURL + "/api/v1/" + path }
func (r Router) v2(path string) string { return r.baseURL + "/api/v2/" + path }

// Resolve maps an operation to its endpoint. pathArg is the chain ID for
// chain-scoped operations and the address for OpAddressRisk; other operations ignore it.
// kind is only consulted for OpApprovalV2.
func (r Router) Resolve(op Operation, kind ApprovalKind, pathArg string) (Endpoint, error) {
	seg := url.PathEscape(pathArg)

	switch op {
	case OpSupportedChains:
		return Endpoint{http.MethodGet, r.v1("supported_chains")}, nil
	case OpTokenRisk:
		return Endpoint{http.MethodGet, r.v1("token_security/" + seg)}, nil
	case OpAddressRisk:
		return Endpoint{http.MethodGet, r.v1("address_security/" + seg)}, nil
	case OpApprovalV1:
		return Endpoint{http.MethodGet, r.v1("approval_security/" + seg)}, nil
	case OpApprovalV2:
		switch kind {
		case ApprovalERC20:
			return Endpoint{http.MethodGet, r.v2("token_approval_security/" + seg)}, nil
		case ApprovalERC721:
			return Endpoint{http.MethodGet, r.v2("nft721_approval_security/" + seg)}, nil
		case ApprovalERC1155:
			return Endpoint{http.MethodGet, r.v2("nft1155_approval_security/" + seg)}, nil
		}
		return Endpoint{}, fmt.Errorf("%s: %w", kind, ErrUnknownApprovalKind)
	case OpAbiDecode:
		return Endpoint{http.MethodPost, r.v1("abi/input_decode")}, nil
	case OpNftRisk:
		return Endpoint{http.MethodGet, r.v1("nft_security/" + seg)}, nil
	case OpPhishingSite:
		return Endpoint{http.MethodGet, r.v1("phishing_site")}, nil
	case OpRugPull:
		return Endpoint{http.MethodGet, r.v1("rugpull_detecting/" + seg)}, nil
	case OpAccessToken:
		return Endpoint{http.MethodPost, r.v1("token")}, nil
	}
	return Endpoint{}, fmt.Errorf("%d: %w", int(op), ErrUnknownOperation)
}
