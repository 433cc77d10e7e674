package goplus

import (
	"context"
	"net/http"
	"time"
)

// Client is the set of remote operations a Session exposes.
type Client interface {
	SupportedChains(ctx context.Context) (*Envelope[[]Chain], error)
	TokenRisk(ctx context.Context, chainID, address string) (*Envelope[TokenRiskMap], error)
	AddressRisk(ctx context.Context, address, chainID string) (*Envelope[AddressRisk], error)
	ApprovalSecurityV1(ctx context.Context, chainID, address string) (*Envelope[ApprovalV1], error)
	ApprovalSecurityV2(ctx context.Context, kind ApprovalKind, chainID, address string) (*Envelope[[]ApprovalV2], error)
	AbiDecode(ctx context.Context, req AbiDecodeRequest) (*Envelope[AbiDecode], error)
	NftRisk(ctx context.Context, chainID, contract, tokenID string) (*Envelope[NftRisk], error)
	PhishingSiteRisk(ctx context.Context, url string) (*Envelope[PhishingSite], error)
	RugPullRisk(ctx context.Context, chainID, contract string) (*Envelope[RugPullRisk], error)

	// RefreshCredential exchanges a signature for an access token and swaps it in on success
	RefreshCredential(ctx context.Context, appKey, signature string, unix uint64) (*Envelope[AccessToken], error)

	// Authenticate signs with the current time and calls RefreshCredential
	Authenticate(ctx context.Context, appKey, secret string) (*Envelope[AccessToken], error)
}

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Store persists credentials between processes sharing a key pair.
type Store interface {
	// Set adds a key with a value and expiration time
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves a value by key
	Get(ctx context.Context, key string) (string, error)
}

var _ Client = (*Session)(nil)
