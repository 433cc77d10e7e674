package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/adapters/store"
	"github.com/layer-3/goplus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0xea51801b8f5b88543ddad3d1727400c15b209d8f"

// fakeClient scripts remote envelopes per operation and counts calls.
type fakeClient struct {
	mu sync.Mutex

	tokenCodes   []uint32
	addressCodes []uint32
	// addressResolvedAt is the call on which contract_address first appears (1-based)
	addressResolvedAt int
	// addressPending is returned as contract_address before it resolves
	addressPending *goplus.Flag
	chainsErr         error
	authErr           error
	tokenFixture      []byte

	calls     map[string]int
	authCalls int
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	fixture, err := os.ReadFile(filepath.Join("..", "testdata", "token_security.json"))
	require.NoError(t, err)
	return &fakeClient{calls: map[string]int{}, tokenFixture: fixture}
}

func (f *fakeClient) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeClient) next(op string, codes []uint32) (int, uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	n := f.calls[op]
	if len(codes) == 0 {
		return n, goplus.StatusComplete
	}
	if n > len(codes) {
		return n, codes[len(codes)-1]
	}
	return n, codes[n-1]
}

func envelope[T any](code uint32, result T) *goplus.Envelope[T] {
	return &goplus.Envelope[T]{Code: code, Message: goplus.Describe(code), Result: result}
}

func (f *fakeClient) SupportedChains(ctx context.Context) (*goplus.Envelope[[]goplus.Chain], error) {
	f.next("chains", nil)
	if f.chainsErr != nil {
		return nil, f.chainsErr
	}
	return envelope(goplus.StatusComplete, []goplus.Chain{{Name: "Ethereum", ID: "1"}}), nil
}

func (f *fakeClient) TokenRisk(ctx context.Context, chainID, address string) (*goplus.Envelope[goplus.TokenRiskMap], error) {
	_, code := f.next("token", f.tokenCodes)
	if code != goplus.StatusComplete && code != goplus.StatusPartial {
		return envelope(code, goplus.TokenRiskMap{}), nil
	}
	env, err := goplus.DecodeEnvelope[goplus.TokenRiskMap](f.tokenFixture)
	if err != nil {
		return nil, err
	}
	env.Code = code
	return env, nil
}

func (f *fakeClient) AddressRisk(ctx context.Context, address, chainID string) (*goplus.Envelope[goplus.AddressRisk], error) {
	n, code := f.next("address", f.addressCodes)
	var risk goplus.AddressRisk
	if f.addressResolvedAt > 0 && n >= f.addressResolvedAt {
		flag := goplus.NumberFlag(0)
		risk.ContractAddress = &flag
	} else {
		risk.ContractAddress = f.addressPending
	}
	return envelope(code, risk), nil
}

func (f *fakeClient) ApprovalSecurityV1(ctx context.Context, chainID, address string) (*goplus.Envelope[goplus.ApprovalV1], error) {
	f.next("approval_v1", nil)
	return envelope(goplus.StatusComplete, goplus.ApprovalV1{}), nil
}

func (f *fakeClient) ApprovalSecurityV2(ctx context.Context, kind goplus.ApprovalKind, chainID, address string) (*goplus.Envelope[[]goplus.ApprovalV2], error) {
	f.next("approval_v2:"+kind.String(), nil)
	return envelope(goplus.StatusComplete, []goplus.ApprovalV2{}), nil
}

func (f *fakeClient) AbiDecode(ctx context.Context, req goplus.AbiDecodeRequest) (*goplus.Envelope[goplus.AbiDecode], error) {
	f.next("abi", nil)
	return envelope(goplus.StatusComplete, goplus.AbiDecode{}), nil
}

func (f *fakeClient) NftRisk(ctx context.Context, chainID, contract, tokenID string) (*goplus.Envelope[goplus.NftRisk], error) {
	f.next("nft", nil)
	return envelope(goplus.StatusComplete, goplus.NftRisk{}), nil
}

func (f *fakeClient) PhishingSiteRisk(ctx context.Context, url string) (*goplus.Envelope[goplus.PhishingSite], error) {
	f.next("phishing", nil)
	return envelope(goplus.StatusComplete, goplus.PhishingSite{PhishingSite: goplus.NumberFlag(1)}), nil
}

func (f *fakeClient) RugPullRisk(ctx context.Context, chainID, contract string) (*goplus.Envelope[goplus.RugPullRisk], error) {
	f.next("rugpull", nil)
	return envelope(goplus.StatusComplete, goplus.RugPullRisk{ContractName: "x"}), nil
}

func (f *fakeClient) RefreshCredential(ctx context.Context, appKey, signature string, unix uint64) (*goplus.Envelope[goplus.AccessToken], error) {
	return f.Authenticate(ctx, appKey, "")
}

func (f *fakeClient) Authenticate(ctx context.Context, appKey, secret string) (*goplus.Envelope[goplus.AccessToken], error) {
	f.mu.Lock()
	f.authCalls++
	f.mu.Unlock()
	if f.authErr != nil {
		return nil, f.authErr
	}
	return envelope(goplus.StatusComplete, goplus.AccessToken{AccessToken: "fresh", ExpiresIn: 3600}), nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []core.CredentialRefreshed
}

func (p *recordingPublisher) PublishCredentialRefreshed(ctx context.Context, event core.CredentialRefreshed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func testOptions() Options {
	return Options{
		AppKey:               "key",
		AppSecret:            "secret",
		CacheTTL:             time.Minute,
		PartialRetryAttempts: 3,
		PartialRetryDelay:    time.Millisecond,
		ContractPollAttempts: 3,
		ContractPollInterval: time.Millisecond,
	}
}

func TestTokenRisk_PartialRetriedUntilComplete(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusPartial, goplus.StatusComplete}
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)
	assert.True(t, env.Complete())
	assert.Equal(t, 2, client.count("token"))
}

func TestTokenRisk_PartialGivesUpWithLastEnvelope(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusPartial}
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())

	env, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)
	assert.True(t, env.Partial())
	assert.True(t, env.Usable())
	assert.Equal(t, 3, client.count("token"))
	assert.Equal(t, 0, cache.Len(), "partial results are not cached")
}

func TestTokenRisk_CachesCompleteResults(t *testing.T) {
	client := newFakeClient(t)
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())

	first, err := svc.TokenRisk(context.Background(), "56", "0xEa51801b8F5B88543DdaD3D1727400c15b209D8f")
	require.NoError(t, err)

	second, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)

	assert.Equal(t, 1, client.count("token"), "second lookup is served from cache")
	assert.Equal(t, 1, cache.Len())
	tok, ok := second.Result.Lookup(testAddress)
	require.True(t, ok)
	assert.Equal(t, "GPT", tok.TokenSymbol)
	assert.Equal(t, "0", tok.IsHoneypot.String())
	assert.Equal(t, first.Code, second.Code)
}

func TestTokenRisk_ClientErrorsAreNotCachedOrRetried(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusAddressFormat}
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())

	env, err := svc.TokenRisk(context.Background(), "56", "nope")
	require.NoError(t, err)
	assert.Equal(t, goplus.StatusAddressFormat, env.Code)
	assert.Error(t, env.Err())
	assert.Equal(t, 1, client.count("token"))
	assert.Equal(t, 0, cache.Len())
}

func TestTokenRisk_InvalidRequest(t *testing.T) {
	svc := NewRiskService(newFakeClient(t), nil, nil, nil, testOptions())

	_, err := svc.TokenRisk(context.Background(), "", testAddress)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)

	_, err = svc.TokenRisk(context.Background(), "56")
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
}

func TestFetch_ReauthenticatesOnce(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusTokenNotFound, goplus.StatusComplete}
	pub := &recordingPublisher{}
	svc := NewRiskService(client, nil, pub, nil, testOptions())
	now := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return now }

	env, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)
	assert.True(t, env.Complete())
	assert.Equal(t, 1, client.authCalls)
	assert.Equal(t, 2, client.count("token"))

	require.Len(t, pub.events, 1)
	assert.Equal(t, core.RefreshReauth, pub.events[0].Source)
	assert.Equal(t, "key", pub.events[0].AppKey)
	assert.True(t, pub.events[0].ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestFetch_ReauthOnlyOncePerLookup(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusWrongSignature}
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)
	assert.Equal(t, goplus.StatusWrongSignature, env.Code)
	assert.Equal(t, 1, client.authCalls)
	assert.Equal(t, 2, client.count("token"))
}

func TestFetch_NoReauthWithoutKeys(t *testing.T) {
	client := newFakeClient(t)
	client.tokenCodes = []uint32{goplus.StatusTokenNotFound}
	opts := testOptions()
	opts.AppKey, opts.AppSecret = "", ""
	svc := NewRiskService(client, nil, nil, nil, opts)

	env, err := svc.TokenRisk(context.Background(), "56", testAddress)
	require.NoError(t, err)
	assert.Equal(t, goplus.StatusTokenNotFound, env.Code)
	assert.Equal(t, 0, client.authCalls)
}

func TestFetch_TransportErrorIsNotRetried(t *testing.T) {
	client := newFakeClient(t)
	client.chainsErr = &goplus.TransportError{Op: "supported_chains", Err: errors.New("dial failed")}
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.SupportedChains(context.Background())
	assert.Nil(t, env)
	assert.ErrorIs(t, err, goplus.ErrTransport)
	assert.Equal(t, 1, client.count("chains"))
}

func TestAddressRisk_PollsForContractAddress(t *testing.T) {
	client := newFakeClient(t)
	client.addressResolvedAt = 2
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.AddressRisk(context.Background(), testAddress, "1")
	require.NoError(t, err)
	assert.True(t, env.Result.HasContractAddress())
	assert.Equal(t, 2, client.count("address"))
}

func TestAddressRisk_EmptyContractAddressKeepsPolling(t *testing.T) {
	client := newFakeClient(t)
	empty := goplus.StringFlag("")
	client.addressPending = &empty
	client.addressResolvedAt = 2
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())

	env, err := svc.AddressRisk(context.Background(), testAddress, "1")
	require.NoError(t, err)
	assert.True(t, env.Result.HasContractAddress())
	assert.Equal(t, "0", env.Result.ContractAddress.String())
	assert.Equal(t, 2, client.count("address"))
	assert.Equal(t, 1, cache.Len())
}

func TestAddressRisk_PollGivesUp(t *testing.T) {
	client := newFakeClient(t)
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())

	env, err := svc.AddressRisk(context.Background(), testAddress, "1")
	require.NoError(t, err)
	assert.False(t, env.Result.HasContractAddress())
	assert.Equal(t, 3, client.count("address"))
	assert.Equal(t, 0, cache.Len(), "unresolved results are not cached")
}

func TestAddressRisk_NoChainDoesNotPoll(t *testing.T) {
	client := newFakeClient(t)
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.AddressRisk(context.Background(), testAddress, "")
	require.NoError(t, err)
	assert.False(t, env.Result.HasContractAddress())
	assert.Equal(t, 1, client.count("address"))
}

func TestAddressRisk_FailureCodeStopsPolling(t *testing.T) {
	client := newFakeClient(t)
	client.addressCodes = []uint32{goplus.StatusChainUnsupported}
	svc := NewRiskService(client, nil, nil, nil, testOptions())

	env, err := svc.AddressRisk(context.Background(), testAddress, "999")
	require.NoError(t, err)
	assert.Equal(t, goplus.StatusChainUnsupported, env.Code)
	assert.Equal(t, 1, client.count("address"))
}

func TestApprovalSecurityV2_CacheKeyIncludesKind(t *testing.T) {
	client := newFakeClient(t)
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())
	ctx := context.Background()

	for _, kind := range []goplus.ApprovalKind{goplus.ApprovalERC20, goplus.ApprovalERC721, goplus.ApprovalERC20} {
		_, err := svc.ApprovalSecurityV2(ctx, kind, "1", testAddress)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, client.count("approval_v2:erc20"))
	assert.Equal(t, 1, client.count("approval_v2:erc721"))
}

func TestAbiDecode_NeverCached(t *testing.T) {
	client := newFakeClient(t)
	cache := store.NewMemoryCache()
	svc := NewRiskService(client, cache, nil, nil, testOptions())
	req := goplus.AbiDecodeRequest{ChainID: "1", Data: "0x414bf389"}

	for i := 0; i < 2; i++ {
		_, err := svc.AbiDecode(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, client.count("abi"))
	assert.Equal(t, 0, cache.Len())

	_, err := svc.AbiDecode(context.Background(), goplus.AbiDecodeRequest{ChainID: "1"})
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
}

func TestAuthenticate(t *testing.T) {
	client := newFakeClient(t)
	pub := &recordingPublisher{}
	svc := NewRiskService(client, nil, pub, nil, testOptions())

	require.NoError(t, svc.Authenticate(context.Background(), core.RefreshStartup))
	require.Len(t, pub.events, 1)
	assert.Equal(t, core.RefreshStartup, pub.events[0].Source)

	client.authErr = &goplus.StatusError{Code: goplus.StatusAppKeyMissing, Category: goplus.CategoryAuthError}
	err := svc.Authenticate(context.Background(), core.RefreshManual)
	assert.ErrorIs(t, err, goplus.ErrRemoteStatus)
	assert.Len(t, pub.events, 1)

	noKeys := NewRiskService(client, nil, nil, nil, Options{})
	assert.ErrorIs(t, noKeys.Authenticate(context.Background(), core.RefreshManual), core.ErrNoKeys)
}

func TestCacheKey_NormalizesAddresses(t *testing.T) {
	assert.Equal(t,
		"token:56:"+testAddress,
		cacheKey("token", "56", "0xEa51801b8F5B88543DdaD3D1727400c15b209D8f"))
}
