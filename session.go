package goplus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "goplus-go"
	storeTimeout     = 5 * time.Second
	maxResponseBytes = 16 << 20

	credentialKeyPrefix = "goplus:credential:"
)

// Option configures a Session.
type Option func(*Session)

// WithBaseURL points the session at another host (a proxy or a test server).
func WithBaseURL(baseURL string) Option {
	return func(s *Session) { s.router = NewRouter(baseURL) }
}

// WithHTTPClient replaces the default 30s-timeout http.Client.
func WithHTTPClient(client Doer) Option {
	return func(s *Session) {
		if client != nil {
			s.client = client
		}
	}
}

// WithKeys derives an optimistic credential from the key pair at construction.
func WithKeys(appKey, secret string) Option {
	return func(s *Session) {
		s.appKey = appKey
		s.secret = secret
	}
}

// WithStore persists exchanged credentials and reuses a cached one at construction.
func WithStore(store Store) Option {
	return func(s *Session) { s.store = store }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithRateLimit waits for a token before every call. rps <= 0 disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Session) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithUserAgent(ua string) Option {
	return func(s *Session) { s.userAgent = ua }
}

// withClock is used by tests to pin the signing and issue time.
func withClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session holds the current credential and issues remote calls with it.
// It is safe for concurrent use.
type Session struct {
	client    Doer
	router    Router
	logger    *zap.Logger
	metrics   *Metrics
	limiter   *rate.Limiter
	store     Store
	userAgent string
	appKey    string
	secret    string
	now       func() time.Time

	credential atomic.Pointer[Credential]
	refreshMu  sync.Mutex
}

// NewSession creates a session. Without WithKeys it is anonymous.
func NewSession(opts ...Option) *Session {
	s := &Session{
		client:    &http.Client{Timeout: defaultTimeout},
		router:    NewRouter(DefaultBaseURL),
		logger:    zap.NewNop(),
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.appKey == "" {
		return s
	}
	if cred, ok := s.loadCredential(); ok {
		s.credential.Store(&cred)
		return s
	}
	cred := NewSignedCredential(s.appKey, s.secret, s.now())
	s.credential.Store(&cred)
	return s
}

// Credential returns a snapshot of the current credential.
func (s *Session) Credential() (Credential, bool) {
	c := s.credential.Load()
	if c == nil {
		return Credential{}, false
	}
	return *c, true
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	return s.credential.Load() != nil
}

func (s *Session) SupportedChains(ctx context.Context) (*Envelope[[]Chain], error) {
	return call[[]Chain](ctx, s, OpSupportedChains, 0, "", nil, nil)
}

// TokenRisk accepts a single address or a comma-joined list (see JoinAddresses).
func (s *Session) TokenRisk(ctx context.Context, chainID, address string) (*Envelope[TokenRiskMap], error) {
	q := url.Values{"contract_addresses": {address}}
	return call[TokenRiskMap](ctx, s, OpTokenRisk, 0, chainID, q, nil)
}

// AddressRisk omits chain_id when chainID is empty.
func (s *Session) AddressRisk(ctx context.Context, address, chainID string) (*Envelope[AddressRisk], error) {
	var q url.Values
	if chainID != "" {
		q = url.Values{"chain_id": {chainID}}
	}
	return call[AddressRisk](ctx, s, OpAddressRisk, 0, address, q, nil)
}

func (s *Session) ApprovalSecurityV1(ctx context.Context, chainID, address string) (*Envelope[ApprovalV1], error) {
	q := url.Values{"contract_addresses": {address}}
	return call[ApprovalV1](ctx, s, OpApprovalV1, 0, chainID, q, nil)
}

func (s *Session) ApprovalSecurityV2(ctx context.Context, kind ApprovalKind, chainID, address string) (*Envelope[[]ApprovalV2], error) {
	q := url.Values{"addresses": {address}}
	return call[[]ApprovalV2](ctx, s, OpApprovalV2, kind, chainID, q, nil)
}

func (s *Session) AbiDecode(ctx context.Context, req AbiDecodeRequest) (*Envelope[AbiDecode], error) {
	return call[AbiDecode](ctx, s, OpAbiDecode, 0, "", nil, req)
}

// NftRisk omits token_id when tokenID is empty.
func (s *Session) NftRisk(ctx context.Context, chainID, contract, tokenID string) (*Envelope[NftRisk], error) {
	q := url.Values{"contract_addresses": {contract}}
	if tokenID != "" {
		q.Set("token_id", tokenID)
	}
	return call[NftRisk](ctx, s, OpNftRisk, 0, chainID, q, nil)
}

func (s *Session) PhishingSiteRisk(ctx context.Context, site string) (*Envelope[PhishingSite], error) {
	q := url.Values{"url": {site}}
	return call[PhishingSite](ctx, s, OpPhishingSite, 0, "", q, nil)
}

func (s *Session) RugPullRisk(ctx context.Context, chainID, contract string) (*Envelope[RugPullRisk], error) {
	q := url.Values{"contract_addresses": {contract}}
	return call[RugPullRisk](ctx, s, OpRugPull, 0, chainID, q, nil)
}

// RefreshCredential exchanges a signature for an access token. On code 1 the
// new credential replaces the old one atomically and is written to the store.
// Any other code returns the envelope together with a *StatusError and leaves
// the current credential in place.
func (s *Session) RefreshCredential(ctx context.Context, appKey, signature string, unix uint64) (*Envelope[AccessToken], error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	body := AccessTokenRequest{AppKey: appKey, Sign: signature, Time: unix}
	env, err := call[AccessToken](ctx, s, OpAccessToken, 0, "", nil, body)
	if err != nil {
		s.metrics.observeRefresh("error")
		s.logger.Warn("credential refresh failed", zap.String("app_key", appKey), zap.Error(err))
		return nil, err
	}
	if !env.Complete() {
		s.metrics.observeRefresh("rejected")
		s.logger.Warn("credential refresh rejected",
			zap.String("app_key", appKey),
			zap.Uint32("code", env.Code),
			zap.String("message", env.Message))
		return env, &StatusError{Code: env.Code, Message: env.Message, Category: env.Status().Category}
	}

	cred := &Credential{
		Token:     env.Result.AccessToken,
		IssuedAt:  s.now(),
		ExpiresIn: time.Duration(env.Result.ExpiresIn) * time.Second,
	}
	s.credential.Store(cred)
	s.metrics.observeRefresh("ok")
	s.logger.Info("credential refreshed",
		zap.String("app_key", appKey),
		zap.Time("expires_at", cred.ExpiresAt()))

	if s.store != nil {
		if err := s.saveCredential(ctx, appKey, *cred); err != nil {
			s.logger.Warn("credential not persisted", zap.String("app_key", appKey), zap.Error(err))
		}
	}
	return env, nil
}

// Authenticate signs with a freshly sampled clock and exchanges the signature.
func (s *Session) Authenticate(ctx context.Context, appKey, secret string) (*Envelope[AccessToken], error) {
	sig, unix := SignNow(appKey, secret, s.now())
	return s.RefreshCredential(ctx, appKey, sig, unix)
}

func (s *Session) loadCredential() (Credential, bool) {
	if s.store == nil {
		return Credential{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	value, err := s.store.Get(ctx, credentialKeyPrefix+s.appKey)
	if err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			s.logger.Warn("credential store read failed", zap.Error(err))
		}
		return Credential{}, false
	}
	cred, err := decodeCredential(value)
	if err != nil || cred.Token == "" || cred.Stale(s.now()) {
		return Credential{}, false
	}
	s.logger.Debug("using cached credential", zap.String("app_key", s.appKey))
	return cred, true
}

func (s *Session) saveCredential(ctx context.Context, appKey string, cred Credential) error {
	value, err := encodeCredential(cred)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, credentialKeyPrefix+appKey, value, cred.ExpiresIn)
}

func (s *Session) token() string {
	if c := s.credential.Load(); c != nil {
		return c.Token
	}
	return anonymousToken
}

// call performs one round trip and decodes the envelope. It never retries.
func call[T any](ctx context.Context, s *Session, op Operation, kind ApprovalKind, pathArg string, query url.Values, body any) (*Envelope[T], error) {
	start := time.Now()
	env, err := roundTrip[T](ctx, s, op, kind, pathArg, query, body)
	elapsed := time.Since(start)

	category := "error"
	if env != nil {
		category = env.Status().Category.String()
	}
	s.metrics.observeRequest(op, category, elapsed)

	if err != nil {
		s.logger.Debug("goplus request failed", zap.Stringer("op", op), zap.Duration("duration", elapsed), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("goplus request",
		zap.Stringer("op", op),
		zap.Uint32("code", env.Code),
		zap.Duration("duration", elapsed))
	return env, nil
}

func roundTrip[T any](ctx context.Context, s *Session, op Operation, kind ApprovalKind, pathArg string, query url.Values, body any) (*Envelope[T], error) {
	endpoint, err := s.router.Resolve(op, kind, pathArg)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op.String(), Err: err}
		}
	}

	target := endpoint.URL
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, endpoint.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("access_token", s.token())
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.logger.Debug("goplus request start", zap.Stringer("op", op), zap.String("url", endpoint.URL))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{Op: op.String(), StatusCode: resp.StatusCode, Body: data}
	}

	env, err := DecodeEnvelope[T](data)
	if err != nil {
		var decErr *DecodeError
		if errors.As(err, &decErr) {
			decErr.Op = op.String()
		}
		return nil, err
	}
	return env, nil
}
