package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/internal/retry"
	"github.com/layer-3/goplus/ports"
	"go.uber.org/zap"
)

// Options tunes the caller-side policies of RiskService
type Options struct {
	AppKey    string
	AppSecret string

	CacheTTL time.Duration

	PartialRetryAttempts int
	PartialRetryDelay    time.Duration

	ContractPollAttempts int
	ContractPollInterval time.Duration
}

// DefaultOptions follows the remote's guidance: partial data is complete after
// about 15 seconds, a fresh address gains contract_address after about 5.
func DefaultOptions() Options {
	return Options{
		CacheTTL:             5 * time.Minute,
		PartialRetryAttempts: 3,
		PartialRetryDelay:    15 * time.Second,
		ContractPollAttempts: 3,
		ContractPollInterval: 5 * time.Second,
	}
}

// RiskService wraps a goplus.Client with partial-data retries,
// contract_address polling, re-authentication and result caching
type RiskService struct {
	client   goplus.Client
	cache    ports.ResultCache
	eventPub ports.EventPublisher
	logger   *zap.Logger
	opts     Options
	now      func() time.Time
}

// NewRiskService creates a new risk service. cache and eventPub may be nil.
func NewRiskService(
	client goplus.Client,
	cache ports.ResultCache,
	eventPub ports.EventPublisher,
	logger *zap.Logger,
	opts Options,
) *RiskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskService{
		client:   client,
		cache:    cache,
		eventPub: eventPub,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// HasKeys reports whether the service can re-authenticate.
func (s *RiskService) HasKeys() bool {
	return s.opts.AppKey != "" && s.opts.AppSecret != ""
}

// Authenticate exchanges the configured key pair for an access token and
// announces the new credential.
func (s *RiskService) Authenticate(ctx context.Context, source core.RefreshSource) error {
	if !s.HasKeys() {
		return core.ErrNoKeys
	}

	env, err := s.client.Authenticate(ctx, s.opts.AppKey, s.opts.AppSecret)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	event := core.CredentialRefreshed{
		AppKey:    s.opts.AppKey,
		ExpiresAt: s.now().Add(time.Duration(env.Result.ExpiresIn) * time.Second),
		Source:    source,
	}
	if s.eventPub != nil {
		if err := s.eventPub.PublishCredentialRefreshed(ctx, event); err != nil {
			s.logger.Warn("failed to publish credential refresh", zap.Error(err))
		}
	}
	return nil
}

func (s *RiskService) SupportedChains(ctx context.Context) (*goplus.Envelope[[]goplus.Chain], error) {
	return fetch(ctx, s, cacheKey("chains"), s.partialPolicy(), notPartial[[]goplus.Chain],
		s.client.SupportedChains)
}

func (s *RiskService) TokenRisk(ctx context.Context, chainID string, addresses ...string) (*goplus.Envelope[goplus.TokenRiskMap], error) {
	if chainID == "" || len(addresses) == 0 {
		return nil, fmt.Errorf("%w: chain and at least one address are required", core.ErrInvalidRequest)
	}
	joined := goplus.JoinAddresses(addresses...)
	return fetch(ctx, s, cacheKey("token", chainID, joined), s.partialPolicy(), notPartial[goplus.TokenRiskMap],
		func(ctx context.Context) (*goplus.Envelope[goplus.TokenRiskMap], error) {
			return s.client.TokenRisk(ctx, chainID, joined)
		})
}

// AddressRisk polls until contract_address is resolved when chainID is given.
func (s *RiskService) AddressRisk(ctx context.Context, address, chainID string) (*goplus.Envelope[goplus.AddressRisk], error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", core.ErrInvalidRequest)
	}

	policy, done := s.partialPolicy(), notPartial[goplus.AddressRisk]
	if chainID != "" {
		policy = retry.Policy{Attempts: s.opts.ContractPollAttempts, Delay: s.opts.ContractPollInterval, Jitter: true}
		done = func(env *goplus.Envelope[goplus.AddressRisk]) bool {
			if !env.Usable() {
				return true
			}
			return env.Complete() && env.Result.HasContractAddress()
		}
	}

	return fetch(ctx, s, cacheKey("address", chainID, address), policy, done,
		func(ctx context.Context) (*goplus.Envelope[goplus.AddressRisk], error) {
			return s.client.AddressRisk(ctx, address, chainID)
		})
}

func (s *RiskService) ApprovalSecurityV1(ctx context.Context, chainID, address string) (*goplus.Envelope[goplus.ApprovalV1], error) {
	if chainID == "" || address == "" {
		return nil, fmt.Errorf("%w: chain and address are required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, cacheKey("approval_v1", chainID, address), s.partialPolicy(), notPartial[goplus.ApprovalV1],
		func(ctx context.Context) (*goplus.Envelope[goplus.ApprovalV1], error) {
			return s.client.ApprovalSecurityV1(ctx, chainID, address)
		})
}

func (s *RiskService) ApprovalSecurityV2(ctx context.Context, kind goplus.ApprovalKind, chainID, address string) (*goplus.Envelope[[]goplus.ApprovalV2], error) {
	if chainID == "" || address == "" {
		return nil, fmt.Errorf("%w: chain and address are required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, cacheKey("approval_v2", kind.String(), chainID, address), s.partialPolicy(), notPartial[[]goplus.ApprovalV2],
		func(ctx context.Context) (*goplus.Envelope[[]goplus.ApprovalV2], error) {
			return s.client.ApprovalSecurityV2(ctx, kind, chainID, address)
		})
}

// AbiDecode is never cached: calldata is effectively unique per request.
func (s *RiskService) AbiDecode(ctx context.Context, req goplus.AbiDecodeRequest) (*goplus.Envelope[goplus.AbiDecode], error) {
	if req.ChainID == "" || req.Data == "" {
		return nil, fmt.Errorf("%w: chain_id and data are required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, "", s.partialPolicy(), notPartial[goplus.AbiDecode],
		func(ctx context.Context) (*goplus.Envelope[goplus.AbiDecode], error) {
			return s.client.AbiDecode(ctx, req)
		})
}

func (s *RiskService) NftRisk(ctx context.Context, chainID, contract, tokenID string) (*goplus.Envelope[goplus.NftRisk], error) {
	if chainID == "" || contract == "" {
		return nil, fmt.Errorf("%w: chain and contract are required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, cacheKey("nft", chainID, contract, tokenID), s.partialPolicy(), notPartial[goplus.NftRisk],
		func(ctx context.Context) (*goplus.Envelope[goplus.NftRisk], error) {
			return s.client.NftRisk(ctx, chainID, contract, tokenID)
		})
}

func (s *RiskService) PhishingSiteRisk(ctx context.Context, site string) (*goplus.Envelope[goplus.PhishingSite], error) {
	if site == "" {
		return nil, fmt.Errorf("%w: url is required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, cacheKey("phishing", site), s.partialPolicy(), notPartial[goplus.PhishingSite],
		func(ctx context.Context) (*goplus.Envelope[goplus.PhishingSite], error) {
			return s.client.PhishingSiteRisk(ctx, site)
		})
}

func (s *RiskService) RugPullRisk(ctx context.Context, chainID, contract string) (*goplus.Envelope[goplus.RugPullRisk], error) {
	if chainID == "" || contract == "" {
		return nil, fmt.Errorf("%w: chain and contract are required", core.ErrInvalidRequest)
	}
	return fetch(ctx, s, cacheKey("rugpull", chainID, contract), s.partialPolicy(), notPartial[goplus.RugPullRisk],
		func(ctx context.Context) (*goplus.Envelope[goplus.RugPullRisk], error) {
			return s.client.RugPullRisk(ctx, chainID, contract)
		})
}

func (s *RiskService) partialPolicy() retry.Policy {
	return retry.Policy{Attempts: s.opts.PartialRetryAttempts, Delay: s.opts.PartialRetryDelay}
}

func notPartial[T any](env *goplus.Envelope[T]) bool {
	return !env.Partial()
}

// errNotDone makes the retry loop try again; it never escapes fetch.
var errNotDone = errors.New("result not final")

// fetch serves key from the cache, otherwise calls the remote until done
// accepts the envelope or the policy runs out. When it runs out the last
// envelope is returned as is. Only complete, accepted envelopes are cached.
func fetch[T any](
	ctx context.Context,
	s *RiskService,
	key string,
	policy retry.Policy,
	done func(*goplus.Envelope[T]) bool,
	call func(context.Context) (*goplus.Envelope[T], error),
) (*goplus.Envelope[T], error) {
	if cached, ok := cacheGet[T](ctx, s, key); ok {
		return cached, nil
	}

	var (
		last     *goplus.Envelope[T]
		reauthed bool
	)
	err := policy.Do(ctx, func() error {
		env, err := call(ctx)
		if err != nil {
			return retry.Permanent(err)
		}

		if needsReauth(env.Code) && !reauthed && s.HasKeys() {
			reauthed = true
			s.logger.Info("remote rejected credential, re-authenticating", zap.Uint32("code", env.Code))
			if err := s.Authenticate(ctx, core.RefreshReauth); err != nil {
				s.logger.Warn("re-authentication failed", zap.Error(err))
			} else if env, err = call(ctx); err != nil {
				return retry.Permanent(err)
			}
		}

		last = env
		if !done(env) {
			s.logger.Debug("result not final, waiting", zap.String("key", key), zap.Uint32("code", env.Code))
			return errNotDone
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNotDone) {
		return nil, err
	}

	if err == nil && last.Complete() {
		cacheSet(ctx, s, key, last)
	}
	return last, nil
}

func needsReauth(code uint32) bool {
	switch code {
	case goplus.StatusSignatureExpired, goplus.StatusWrongSignature, goplus.StatusTokenNotFound:
		return true
	}
	return false
}

func cacheKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = goplus.NormalizeAddress(p)
	}
	return strings.Join(parts, ":")
}

func cacheGet[T any](ctx context.Context, s *RiskService, key string) (*goplus.Envelope[T], bool) {
	if s.cache == nil || key == "" || s.opts.CacheTTL <= 0 {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, core.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	env, err := goplus.DecodeEnvelope[T](data)
	if err != nil {
		s.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return env, true
}

func cacheSet[T any](ctx context.Context, s *RiskService, key string, env *goplus.Envelope[T]) {
	if s.cache == nil || key == "" || s.opts.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
