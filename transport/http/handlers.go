package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/service"
)

// StatusClientClosedRequest is the non-standard code for a caller that went away
const StatusClientClosedRequest = 499

// RiskHandlers contains HTTP handlers for risk endpoints
type RiskHandlers struct {
	riskService *service.RiskService
}

// NewRiskHandlers creates new risk handlers
func NewRiskHandlers(riskService *service.RiskService) *RiskHandlers {
	return &RiskHandlers{
		riskService: riskService,
	}
}

// Chains lists the chains the remote supports
func (h *RiskHandlers) Chains(c *gin.Context) {
	env, err := h.riskService.SupportedChains(c.Request.Context())
	respond(c, env, err)
}

// Token handles token security lookups
func (h *RiskHandlers) Token(c *gin.Context) {
	addresses := c.QueryArray("addresses")
	env, err := h.riskService.TokenRisk(c.Request.Context(), c.Param("chain"), addresses...)
	respond(c, env, err)
}

// Address handles malicious address lookups
func (h *RiskHandlers) Address(c *gin.Context) {
	env, err := h.riskService.AddressRisk(c.Request.Context(), c.Param("address"), c.Query("chain_id"))
	respond(c, env, err)
}

// ApprovalV1 handles legacy contract approval lookups
func (h *RiskHandlers) ApprovalV1(c *gin.Context) {
	env, err := h.riskService.ApprovalSecurityV1(c.Request.Context(), c.Param("chain"), c.Query("addresses"))
	respond(c, env, err)
}

// ApprovalV2 handles per-standard approval lookups
func (h *RiskHandlers) ApprovalV2(c *gin.Context) {
	kind, err := goplus.ParseApprovalKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be erc20, erc721 or erc1155"})
		return
	}
	env, err := h.riskService.ApprovalSecurityV2(c.Request.Context(), kind, c.Param("chain"), c.Query("addresses"))
	respond(c, env, err)
}

// AbiDecode decodes transaction input data
func (h *RiskHandlers) AbiDecode(c *gin.Context) {
	var req goplus.AbiDecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	env, err := h.riskService.AbiDecode(c.Request.Context(), req)
	respond(c, env, err)
}

// Nft handles NFT collection lookups
func (h *RiskHandlers) Nft(c *gin.Context) {
	env, err := h.riskService.NftRisk(c.Request.Context(), c.Param("chain"), c.Query("contract"), c.Query("token_id"))
	respond(c, env, err)
}

// Phishing handles phishing site lookups
func (h *RiskHandlers) Phishing(c *gin.Context) {
	env, err := h.riskService.PhishingSiteRisk(c.Request.Context(), c.Query("url"))
	respond(c, env, err)
}

// RugPull handles rug-pull lookups
func (h *RiskHandlers) RugPull(c *gin.Context) {
	env, err := h.riskService.RugPullRisk(c.Request.Context(), c.Param("chain"), c.Query("contract"))
	respond(c, env, err)
}

// Status explains a remote status code
func (h *RiskHandlers) Status(c *gin.Context) {
	code, err := strconv.ParseUint(c.Param("code"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code must be an unsigned integer"})
		return
	}

	st := goplus.Interpret(uint32(code))
	c.JSON(http.StatusOK, gin.H{
		"code":        st.Code,
		"category":    st.Category.String(),
		"description": st.Description,
		"retryable":   st.Category.Retryable(),
	})
}

// Health reports liveness
func (h *RiskHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respond writes the envelope as received. Remote non-success codes are not
// errors at this layer and pass through with 200.
func respond[T any](c *gin.Context, env *goplus.Envelope[T], err error) {
	if err != nil {
		_ = c.Error(err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func writeError(c *gin.Context, err error) {
	var httpErr *goplus.HTTPStatusError

	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		c.JSON(StatusClientClosedRequest, gin.H{"error": "request cancelled"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "upstream timed out"})
	case errors.As(err, &httpErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream http error", "upstream_status": httpErr.StatusCode})
	case errors.Is(err, goplus.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unreachable"})
	case errors.Is(err, goplus.ErrDecode):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream response malformed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
