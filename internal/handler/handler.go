package handler

import (
	"bytes"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/ternarybob/arbor"
	"github.com/valyala/fasthttp"

	"dcf-engine/internal/common"
	"dcf-engine/internal/engine"
	"dcf-engine/internal/model"
	"dcf-engine/internal/valuation"
)

const (
	pathRoot      = "/"
	pathHealth    = "/health"
	pathCalculate = "/dcf/calculate"
)

type Handler struct {
	logger  arbor.ILogger
	opts    engine.Options
	limiter *RateLimiter
}

// New builds the HTTP handler. Call Close to stop the rate limiter.
func New(config *common.Config, logger arbor.ILogger) *Handler {
	h := &Handler{
		logger: logger,
		opts:   engine.Options{DefaultRateFormat: config.Valuation.DefaultRateFormat},
	}
	if config.RateLimit.Enabled {
		h.limiter = NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst)
	}
	return h
}

func (h *Handler) Close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}

// Handle routes a request.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case pathCalculate:
		if !ctx.IsPost() {
			h.writeError(ctx, fasthttp.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed", nil)
			break
		}
		if h.limiter != nil && !h.limiter.Allow(ctx.RemoteIP().String()) {
			h.writeError(ctx, fasthttp.StatusTooManyRequests, model.CodeRateLimited, "Rate limit exceeded", nil)
			break
		}
		h.handleCalculate(ctx)
	case pathHealth:
		if !ctx.IsGet() && !ctx.IsHead() {
			h.writeError(ctx, fasthttp.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed", nil)
			break
		}
		h.writeJSON(ctx, fasthttp.StatusOK, model.HealthResponse{Status: "ok", Version: common.Version})
	case pathRoot:
		ctx.Redirect(pathHealth, fasthttp.StatusFound)
	default:
		h.writeError(ctx, fasthttp.StatusNotFound, model.CodeNotFound, "Not found: "+path, nil)
	}

	h.logger.Debug().
		Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", ctx.Response.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("Request handled")
}

var jsonContentType = []byte("application/json")

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	if ct := ctx.Request.Header.ContentType(); len(ct) > 0 && !bytes.HasPrefix(ct, jsonContentType) {
		h.writeError(ctx, fasthttp.StatusUnsupportedMediaType, model.CodeUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	var req model.ValuationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, model.CodeInvalidRequestBody, "Invalid request body: "+err.Error(), nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, model.CodeInvalidRequest, err.Error(), nil)
		return
	}

	resp, err := engine.Process(&req, h.opts)
	if err != nil {
		var failure *valuation.Failure
		if errors.As(err, &failure) {
			h.logger.Info().
				Str("error_code", string(failure.Code)).
				Str("field", failure.Field).
				Msg("Valuation rejected")
			h.writeError(ctx, fasthttp.StatusUnprocessableEntity, string(failure.Code), failure.Message, failure.Details())
			return
		}
		if errors.Is(err, engine.ErrNonFiniteResult) {
			h.logger.Warn().Err(err).Msg("Valuation overflowed")
			h.writeError(ctx, fasthttp.StatusUnprocessableEntity, model.CodeNonFiniteResult,
				"Inputs are too large: the valuation overflows double precision", nil)
			return
		}
		h.logger.Error().Err(err).Msg("Valuation failed")
		h.writeError(ctx, fasthttp.StatusInternalServerError, model.CodeInternal, "Internal error", nil)
		return
	}

	h.logger.Info().
		Str("calculation_id", resp.CalculationMetadata.CalculationID).
		Int("years", len(resp.Result.ForecastCashFlows)).
		Float64("enterprise_value", resp.Result.EnterpriseValue).
		Msg("Valuation computed")
	h.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
		ctx.Error(`{"status":500,"error_code":"INTERNAL_ERROR","message":"Internal error"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, status int, code, message string, details map[string]any) {
	h.writeJSON(ctx, status, model.ErrorResponse{
		Status:    status,
		ErrorCode: code,
		Message:   message,
		Details:   details,
	})
}
