// Package handlers implements the HTTP API: splitting, relaying, webhook
// proxying, and the browser preview.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chunkrelay/chunkrelay/internal/chunker"
	"github.com/chunkrelay/chunkrelay/internal/config"
	"github.com/chunkrelay/chunkrelay/internal/delivery"
)

// RelayHandler exposes the split/relay API: split Markdown into chunks,
// forward them to the configured Discord target, or act as a drop-in
// splitting proxy in front of an arbitrary Discord webhook.
type RelayHandler struct {
	limits      config.LimitsConfig
	deliveryCfg config.DeliveryConfig
	deliverer   *delivery.Deliverer // nil when no [discord] target is configured
	logger      *slog.Logger
}

// NewRelayHandler creates a RelayHandler. deliverer may be nil; the
// /api/relay route then responds 503 while splitting stays available.
func NewRelayHandler(log *slog.Logger, cfg config.Config, deliverer *delivery.Deliverer) *RelayHandler {
	return &RelayHandler{
		limits:      cfg.Limits,
		deliveryCfg: cfg.Delivery,
		deliverer:   deliverer,
		logger:      log.With(slog.String("handler", "relay")),
	}
}

// Register mounts the relay routes on the Echo instance.
func (h *RelayHandler) Register(e *echo.Echo) {
	e.POST("/api/split", h.SplitContent)
	e.POST("/api/count", h.CountLines)
	e.POST("/api/relay", h.Relay)
	e.POST("/api/webhooks/:id/:token", h.WebhookProxy)
}

type splitRequest struct {
	Content  string `json:"content"`
	MaxChars int    `json:"max_chars"`
	// MaxLines is a pointer so an explicit 0 ("no line limit") can be told
	// apart from an omitted field.
	MaxLines *int   `json:"max_lines"`
	Username string `json:"username"`
}

type splitResponse struct {
	Chunks        []string `json:"chunks"`
	Count         int      `json:"count"`
	ReadableLines int      `json:"readable_lines"`
}

// bindRequest decodes and validates the request body and resolves the
// effective chunker limits.
func (h *RelayHandler) bindRequest(c echo.Context) (splitRequest, chunker.Config, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType != "" && !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return splitRequest{}, chunker.Config{}, echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}

	var req splitRequest
	if err := c.Bind(&req); err != nil {
		return splitRequest{}, chunker.Config{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// The chunker expects \n-delimited lines; normalize here, not there.
	req.Content = strings.ReplaceAll(req.Content, "\r\n", "\n")

	cfg := chunker.Config{
		MaxChars: h.limits.MaxChars,
		MaxLines: h.limits.MaxLines,
	}
	if req.MaxChars != 0 {
		cfg.MaxChars = req.MaxChars
	}
	if req.MaxLines != nil {
		cfg.MaxLines = *req.MaxLines
	}
	if err := config.ValidateLimits(cfg.MaxChars, cfg.MaxLines); err != nil {
		return splitRequest{}, chunker.Config{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, cfg, nil
}

func (h *RelayHandler) split(c echo.Context) (splitRequest, []string, error) {
	req, cfg, err := h.bindRequest(c)
	if err != nil {
		return splitRequest{}, nil, err
	}
	chunks, err := chunker.Split(req.Content, cfg)
	if err != nil {
		// Fence-overhead and hard-limit violations both mean this content
		// cannot be chunked under the requested limits.
		return splitRequest{}, nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, chunks, nil
}

// SplitContent splits the posted content and returns the chunks without
// delivering anything.
func (h *RelayHandler) SplitContent(c echo.Context) error {
	req, chunks, err := h.split(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, splitResponse{
		Chunks:        chunks,
		Count:         len(chunks),
		ReadableLines: chunker.CountReadableLines(req.Content),
	})
}

// CountLines returns the readable-line count of the posted content, for
// clients that want limit feedback without splitting.
func (h *RelayHandler) CountLines(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType != "" && !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}
	var req splitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	content := strings.ReplaceAll(req.Content, "\r\n", "\n")
	return c.JSON(http.StatusOK, map[string]int{
		"readable_lines": chunker.CountReadableLines(content),
	})
}

// Relay splits the posted content and forwards every chunk, in order, to
// the Discord target from the service configuration.
func (h *RelayHandler) Relay(c echo.Context) error {
	if h.deliverer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no discord target configured")
	}
	_, chunks, err := h.split(c)
	if err != nil {
		return err
	}
	jobID, err := h.deliverer.Deliver(c.Request().Context(), chunks)
	if err != nil {
		h.logger.Error("relay delivery failed", slog.String("job_id", jobID), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"chunks": len(chunks),
	})
}

// WebhookProxy is a drop-in replacement for a Discord webhook URL: the
// request path carries the webhook ID and token, the body the content. The
// content is split and forwarded to the real webhook chunk by chunk.
func (h *RelayHandler) WebhookProxy(c echo.Context) error {
	req, chunks, err := h.split(c)
	if err != nil {
		return err
	}
	poster, err := delivery.NewPoster(config.DiscordConfig{
		WebhookURL: "https://discord.com/api/webhooks/" + c.Param("id") + "/" + c.Param("token"),
		Username:   req.Username,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	deliverer := delivery.New(poster, h.deliveryCfg, h.logger)
	jobID, err := deliverer.Deliver(c.Request().Context(), chunks)
	if err != nil {
		h.logger.Error("webhook proxy delivery failed", slog.String("job_id", jobID), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"chunks": len(chunks),
	})
}
