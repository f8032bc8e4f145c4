package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chunkrelay/chunkrelay/internal/chunker"
	"github.com/chunkrelay/chunkrelay/internal/config"
	"github.com/chunkrelay/chunkrelay/internal/preview"
)

// PreviewHandler serves the browser UI and the chunk preview API.
type PreviewHandler struct {
	limits config.LimitsConfig
	logger *slog.Logger
}

// NewPreviewHandler creates a PreviewHandler.
func NewPreviewHandler(log *slog.Logger, cfg config.Config) *PreviewHandler {
	return &PreviewHandler{
		limits: cfg.Limits,
		logger: log.With(slog.String("handler", "preview")),
	}
}

// Register mounts the preview routes on the Echo instance.
func (h *PreviewHandler) Register(e *echo.Echo) {
	e.GET("/", h.Page)
	e.POST("/api/preview", h.Preview)
	e.GET("/api/curl", h.Curl)
}

// Page serves the interactive preview UI.
func (h *PreviewHandler) Page(c echo.Context) error {
	page, err := preview.RenderPage(preview.PageData{
		MaxChars: h.limits.MaxChars,
		MaxLines: h.limits.MaxLines,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}

type previewChunk struct {
	Content       string `json:"content"`
	HTML          string `json:"html"`
	Chars         int    `json:"chars"`
	ReadableLines int    `json:"readable_lines"`
}

// Preview splits the posted content and returns each chunk alongside its
// rendered HTML, for side-by-side display in the browser.
func (h *PreviewHandler) Preview(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType != "" && !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}

	var req struct {
		Content  string `json:"content"`
		MaxChars int    `json:"max_chars"`
		MaxLines *int   `json:"max_lines"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Content = strings.ReplaceAll(req.Content, "\r\n", "\n")

	cfg := chunker.Config{MaxChars: h.limits.MaxChars, MaxLines: h.limits.MaxLines}
	if req.MaxChars != 0 {
		cfg.MaxChars = req.MaxChars
	}
	if req.MaxLines != nil {
		cfg.MaxLines = *req.MaxLines
	}
	if err := config.ValidateLimits(cfg.MaxChars, cfg.MaxLines); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chunks, err := chunker.Split(req.Content, cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rendered := make([]previewChunk, 0, len(chunks))
	for _, chunk := range chunks {
		rendered = append(rendered, previewChunk{
			Content:       chunk,
			HTML:          preview.RenderHTML(chunk),
			Chars:         len(chunk),
			ReadableLines: chunker.CountReadableLines(chunk),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"chunks":         rendered,
		"readable_lines": chunker.CountReadableLines(req.Content),
	})
}

// Curl converts a Discord webhook URL into the matching relay URL and a
// ready-to-paste curl command.
func (h *PreviewHandler) Curl(c echo.Context) error {
	webhookURL := c.QueryParam("webhook_url")
	if strings.TrimSpace(webhookURL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "webhook_url query parameter is required")
	}
	base := c.Scheme() + "://" + c.Request().Host
	relayURL, err := preview.RelayURL(base, webhookURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"relay_url": relayURL,
		"curl":      preview.CurlCommand(relayURL),
	})
}
