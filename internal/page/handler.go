package page

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"payment-webhook-service/internal/config"
	"github.com/VictoriaMetrics/metrics"
)

var (
	pagePaidCounter    = metrics.GetOrCreateCounter(`landing_page_requests_total{result="paid"}`)
	pagePendingCounter = metrics.GetOrCreateCounter(`landing_page_requests_total{result="pending"}`)
	pageErrorCounter   = metrics.GetOrCreateCounter(`landing_page_requests_total{result="storage_error"}`)
	pageRenderCounter  = metrics.GetOrCreateCounter(`landing_page_requests_total{result="render_error"}`)
)

// RenderContext is the data handed to the landing page template.
type RenderContext struct {
	InvoiceID           string
	DiscordInvite       string
	DiscordChannel      string
	AutoRedirectSeconds int
	IsPaid              bool
}

type Handler struct {
	resolver *Resolver
	redirect config.Redirect
	template *template.Template
	logger   *slog.Logger
}

func NewHandler(resolver *Resolver, redirect config.Redirect, tmpl *template.Template, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		redirect: redirect,
		template: tmpl,
		logger:   logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view, err := h.resolver.Resolve(r.Context(), r.URL.Query().Get("invoice"))
	if err != nil {
		h.logger.ErrorContext(r.Context(), fmt.Sprintf("Error resolving invoice: %v", err))
		pageErrorCounter.Inc()
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if view.IsPaid {
		pagePaidCounter.Inc()
	} else {
		pagePendingCounter.Inc()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = h.template.Execute(w, RenderContext{
		InvoiceID:           view.InvoiceID,
		DiscordInvite:       h.redirect.DiscordInvite,
		DiscordChannel:      h.redirect.DiscordChannel,
		AutoRedirectSeconds: AutoRedirectSeconds,
		IsPaid:              view.IsPaid,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), fmt.Sprintf("Error rendering landing page: %v", err))
		pageRenderCounter.Inc()
	}
}
