package assistant

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bizplan_forecast/pkg/api/respond"
	coreAssistant "bizplan_forecast/pkg/core/assistant"
	"bizplan_forecast/pkg/core/pipeline"
	"bizplan_forecast/pkg/metrics"
	"bizplan_forecast/pkg/models"
)

const maxBodyBytes = 1 << 20

// Handler exposes provider selection and narrative generation.
type Handler struct {
	manager  *coreAssistant.Manager
	writer   *coreAssistant.Writer
	projects *pipeline.Service
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewHandler creates the assistant handler. projects computes the figures
// of a request that carries a plan but no results.
func NewHandler(manager *coreAssistant.Manager, writer *coreAssistant.Writer, projects *pipeline.Service, m *metrics.Metrics, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{manager: manager, writer: writer, projects: projects, metrics: m, log: log}
}

// ProvidersResponse lists the providers and the active one.
type ProvidersResponse struct {
	Active    string                       `json:"active"`
	Providers []coreAssistant.ProviderInfo `json:"providers"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// GenerateRequest asks for one section. With Apply the response carries
// the plan with the section merged into its narrative.
type GenerateRequest struct {
	coreAssistant.SectionRequest
	Apply bool `json:"apply,omitempty"`
}

type GenerateResponse struct {
	coreAssistant.SectionResult
	Plan *models.BusinessPlanData `json:"plan,omitempty"`
}

// Register mounts the handlers on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/assistant/providers", respond.Instrument("/api/assistant/providers", h.metrics, h.log, http.HandlerFunc(h.HandleProviders)))
	mux.Handle("/api/assistant/provider", respond.Instrument("/api/assistant/provider", h.metrics, h.log, http.HandlerFunc(h.HandleSwitch)))
	mux.Handle("/api/assistant/generate", respond.Instrument("/api/assistant/generate", h.metrics, h.log, http.HandlerFunc(h.HandleGenerate)))
}

func (h *Handler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodGet) {
		return
	}
	respond.JSON(w, http.StatusOK, h.providers())
}

func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodPost) {
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body")
		return
	}

	if err := h.manager.SetProvider(req.Provider); err != nil {
		respond.Error(w, http.StatusNotFound, respond.CodeProviderNotFound, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, h.providers())
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodPost) {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Results == nil && h.projects != nil {
		if res, err := h.projects.Run(r.Context(), req.Plan); err == nil {
			req.Results = res.Results
		}
	}

	provider := h.manager.ActiveID()
	out, err := h.writer.GenerateSection(r.Context(), req.SectionRequest)
	if err != nil {
		h.countGeneration(provider, "error")
		h.log.Warn("generation failed",
			zap.String("section", req.Section),
			zap.String("provider", provider),
			zap.String("request_id", respond.RequestID(r.Context())),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, coreAssistant.ErrUnknownSection):
			respond.Error(w, http.StatusBadRequest, respond.CodeUnknownSection, err.Error())
		case errors.Is(err, coreAssistant.ErrProviderNotReady):
			respond.Error(w, http.StatusServiceUnavailable, respond.CodeProviderNotReady, err.Error())
		default:
			respond.Error(w, http.StatusBadGateway, respond.CodeGenerationFailed, err.Error())
		}
		return
	}
	h.countGeneration(out.Provider, "ok")

	resp := GenerateResponse{SectionResult: *out}
	if req.Apply {
		plan := req.Plan
		if err := coreAssistant.ApplyNarrative(&plan, out); err != nil {
			respond.Error(w, http.StatusInternalServerError, respond.CodeGenerationFailed, err.Error())
			return
		}
		resp.Plan = &plan
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) providers() ProvidersResponse {
	return ProvidersResponse{Active: h.manager.ActiveID(), Providers: h.manager.Providers()}
}

func (h *Handler) countGeneration(provider, outcome string) {
	if h.metrics != nil {
		h.metrics.GenerationsTotal.WithLabelValues(provider, outcome).Inc()
	}
}
