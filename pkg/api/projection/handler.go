package projection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"bizplan_forecast/pkg/api/respond"
	"bizplan_forecast/pkg/core/calc"
	"bizplan_forecast/pkg/core/export"
	"bizplan_forecast/pkg/core/pipeline"
	"bizplan_forecast/pkg/metrics"
	"bizplan_forecast/pkg/models"
)

const maxBodyBytes = 1 << 20

// Handler serves projections, exports and the financing-plan check.
type Handler struct {
	service *pipeline.Service
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHandler(service *pipeline.Service, m *metrics.Metrics, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, metrics: m, log: log}
}

// ProjectionResponse is the body of POST /api/projection.
type ProjectionResponse struct {
	Results     *models.OperatingResults `json:"results"`
	Fingerprint string                   `json:"fingerprint,omitempty"`
	Cached      bool                     `json:"cached"`
}

// FinancingResponse is the body of POST /api/financing/check.
type FinancingResponse struct {
	Investment models.InvestmentTotals `json:"investment"`
	Financing  models.FinancingPlan    `json:"financing"`
}

// Register mounts the handlers on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/projection", respond.Instrument("/api/projection", h.metrics, h.log, http.HandlerFunc(h.HandleProjection)))
	mux.Handle("/api/projection/export", respond.Instrument("/api/projection/export", h.metrics, h.log, http.HandlerFunc(h.HandleExport)))
	mux.Handle("/api/financing/check", respond.Instrument("/api/financing/check", h.metrics, h.log, http.HandlerFunc(h.HandleFinancingCheck)))
}

func (h *Handler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodPost) {
		return
	}

	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}

	res, err := h.service.Run(r.Context(), plan)
	if err != nil {
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeInvalidRequest, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, ProjectionResponse{
		Results:     res.Results,
		Fingerprint: res.Fingerprint,
		Cached:      res.Cached,
	})
}

// HandleExport runs the projection and returns it as a document. The
// format comes from the query string (xlsx, md, html).
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodPost) {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeUnknownFormat, err.Error())
		return
	}

	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}

	res, err := h.service.Run(r.Context(), plan)
	if err != nil {
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeInvalidRequest, err.Error())
		return
	}

	// Render fully before writing so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, plan, res.Results); err != nil {
		h.log.Error("export failed",
			zap.String("format", string(format)),
			zap.String("request_id", respond.RequestID(r.Context())),
			zap.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, respond.CodeExportFailed, err.Error())
		return
	}
	if h.metrics != nil {
		h.metrics.ExportsTotal.WithLabelValues(string(format)).Inc()
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(plan.ProjectTitle)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) HandleFinancingCheck(w http.ResponseWriter, r *http.Request) {
	if !respond.Allow(w, r, http.MethodPost) {
		return
	}

	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, FinancingResponse{
		Investment: calc.CalculateInvestment(plan.Equipments),
		Financing:  calc.CalculateFinancingPlan(plan),
	})
}

func (h *Handler) decodePlan(w http.ResponseWriter, r *http.Request) (models.BusinessPlanData, bool) {
	var plan models.BusinessPlanData
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&plan); err != nil {
		msg := "invalid plan: " + err.Error()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = fmt.Sprintf("plan exceeds %d bytes", tooLarge.Limit)
		}
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, msg)
		return plan, false
	}
	return plan, true
}
