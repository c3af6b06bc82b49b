package reporthttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keiri-app/keiri/internal/platform/httpx"
	"github.com/keiri-app/keiri/internal/report"
	"github.com/keiri-app/keiri/internal/shared"
)

// ReportService defines the grouped report contract used by the handler.
type ReportService interface {
	Build(ctx context.Context, q report.Query) (report.Report, error)
}

// Handler serves the grouped profit report endpoints.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// Routes mounts the report endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{dimension}", h.Grouped)
	return r
}

type groupedQuery struct {
	Year   int   `validate:"required,gte=2000,lte=2100"`
	Months []int `validate:"required,min=1,dive,gte=1,lte=12"`
}

// Grouped handles GET /finance/reports/{dimension}?year=&months=.
func (h *Handler) Grouped(w http.ResponseWriter, r *http.Request) {
	dim, err := report.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Unknown Dimension", err.Error())
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "year must be an integer")
		return
	}
	months, err := shared.ParseMonthList(r.URL.Query().Get("months"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", err.Error())
		return
	}
	if err := h.validate.Struct(groupedQuery{Year: year, Months: months}); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", err.Error())
		return
	}

	rep, err := h.service.Build(r.Context(), report.Query{Dimension: dim, Year: year, Months: months})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toReportResponse(rep))
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrUnknownDimension),
		errors.Is(err, shared.ErrInvalidYear),
		errors.Is(err, shared.ErrInvalidMonth),
		errors.Is(err, shared.ErrEmptyMonths):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", err.Error())
	default:
		h.logger.Error("build grouped report failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Report Unavailable", err.Error())
	}
}
