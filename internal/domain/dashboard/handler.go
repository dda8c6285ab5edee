package dashboard

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovc/insights/internal/domain/registry"
	"github.com/ovc/insights/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/uploads/registration", h.UploadRegistration)
	api.POST("/uploads/viral-load", h.UploadViralLoad)
	api.GET("/filters", h.Filters)
	api.GET("/summaries", h.Summaries)
	api.GET("/viral-load/summary", h.ViralLoadSummary)
	api.GET("/viral-load/trend", h.ViralLoadTrend)
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

func writeError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindFormat:
		status = http.StatusBadRequest
	case apperr.KindPrerequisiteMissing:
		status = http.StatusConflict
	}

	msg := err.Error()
	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return c.JSON(status, errorBody{Error: errorDetail{Kind: kind, Message: msg}})
}

func (h *Handler) upload(c echo.Context, load func(string, io.Reader) (*UploadReceipt, error)) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, apperr.New(apperr.KindFormat, "multipart field %q is required", "file"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, apperr.Wrap(apperr.KindFormat, err, "open uploaded file"))
	}
	defer f.Close()

	receipt, err := load(fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) UploadRegistration(c echo.Context) error {
	return h.upload(c, h.svc.LoadRegistration)
}

func (h *Handler) UploadViralLoad(c echo.Context) error {
	return h.upload(c, h.svc.LoadViralLoad)
}

func (h *Handler) Filters(c echo.Context) error {
	opts, err := h.svc.Filters()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) Summaries(c echo.Context) error {
	f := registry.Filter{
		Partners:       c.QueryParams()["lip"],
		Constituencies: c.QueryParams()["constituency"],
		Wards:          c.QueryParams()["ward"],
	}
	sum, err := h.svc.Summaries(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *Handler) ViralLoadSummary(c echo.Context) error {
	counts, err := h.svc.SuppressionSummary()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

func (h *Handler) ViralLoadTrend(c echo.Context) error {
	trend, err := h.svc.SuppressionTrend()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, trend)
}
