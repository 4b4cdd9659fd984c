package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"coke_oee/internal/ingest"
	"coke_oee/internal/repository"
	"coke_oee/internal/service"
)

const (
	statusOK = "ok"

	formStops      = "stops"
	formProduction = "production"

	errIngest       = "failed to ingest dataset"
	errListDatasets = "failed to list datasets"
	errLoadDataset  = "failed to load dataset"
	errBuildReport  = "failed to build report"
	errTooLarge     = "upload exceeds size limit"
)

// statusFor maps service errors to HTTP status codes. Bad input is a 400,
// unknown datasets are a 404 and anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrDatasetNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrInvalidWorkbook),
		errors.Is(err, ingest.ErrHeaderNotFound),
		errors.Is(err, ingest.ErrSheetNotFound),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrUnknownAggregation),
		errors.Is(err, service.ErrUnknownLossFilter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes client errors verbatim and logs server errors behind
// a generic message.
func (h *Handler) respondError(c *gin.Context, err error, userMsg, logKey string, kv ...any) {
	code := statusFor(err)
	if code != http.StatusInternalServerError {
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	if h.log != nil {
		h.log.Errorw(logKey, append([]any{"err", err}, kv...)...)
	}
	c.JSON(code, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Upload dataset
// @Description  Ingests a stop log workbook and a production workbook. Rows that cannot be used are returned as ignored.
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Param        stops       formData  file  true  "Stop log (.xlsx)"
// @Param        production  formData  file  true  "Production log (.xlsx)"
// @Success      201  {object}  map[string]interface{}  "id, created_at, audit, ignored"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/datasets [post]
// @Security     BearerAuth
func (h *Handler) uploadDataset(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	stops, err := h.openUpload(c, formStops)
	if err != nil {
		h.rejectUpload(c, err)
		return
	}
	defer stops.Close()

	production, err := h.openUpload(c, formProduction)
	if err != nil {
		h.rejectUpload(c, err)
		return
	}
	defer production.Close()

	ds, err := h.services.Ingest(c.Request.Context(), stops, production)
	if err != nil {
		h.respondError(c, err, errIngest, "dataset_ingest_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ds.ID,
		"created_at": ds.CreatedAt,
		"audit":      ds.Audit,
		"ignored":    ds.Ignored,
	})
}

func (h *Handler) openUpload(c *gin.Context, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file %q: %w", field, err)
	}
	return fh.Open()
}

func (h *Handler) rejectUpload(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errTooLarge})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// @Summary      List datasets
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, datasets"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/datasets [get]
// @Security     BearerAuth
func (h *Handler) listDatasets(c *gin.Context) {
	list, err := h.services.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, errListDatasets, "dataset_list_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(list),
		"datasets": list,
	})
}

// @Summary      Ignored rows
// @Description  Rows skipped while ingesting the dataset, with the reason for each
// @Tags         datasets
// @Produce      json
// @Param        id   path      string  true  "Dataset id"
// @Success      200  {object}  map[string]interface{}  "count, rows"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/datasets/{id}/ignored [get]
// @Security     BearerAuth
func (h *Handler) getIgnored(c *gin.Context) {
	id := c.Param("id")
	rows, err := h.services.Ignored(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, errLoadDataset, "dataset_ignored_failed", "dataset_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(rows),
		"rows":  rows,
	})
}
