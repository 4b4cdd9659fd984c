package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coke_oee/internal/models"
)

// reportQuery is the report filter as sent in the query string.
type reportQuery struct {
	Start       string `form:"start"`
	End         string `form:"end"`
	Aggregation string `form:"aggregation"`
	Equipment   string `form:"equipment"`
	Loss        string `form:"loss"`
	Period      string `form:"period"`
}

func (q reportQuery) filter() models.Filter {
	return models.Filter{
		Range: models.DateRange{
			Start: strings.TrimSpace(q.Start),
			End:   strings.TrimSpace(q.End),
		},
		Aggregation: models.Aggregation(strings.ToLower(strings.TrimSpace(q.Aggregation))),
		Equipment:   strings.TrimSpace(q.Equipment),
		Loss:        models.LossFilter(strings.ToLower(strings.TrimSpace(q.Loss))),
		Period:      strings.TrimSpace(q.Period),
	}
}

// @Summary      OEE report
// @Description  Recomputes periods, summary, loss tree, bridge, reliability and Pareto for a stored dataset. A missing range defaults to the first production day through yesterday.
// @Tags         reports
// @Produce      json
// @Param        id           path   string  true   "Dataset id"
// @Param        start        query  string  false  "First production date (YYYY-MM-DD)"  example(2024-03-01)
// @Param        end          query  string  false  "Last production date (YYYY-MM-DD)"  example(2024-03-31)
// @Param        aggregation  query  string  false  "Period granularity"  Enums(day,week,fortnight,month,quarter,year)
// @Param        equipment    query  string  false  "Only this equipment's stops"
// @Param        loss         query  string  false  "Pareto loss facet"  Enums(availability,performance)
// @Param        period       query  string  false  "Single period key, e.g. 2024-03 or 2024-W10"
// @Success      200  {object}  models.Report
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/datasets/{id}/report [get]
// @Security     BearerAuth
func (h *Handler) getReport(c *gin.Context) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	rep, err := h.services.Report(c.Request.Context(), id, q.filter(), time.Now())
	if err != nil {
		h.respondError(c, err, errBuildReport, "report_failed", "dataset_id", id)
		return
	}
	c.JSON(http.StatusOK, rep)
}
