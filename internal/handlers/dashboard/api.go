package dashboard

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/repository"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type QueryResponse struct {
	Place      string             `json:"place"`
	Variable   models.Variable    `json:"variable"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	TimeDomain models.TimeDomain  `json:"timedomain"`
	LaLoDomain models.BoundingBox `json:"lalodomain"`
}

// ObservationResponse holds a nil Value for a missing observation.
type ObservationResponse struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

type SeriesResponse struct {
	Name         string                `json:"name"`
	Unit         string                `json:"unit"`
	Observations []ObservationResponse `json:"observations"`
}

type ObservationsResponse struct {
	Query  QueryResponse  `json:"query"`
	Series SeriesResponse `json:"series"`
}

func newObservationsResponse(r models.FetchResult) ObservationsResponse {
	obs := make([]ObservationResponse, 0, r.Series.Len())
	for _, o := range r.Series.Observations {
		item := ObservationResponse{Time: o.Time.In(models.JST)}
		if !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0) {
			v := o.Value
			item.Value = &v
		}
		obs = append(obs, item)
	}

	q := r.Query
	return ObservationsResponse{
		Query: QueryResponse{
			Place:      q.Place,
			Variable:   q.Variable,
			Start:      q.StartDate.Format(models.DateLayout),
			End:        q.EndDate.Format(models.DateLayout),
			Latitude:   q.Latitude,
			Longitude:  q.Longitude,
			TimeDomain: q.TimeDomain,
			LaLoDomain: q.BoundingBox,
		},
		Series: SeriesResponse{Name: r.Series.Name, Unit: r.Series.Unit, Observations: obs},
	}
}

// ListLocations
// @Summary List field locations
// @Description Returns the ten selectable places in display order
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (h *Handler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, models.Locations())
}

// ListVariables
// @Summary List weather variables
// @Description Returns the selectable variables with their Japanese labels
// @Tags catalog
// @Produce json
// @Success 200 {array} models.VariableOption
// @Router /variables [get]
func (h *Handler) ListVariables(c *gin.Context) {
	c.JSON(http.StatusOK, models.VariableOptions())
}

// GetObservations
// @Summary Fetch hourly observations
// @Description Fetches the hourly series of one variable at one place over a date range
// @Tags observations
// @Produce json
// @Param place query string true "Place name"
// @Param variable query string true "Variable code" Enums(TMP, RH, DLR)
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} ObservationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /observations [get]
func (h *Handler) GetObservations(c *gin.Context) {
	var form QueryForm
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	q, err := form.ToQuery()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sessionID, _ := c.Cookie(SessionCookie)

	res := h.fetcher.Fetch(c.Request.Context(), sessionID, q)
	if !res.OK {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: res.Message()})
		return
	}

	c.JSON(http.StatusOK, newObservationsResponse(res))
}

// ListFetches
// @Summary Recent fetch attempts
// @Description Returns the fetch audit log, newest first
// @Tags observations
// @Produce json
// @Param limit query int false "Maximum number of entries (1-500)" default(50)
// @Success 200 {array} models.FetchRecord
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /fetches [get]
func (h *Handler) ListFetches(c *gin.Context) {
	limit := repository.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > repository.MaxListLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 500"})
			return
		}
		limit = n
	}

	recs, err := h.fetches.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Ctx(c.Request.Context()).Err(err).Msg("failed to list fetches")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list fetches"})
		return
	}

	c.JSON(http.StatusOK, recs)
}
