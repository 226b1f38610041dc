package dashboard

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/presenter"
	"github.com/papana-farm/metdash/internal/views"
)

const inputErrorPrefix = "入力エラー: "

// ShowDashboard renders the controls prefilled from the session. It never fetches.
func (h *Handler) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	s := h.loadSession(ctx, h.sessionID(c))

	h.render(c, http.StatusOK, views.NewDashboardData(s))
}

// SubmitDashboard is the explicit fetch trigger of the page.
func (h *Handler) SubmitDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	id := h.sessionID(c)

	var form QueryForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderInputError(c, h.loadSession(ctx, id), form, err)
		return
	}

	q, err := form.ToQuery()
	if err != nil {
		h.renderInputError(c, h.loadSession(ctx, id), form, err)
		return
	}

	s := models.Session{
		ID:        id,
		Place:     q.Place,
		Variable:  q.Variable,
		StartDate: form.Start,
		EndDate:   form.End,
	}
	h.saveSession(ctx, s)

	data := views.NewDashboardData(s)
	data.Result = h.buildResult(ctx, h.fetcher.Fetch(ctx, id, q))

	h.render(c, http.StatusOK, data)
}

func (h *Handler) renderInputError(c *gin.Context, s models.Session, form QueryForm, err error) {
	h.logger.Info().Ctx(c.Request.Context()).Err(err).Msg("rejected dashboard input")

	data := views.NewDashboardData(s)
	if form.Place != "" {
		data.SelectPlace(form.Place)
	}
	if form.Variable != "" {
		data.Variable = models.Variable(form.Variable)
	}
	if form.Start != "" {
		data.StartDate = form.Start
	}
	if form.End != "" {
		data.EndDate = form.End
	}
	data.InputError = inputErrorPrefix + err.Error()

	h.render(c, http.StatusBadRequest, data)
}

func (h *Handler) buildResult(ctx context.Context, r models.FetchResult) *views.ResultData {
	if !r.OK {
		return &views.ResultData{Error: r.Message()}
	}

	ch := presenter.BuildChart(r.Query.Place, r.Series)
	res := &views.ResultData{
		Table:      presenter.BuildTable(r.Series),
		ChartTitle: ch.Title,
	}

	if !ch.Plottable() {
		res.ChartUnavailable = true
		return res
	}

	var svg bytes.Buffer
	if err := ch.RenderSVG(&svg); err != nil {
		h.logger.Error().Ctx(ctx).Err(err).Msg("failed to render chart")
		res.ChartUnavailable = true
		return res
	}
	// go-chart output is generated markup, not user input.
	res.ChartSVG = template.HTML(svg.String()) //nolint:gosec
	return res
}

func (h *Handler) render(c *gin.Context, status int, data *views.DashboardData) {
	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, data); err != nil {
		h.logger.Error().Ctx(c.Request.Context()).Err(err).Msg("failed to render dashboard")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
