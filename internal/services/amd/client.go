package amd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/papana-farm/metdash/internal/models"
)

const (
	hourlyPath   = "/hourly"
	errBodyLimit = 256
)

var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type hourlyResponse struct {
	Obs  [][][]*float64 `json:"obs"`
	Tim  []string       `json:"tim"`
	Lat  []float64      `json:"lat"`
	Lon  []float64      `json:"lon"`
	Name string         `json:"name"`
	Unit string         `json:"unit"`
}

// Client fetches hourly grids from the AMD data service.
type Client struct {
	apiURL   string
	user     string
	password string
	client   HTTPClient
	logger   zerolog.Logger
}

func NewClient(apiURL, user, password string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	return &Client{
		apiURL:   strings.TrimRight(apiURL, "/"),
		user:     user,
		password: password,
		client:   httpClient,
		logger:   logger.With().Str("component", "AMDClient").Logger(),
	}
}

// Fetch asks for the element over the time domain and bounding box with name and unit
// included (namuni=true).
func (c *Client) Fetch(ctx context.Context, q models.Query) (models.Grid, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("element", string(q.Variable))
	params.Set("timedomain", q.TimeDomain.String())
	params.Set("lalodomain", q.BoundingBox.String())
	params.Set("namuni", "true")
	reqURL := c.apiURL + hourlyPath + "?" + params.Encode()

	c.logger.Debug().
		Ctx(ctx).
		Str("element", string(q.Variable)).
		Str("timedomain", q.TimeDomain.String()).
		Str("lalodomain", q.BoundingBox.String()).
		Msg("starting AMD request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to create HTTP request")
		return models.Grid{}, err
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("element", string(q.Variable)).
			Msg("error sending HTTP request to AMD")
		return models.Grid{}, err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		c.logger.Error().
			Ctx(ctx).
			Str("status", resp.Status).
			Msg("AMD returned non-200 status")
		return models.Grid{}, fmt.Errorf("AMD error: status %s: %s",
			resp.Status, strings.TrimSpace(string(snippet)))
	}

	var raw hourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("failed to decode AMD response")
		return models.Grid{}, fmt.Errorf("decode AMD response: %w", err)
	}

	grid, err := raw.toGrid()
	if err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("invalid AMD payload")
		return models.Grid{}, err
	}

	c.logger.Info().
		Ctx(ctx).
		Str("element", string(q.Variable)).
		Int("steps", len(grid.Times)).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched hourly data")

	return grid, nil
}

func (r hourlyResponse) toGrid() (models.Grid, error) {
	times := make([]time.Time, 0, len(r.Tim))
	for _, s := range r.Tim {
		t, err := parseTimestamp(s)
		if err != nil {
			return models.Grid{}, err
		}
		times = append(times, t)
	}

	values := make([][][]float64, len(r.Obs))
	for i, plane := range r.Obs {
		values[i] = make([][]float64, len(plane))
		for j, row := range plane {
			values[i][j] = make([]float64, len(row))
			for k, v := range row {
				if v == nil {
					// missing observation
					values[i][j][k] = math.NaN()
					continue
				}
				values[i][j][k] = *v
			}
		}
	}

	return models.Grid{
		Values:     values,
		Times:      times,
		Latitudes:  r.Lat,
		Longitudes: r.Lon,
		Name:       r.Name,
		Unit:       r.Unit,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(models.JST), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, models.JST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q in AMD response", s)
}
