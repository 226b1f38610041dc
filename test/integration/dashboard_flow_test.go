//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestDashboard_InitialLoadDoesNotFetch(t *testing.T) {
	before := amdCalls.Load()

	resp, err := newBrowser(t).Get(testServerURL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "気温 (TMP)")
	assert.NotContains(t, body, `id="result"`)
	assert.Equal(t, before, amdCalls.Load())
}

func TestDashboard_SubmitAmedasInaOneDay(t *testing.T) {
	browser := newBrowser(t)

	resp, err := browser.PostForm(testServerURL+"/", url.Values{
		"place":    {"アメダス伊那"},
		"variable": {"TMP"},
		"start":    {"2024-06-01"},
		"end":      {"2024-06-01"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "アメダス伊那：気温（時別）")
	assert.Contains(t, body, "<svg")
	assert.Equal(t, 24, strings.Count(body, "<tr><td>"))

	// Selections survive a reload through the session cookie.
	resp, err = browser.Get(testServerURL + "/")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, `<option value="アメダス伊那" selected>`)
	assert.NotContains(t, body, `id="result"`)
}

func TestDashboard_ProviderRejectsReversedRange(t *testing.T) {
	resp, err := newBrowser(t).PostForm(testServerURL+"/", url.Values{
		"place":    {"柳沢"},
		"variable": {"RH"},
		"start":    {"2024-06-03"},
		"end":      {"2024-06-01"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "データ取得エラー: AMD unavailable: AMD error: status 400 Bad Request")
	assert.NotContains(t, body, "<table>")
}

func TestAPI_ObservationsAndFetchLog(t *testing.T) {
	q := url.Values{
		"place":    {"アメダス伊那"},
		"variable": {"TMP"},
		"start":    {"2024-06-02"},
		"end":      {"2024-06-02"},
	}
	resp, err := http.Get(testServerURL + "/api/v1/observations?" + q.Encode())
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var obs struct {
		Query struct {
			TimeDomain [2]string `json:"timedomain"`
		} `json:"query"`
		Series struct {
			Name         string `json:"name"`
			Observations []struct {
				Value *float64 `json:"value"`
			} `json:"observations"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &obs))
	assert.Equal(t, [2]string{"2024-06-02T01", "2024-06-02T24"}, obs.Query.TimeDomain)
	assert.Equal(t, "気温", obs.Series.Name)
	assert.Len(t, obs.Series.Observations, 24)

	resp, err = http.Get(testServerURL + "/api/v1/fetches?limit=1")
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recs []struct {
		Place      string `json:"place"`
		TimeDomain string `json:"timedomain"`
		OK         bool   `json:"ok"`
		Rows       int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "アメダス伊那", recs[0].Place)
	assert.Equal(t, "2024-06-02T01,2024-06-02T24", recs[0].TimeDomain)
	assert.True(t, recs[0].OK)
	assert.Equal(t, 24, recs[0].Rows)
}

func TestOperationalEndpoints(t *testing.T) {
	for _, path := range []string{"/healthz", "/metrics", "/api/v1/locations", "/api/v1/variables", "/swagger/index.html"} {
		resp, err := http.Get(testServerURL + path)
		require.NoError(t, err, path)
		_ = readBody(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
