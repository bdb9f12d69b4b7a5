package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jward/namepop"
	"github.com/jward/namepop/internal/ingest"
)

func newTestServer(t *testing.T, years map[int]string) *Server {
	t.Helper()
	db, err := namepop.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	for year, src := range years {
		_, err := ingest.LoadYear(db.Store(), year, strings.NewReader(src))
		require.NoError(t, err)
	}
	return New(db.Queries(), zap.NewNop(), "")
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleKnownYears(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{
		1950: "Alex,M,10",
		1990: "Alex,M,12",
	})

	rec := doRequest(t, s, http.MethodGet, "/api/known_years", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		EarliestYear int `json:"earliest_year"`
		LatestYear   int `json:"latest_year"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1950, resp.EarliestYear)
	assert.Equal(t, 1990, resp.LatestYear)
}

func TestHandleKnownYears_EmptyDatabase(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/known_years", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleKnownNames(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{
		1990: "Zoe,F,5\nAlex,M,10",
	})

	rec := doRequest(t, s, http.MethodGet, "/api/known_names", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"Alex", "Zoe"}, names)
}

func TestHandleKnownNames_EmptyDatabaseIsEmptyList(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/known_names", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleLoad(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{
		1990: "Alex,M,10\nAlex,F,5\nJamie,F,25",
	})

	// The request name is normalized before lookup.
	rec := doRequest(t, s, http.MethodPost, "/api/load", `{"name":"aLEX","years":[1990]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Years map[string]struct {
			Male struct {
				TotalBirths int `json:"total_births"`
				Data        struct {
					Gender string `json:"gender"`
					Rank   int    `json:"rank"`
					Count  int    `json:"count"`
				} `json:"data"`
				Ratio float64 `json:"ratio"`
			} `json:"male"`
		} `json:"years"`
		Peak struct {
			Male   *int `json:"male"`
			Female *int `json:"female"`
		} `json:"peak"`
		GenderRatio   *float64 `json:"gender_ratio"`
		TypicalGender *string  `json:"typical_gender"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	year, ok := resp.Years["1990"]
	require.True(t, ok)
	assert.Equal(t, 40, year.Male.TotalBirths)
	assert.Equal(t, "male", year.Male.Data.Gender)
	assert.Equal(t, 1, year.Male.Data.Rank)
	assert.Equal(t, 10, year.Male.Data.Count)
	assert.InDelta(t, 0.25, year.Male.Ratio, 1e-9)

	require.NotNil(t, resp.Peak.Male)
	assert.Equal(t, 1990, *resp.Peak.Male)
	require.NotNil(t, resp.Peak.Female)
	assert.Equal(t, 1990, *resp.Peak.Female)

	require.NotNil(t, resp.TypicalGender)
	assert.Equal(t, "male", *resp.TypicalGender)
	require.NotNil(t, resp.GenderRatio)
	assert.InDelta(t, 10.0/15.0, *resp.GenderRatio, 1e-9)
}

func TestHandleLoad_UnknownName(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{1990: "Alex,M,10"})

	rec := doRequest(t, s, http.MethodPost, "/api/load", `{"name":"Zelda","years":[1990]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, "{}", string(resp["years"]))
	assert.JSONEq(t, `{"male":null,"female":null}`, string(resp["peak"]))
	assert.JSONEq(t, "null", string(resp["typical_gender"]))
	assert.JSONEq(t, "null", string(resp["gender_ratio"]))
}

func TestHandleLoad_EmptyYearsRejected(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{1990: "Alex,M,10"})

	rec := doRequest(t, s, http.MethodPost, "/api/load", `{"name":"Alex","years":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLoad_InvalidBody(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{1990: "Alex,M,10"})

	rec := doRequest(t, s, http.MethodPost, "/api/load", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_MethodsEnforced(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, map[int]string{1990: "Alex,M,10"})

	rec := doRequest(t, s, http.MethodPost, "/api/known_years", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec = doRequest(t, s, http.MethodGet, "/api/load", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
