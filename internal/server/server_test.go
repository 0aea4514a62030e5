package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	mid "github.com/OFFIS-RIT/flavor/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(i, c, d string) flavor.Record {
	return flavor.Record{Ingredient: i, Compound: c, Descriptor: d}
}

type testServer struct {
	e       *echo.Echo
	app     *mid.App
	backend *store.MemoryStorage
}

func newTestServer(t *testing.T, records ...flavor.Record) *testServer {
	t.Helper()
	backend := store.NewMemoryStorage(records...)
	db := store.New(backend)
	require.NoError(t, db.Load(t.Context()))

	app := &mid.App{
		Store:  db,
		Policy: graph.TieredPolicy{},
		Header: flavor.Header("en"),
	}
	return &testServer{e: NewEcho(app, "1M"), app: app, backend: backend}
}

func (s *testServer) do(t *testing.T, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func upload(t *testing.T, s *testServer, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/records/import", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndIndex(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "OK", res.Body.String())

	res = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "<html")
}

func TestAddRecord(t *testing.T) {
	s := newTestServer(t, rec("x", "C1", "d1"), rec("x", "C1", "d2"), rec("y", "C2", "d1"))

	res := s.do(t, http.MethodPost, "/api/records", map[string]string{"ingredient": "z", "descriptor": "d1"}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	body := decode(t, res)
	result := body["result"].(map[string]any)
	assert.Equal(t, true, result["inferred"])
	assert.Equal(t, float64(3), result["added"])
	assert.Contains(t, s.backend.Saved(), rec("z", "C1", "d2"))
	assert.Contains(t, s.backend.Saved(), rec("z", "C2", "d1"))

	res = s.do(t, http.MethodPost, "/api/records", map[string]string{"ingredient": "z", "descriptor": "nothing"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = s.do(t, http.MethodPost, "/api/records", map[string]string{"ingredient": "z"}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = s.do(t, http.MethodPost, "/api/records", map[string]string{"compound": "C1", "descriptor": "d1"}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestImport(t *testing.T) {
	s := newTestServer(t, rec("x", "C1", "d1"))

	res := upload(t, s, "data.csv", "a,b,c,extra\nx,C1,d1,1\n,C9,d9,2\npea,hexanal,green,3\n")
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	result := decode(t, res)["result"].(map[string]any)
	assert.Equal(t, float64(2), result["accepted"])
	assert.Equal(t, float64(1), result["added"])
	assert.Equal(t, []flavor.Record{rec("x", "C1", "d1"), rec("pea", "hexanal", "green")}, s.app.Store.Records())

	res = upload(t, s, "narrow.csv", "a,b\nx,y\n")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = upload(t, s, "notes.pdf", "%PDF")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, 2, s.app.Store.Len())
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, flavor.DemoRecords()...)

	res := s.do(t, http.MethodGet, "/api/search?field=descriptor&q="+url.QueryEscape("果香"), nil, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	compounds := decode(t, res)["compounds"].([]any)
	require.Len(t, compounds, 1)
	assert.Equal(t, "Comp2", compounds[0].(map[string]any)["compound"])

	res = s.do(t, http.MethodGet, "/api/search?field=nope&q=x", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = s.do(t, http.MethodGet, "/api/search?field=any&q=", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSelectionAndGraph(t *testing.T) {
	s := newTestServer(t, rec("a", "C1", "d"), rec("a", "C2", "d"), rec("b", "C1", "d"), rec("c", "C1", "d"), rec("c", "C2", "d"))

	res := s.do(t, http.MethodPost, "/api/selection", map[string]any{"ingredients": []string{"a", "b"}}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	body := decode(t, res)
	assert.Equal(t, []any{"C1"}, body["defaults"])
	assert.Equal(t, []any{"C1", "C2"}, body["union"])

	res = s.do(t, http.MethodPost, "/api/graph", map[string]any{
		"ingredients": []string{"a"},
		"compounds":   []string{"C1", "C2"},
		"view":        "sankey",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	body = decode(t, res)
	assert.Equal(t, []any{"c"}, body["strong"])
	assert.Equal(t, []any{"b"}, body["weak"])
	data := body["data"].(map[string]any)
	assert.Len(t, data["labels"], 5)

	res = s.do(t, http.MethodPost, "/api/graph", map[string]any{"ingredients": []string{"a"}}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code, "single primary without compounds has no default selection")

	res = s.do(t, http.MethodPost, "/api/graph", map[string]any{"ingredients": []string{"a"}, "combine": "union", "view": "pie"}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRenderGraph(t *testing.T) {
	s := newTestServer(t, rec("a", "C1", "d"), rec("b", "C1", "d"))

	res := s.do(t, http.MethodPost, "/api/graph/render", map[string]any{
		"ingredients": []string{"a"},
		"combine":     "union",
		"view":        "heatmap",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Equal(t, "image/png", res.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(res.Body.Bytes(), []byte("\x89PNG")))

	res = s.do(t, http.MethodPost, "/api/graph/render", map[string]any{
		"ingredients": []string{"a"},
		"combine":     "union",
		"view":        " Circle ",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.True(t, bytes.HasPrefix(res.Body.Bytes(), []byte("\x89PNG")))

	res = s.do(t, http.MethodPost, "/api/graph", map[string]any{
		"ingredients": []string{"a"},
		"combine":     "union",
		"view":        "Heatmap",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Equal(t, "heatmap", decode(t, res)["view"])

	res = s.do(t, http.MethodPost, "/api/graph/render", map[string]any{
		"ingredients": []string{"a"},
		"combine":     "union",
		"view":        "network",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestExportDemoAndClear(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodPost, "/api/records/demo", nil, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	res = s.do(t, http.MethodPost, "/api/records/demo", nil, nil)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = s.do(t, http.MethodGet, "/api/records/export", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get(echo.HeaderContentDisposition), "flavor_database_backup.csv")
	assert.True(t, strings.HasPrefix(res.Body.String(), "\ufeffingredient,compound,descriptor\n"))

	res = s.do(t, http.MethodDelete, "/api/records", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 0, s.app.Store.Len())
	assert.Empty(t, s.backend.Saved())
}

func TestSaveFailureIsReported(t *testing.T) {
	s := newTestServer(t)
	s.backend.SaveErr = assert.AnError

	res := s.do(t, http.MethodPost, "/api/records", map[string]string{"ingredient": "a", "compound": "C1", "descriptor": "d"}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, decode(t, res)["warning"])
	assert.Equal(t, 1, s.app.Store.Len())
}

func TestBackupsDisabled(t *testing.T) {
	s := newTestServer(t)
	res := s.do(t, http.MethodGet, "/api/backups", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	res = s.do(t, http.MethodPost, "/api/backups", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestMasterAPIKey(t *testing.T) {
	s := newTestServer(t)
	s.app.MasterAPIKey = "secret"

	res := s.do(t, http.MethodGet, "/api/records", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = s.do(t, http.MethodGet, "/api/records", nil, http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = s.do(t, http.MethodPost, "/api/records/demo", nil, http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, res.Code)

	res = s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)
}
