package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tomlord1122/todoey/internal/repository"
	"github.com/Tomlord1122/todoey/internal/service"
	"github.com/Tomlord1122/todoey/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, items repository.ItemStore, sections repository.SectionStore) *httptest.Server {
	t.Helper()
	s := &Server{
		items:    service.NewItemManager(items, nil),
		sections: service.NewSectionManager(sections, nil),
		health:   StaticHealth{"store": "memory"},
	}
	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewReader([]byte(b))
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func itemNames(items []ItemResponse) []string {
	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.Name)
	}
	return names
}

func TestHealthHandler(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())

	resp := do(t, http.MethodGet, ts.URL+"/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "up", body["status"])
	assert.Equal(t, "memory", body["store"])
}

func TestHealthHandler_Down(t *testing.T) {
	mem := repository.NewMemoryStore()
	s := &Server{
		items:    service.NewItemManager(mem.Items(), nil),
		sections: service.NewSectionManager(mem.Sections(), nil),
		health:   StaticHealth{"status": "down"},
	}
	rr := httptest.NewRecorder()

	s.RegisterRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSectionLifecycle(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())

	resp := do(t, http.MethodPost, ts.URL+"/sections", SectionRequest{Name: "Work"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sections := decode[[]SectionResponse](t, resp)
	require.Len(t, sections, 1)
	id := sections[0].ID

	resp = do(t, http.MethodPost, ts.URL+"/sections", SectionRequest{Name: "Home"})
	sections = decode[[]SectionResponse](t, resp)
	require.Len(t, sections, 2)
	assert.Equal(t, "Home", sections[0].Name)

	resp = do(t, http.MethodPut, ts.URL+"/sections/"+id, SectionRequest{Name: "Office"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections = decode[[]SectionResponse](t, resp)
	assert.Equal(t, "Office", sections[1].Name)

	resp = do(t, http.MethodDelete, ts.URL+"/sections/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections = decode[[]SectionResponse](t, resp)
	require.Len(t, sections, 1)
	assert.Equal(t, "Home", sections[0].Name)

	resp = do(t, http.MethodGet, ts.URL+"/sections", nil)
	assert.Len(t, decode[[]SectionResponse](t, resp), 1)
}

func TestSectionValidation(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())

	tests := []struct {
		name string
		body any
	}{
		{"empty name", SectionRequest{Name: "  "}},
		{"bad json", `{"name":`},
		{"unknown field", `{"title":"x"}`},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/sections", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := do(t, http.MethodPut, ts.URL+"/sections/missing", SectionRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemLifecycle(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())
	section := testutil.MustSection(t, mem.Sections(), "Work")
	base := ts.URL + "/sections/" + section.ID + "/items"

	resp := do(t, http.MethodPost, base, `{"name":"Report","description":"Q3","priority":"low"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	items := decode[[]ItemResponse](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, "low", items[0].Priority)
	assert.Equal(t, int16(3), items[0].PriorityLevel)
	assert.False(t, items[0].IsCompleted)
	reportID := items[0].ID

	resp = do(t, http.MethodPost, base, `{"name":"Email","description":"","priority":1}`)
	items = decode[[]ItemResponse](t, resp)
	assert.Equal(t, []string{"Email", "Report"}, itemNames(items))

	resp = do(t, http.MethodPut, base+"/"+reportID, ItemRequest{Name: "Report v2", Description: "Q4", Priority: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items = decode[[]ItemResponse](t, resp)
	assert.Equal(t, []string{"Email", "Report v2"}, itemNames(items))

	resp = do(t, http.MethodPost, base+"/"+reportID+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Email"}, itemNames(decode[[]ItemResponse](t, resp)))

	resp = do(t, http.MethodGet, base+"?show_completed=true", nil)
	assert.Equal(t, []string{"Email", "Report v2"}, itemNames(decode[[]ItemResponse](t, resp)))

	resp = do(t, http.MethodGet, base+"?q=REPORT&show_completed=true", nil)
	assert.Equal(t, []string{"Report v2"}, itemNames(decode[[]ItemResponse](t, resp)))

	resp = do(t, http.MethodDelete, base+"/"+reportID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodGet, base+"?show_completed=true", nil)
	assert.Equal(t, []string{"Email"}, itemNames(decode[[]ItemResponse](t, resp)))
}

func TestItemValidation(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())
	section := testutil.MustSection(t, mem.Sections(), "Work")
	base := ts.URL + "/sections/" + section.ID + "/items"

	tests := []struct {
		name string
		body string
	}{
		{"missing priority", `{"name":"x"}`},
		{"unknown priority name", `{"name":"x","priority":"urgent"}`},
		{"priority out of range", `{"name":"x","priority":4}`},
		{"empty name", `{"name":"","priority":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, base, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := do(t, http.MethodGet, base+"?show_completed=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/sections/missing/items", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemInOtherSectionIsNotFound(t *testing.T) {
	mem := repository.NewMemoryStore()
	ts := newTestServer(t, mem.Items(), mem.Sections())
	a := testutil.MustSection(t, mem.Sections(), "A")
	b := testutil.MustSection(t, mem.Sections(), "B")
	item := testutil.MustItem(t, mem.Items(), a, "Task")

	resp := do(t, http.MethodPost, ts.URL+"/sections/"+b.ID+"/items/"+item.ID+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, ts.URL+"/sections/"+a.ID+"/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	mem := repository.NewMemoryStore()
	failing := &testutil.FailingItemStore{ItemStore: mem.Items(), UpdateErr: errors.New("disk full")}
	ts := newTestServer(t, failing, mem.Sections())
	section := testutil.MustSection(t, mem.Sections(), "Work")
	item := testutil.MustItem(t, mem.Items(), section, "Task")

	resp := do(t, http.MethodPost, ts.URL+"/sections/"+section.ID+"/items/"+item.ID+"/complete", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	stored, err := mem.Items().FindByID(t.Context(), item.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCompleted)
}
