package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/auth"
	"shopfront/internal/models"
)

func doRequest(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

var confirmHeader = map[string]string{"X-Confirm": "true"}

func TestProductLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	rec := doRequest(t, handler, http.MethodPost, "/v1/products", api.ProductCreateRequest{
		Name: "Anker Soundcore", Category: "earpod", Description: "wireless",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	created := decodeBody[api.ProductResponse](t, rec)
	if created.ID == "" || created.Name != "Anker Soundcore" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	rec = doRequest(t, handler, http.MethodGet, "/v1/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodPut, "/v1/products/"+created.ID, api.ProductUpdateRequest{
		Name: "Anker Soundcore 2", Category: "earpod",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	updated := decodeBody[api.ProductResponse](t, rec)
	if updated.Name != "Anker Soundcore 2" {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Deletes are gated on the confirm header.
	rec = doRequest(t, handler, http.MethodDelete, "/v1/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("unconfirmed delete: expected 428, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodGet, "/v1/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatal("product must survive an unconfirmed delete")
	}

	rec = doRequest(t, handler, http.MethodDelete, "/v1/products/"+created.ID, nil, confirmHeader)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("confirmed delete: expected 204, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodGet, "/v1/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestListProductsFiltersOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	fixtures := []api.ProductCreateRequest{
		{Name: "Anker charger", Category: "chargers", Description: "fast"},
		{Name: "Braided cable", Category: "cables", Description: "1m"},
		{Name: "Wall charger", Category: "chargers"},
	}
	for _, fixture := range fixtures {
		rec := doRequest(t, handler, http.MethodPost, "/v1/products", fixture, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q: %d: %s", fixture.Name, rec.Code, rec.Body)
		}
	}

	rec := doRequest(t, handler, http.MethodGet, "/v1/products?category=chargers&q=wall", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	products := decodeBody[[]api.ProductResponse](t, rec)
	if len(products) != 1 || products[0].Name != "Wall charger" {
		t.Fatalf("expected only the wall charger, got %+v", products)
	}

	// Sorted by name, case-insensitive.
	rec = doRequest(t, handler, http.MethodGet, "/v1/products", nil, nil)
	products = decodeBody[[]api.ProductResponse](t, rec)
	if len(products) != 3 || products[0].Name != "Anker charger" || products[2].Name != "Wall charger" {
		t.Fatalf("expected name ordering, got %+v", products)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	rec := doRequest(t, handler, http.MethodGet, "/v1/catalog", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200, got %d", rec.Code)
	}
	catalog := decodeBody[api.CatalogResponse](t, rec)
	if len(catalog.Categories) != len(models.DefaultCategories) {
		t.Fatalf("expected seeded categories, got %v", catalog.Categories)
	}
	if catalog.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", catalog.Revision)
	}
	if len(catalog.Products) != 0 {
		t.Fatalf("expected no products, got %d", len(catalog.Products))
	}
}

func TestCategoryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	rec := doRequest(t, handler, http.MethodGet, "/v1/categories", nil, nil)
	initial := decodeBody[api.CategoriesResponse](t, rec)

	rec = doRequest(t, handler, http.MethodPost, "/v1/categories", api.CategoryAddRequest{
		Name: "tripods", Revision: initial.Revision,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	added := decodeBody[api.CategoryMutationResponse](t, rec)
	if added.Revision != initial.Revision+1 {
		t.Fatalf("expected bumped revision, got %d", added.Revision)
	}

	// Stale revision conflicts.
	rec = doRequest(t, handler, http.MethodPost, "/v1/categories", api.CategoryAddRequest{
		Name: "gimbals", Revision: initial.Revision,
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale add: expected 409, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodPatch, "/v1/categories/tripods", api.CategoryRenameRequest{
		NewName: "camera tripods", Revision: added.Revision,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	renamed := decodeBody[api.CategoryMutationResponse](t, rec)

	rec = doRequest(t, handler, http.MethodDelete, "/v1/categories/camera%20tripods?revision=0", nil, confirmHeader)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad revision: expected 400, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodDelete,
		"/v1/categories/camera%20tripods?revision="+itoa(renamed.Revision), nil, nil)
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("unconfirmed delete: expected 428, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodDelete,
		"/v1/categories/camera%20tripods?revision="+itoa(renamed.Revision), nil, confirmHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestBlogEndpoints(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	longContent := "<p>" + strings.Repeat("word ", 60) + "</p>"
	rec := doRequest(t, handler, http.MethodPost, "/v1/blogs", api.BlogCreateRequest{
		Title: "Hello", Author: "jo", Content: longContent, Status: "published",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	created := decodeBody[api.BlogResponse](t, rec)
	if created.Content == "" {
		t.Fatal("single post response carries full content")
	}

	rec = doRequest(t, handler, http.MethodGet, "/v1/blogs", nil, nil)
	posts := decodeBody[[]api.BlogResponse](t, rec)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Content != "" {
		t.Fatal("list responses omit full content")
	}
	if !strings.HasSuffix(posts[0].Excerpt, "...") {
		t.Fatalf("expected truncated excerpt, got %q", posts[0].Excerpt)
	}
	if posts[0].DisplayDate == "" {
		t.Fatal("expected display date")
	}

	rec = doRequest(t, handler, http.MethodPost, "/v1/blogs", api.BlogCreateRequest{
		Title: "No author", Content: "x",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing author, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodDelete, "/v1/blogs/"+created.ID, nil, confirmHeader)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
}

func TestAdminGateOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	hash, err := auth.HashPassword("password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := srv.authStore.CreateAdminUser(t.Context(), "admin", hash, time.Now().UTC()); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	handler := srv.routes()

	// Reads stay open.
	rec := doRequest(t, handler, http.MethodGet, "/v1/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("read: expected 200, got %d", rec.Code)
	}

	// Writes now require credentials.
	body := api.ProductCreateRequest{Name: "Cable", Category: "cables"}
	rec = doRequest(t, handler, http.MethodPost, "/v1/products", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous write: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewReader(mustJSON(t, body)))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "password-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("basic auth write: expected 201, got %d: %s", recorder.Code, recorder.Body)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewReader(mustJSON(t, body)))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "wrong-password")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", recorder.Code)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestUploadAndServeOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	uploaded := decodeBody[api.UploadResponse](t, rec)
	if uploaded.Key == "" || uploaded.SizeBytes != int64(len("png-bytes")) {
		t.Fatalf("unexpected upload response: %+v", uploaded)
	}

	serveRec := doRequest(t, handler, http.MethodGet, "/blobs/"+uploaded.Key, nil, nil)
	if serveRec.Code != http.StatusOK {
		t.Fatalf("serve: expected 200, got %d", serveRec.Code)
	}
	if serveRec.Body.String() != "png-bytes" {
		t.Fatalf("unexpected blob body: %q", serveRec.Body.String())
	}
	if got := serveRec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png content type, got %q", got)
	}

	rec = doRequest(t, handler, http.MethodGet, "/blobs/missing.png", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing blob: expected 404, got %d", rec.Code)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="doc.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body)
	}
}

func TestHealthAndInfo(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	rec := doRequest(t, handler, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodGet, "/v1/info", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("info: expected 200, got %d", rec.Code)
	}
	info := decodeBody[api.InfoResponse](t, rec)
	if info.Categories != len(models.DefaultCategories) {
		t.Fatalf("expected seeded category count, got %d", info.Categories)
	}
}

func TestCatalogEndpointServesPartialView(t *testing.T) {
	st := testStore(t)
	srv := &Server{
		addr:      "127.0.0.1:0",
		catalog:   NewCatalogService(failingProductsStore{st}, nil),
		blogs:     NewBlogService(st),
		authStore: st,
		logger:    testLogger(),
	}

	rec := doRequest(t, srv.routes(), http.MethodGet, "/v1/catalog", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for partial catalog, got %d: %s", rec.Code, rec.Body)
	}

	catalog := decodeBody[api.CatalogResponse](t, rec)
	if len(catalog.Categories) == 0 || catalog.Revision == 0 {
		t.Fatalf("categories must serve when products are down: %+v", catalog)
	}
	if len(catalog.Products) != 0 {
		t.Fatalf("expected no products, got %d", len(catalog.Products))
	}
	if len(catalog.Warnings) != 1 || catalog.Warnings[0] != "products unavailable" {
		t.Fatalf("expected products warning, got %v", catalog.Warnings)
	}
}
