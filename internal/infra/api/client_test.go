package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"app/internal/catalog"
	"app/internal/domain/model"
	"app/internal/filter"
	"app/internal/infra/api"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServer は商品一覧APIのスタブ。受け取ったクエリを記録する。
type stubServer struct {
	mu        sync.Mutex
	lastQuery url.Values
	lastReq   *http.Request

	status  int
	payload interface{}
}

func newStubServer(t *testing.T) (*stubServer, *api.Client) {
	t.Helper()

	s := &stubServer{status: http.StatusOK}

	e := echo.New()
	e.GET("/products", func(c echo.Context) error {
		s.mu.Lock()
		s.lastQuery = c.QueryParams()
		s.lastReq = c.Request()
		status := s.status
		payload := s.payload
		s.mu.Unlock()
		return c.JSON(status, payload)
	})
	e.GET("/products/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    model.Product{ID: 1, Name: "Coffee", IsActive: true},
		})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return s, api.NewClient(srv.URL, "")
}

func (s *stubServer) respond(status int, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.payload = payload
}

func (s *stubServer) query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

func okPayload(items []model.Product, pg catalog.Pagination) map[string]interface{} {
	return map[string]interface{}{
		"success":    true,
		"data":       items,
		"pagination": pg,
	}
}

// =====================
// Search
// =====================

func TestClient_Search_Success(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusOK, okPayload(
		[]model.Product{{ID: 1, Name: "Coffee"}, {ID: 2, Name: "Mug"}},
		catalog.Pagination{Page: 1, Limit: 12, Total: 2, Pages: 1},
	))

	res, err := client.Search(context.Background(), filter.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, len(res.Items))
	assert.Equal(t, int64(2), res.Pagination.Total)
	assert.Equal(t, 1, res.Pagination.Pages)
}

func TestClient_Search_SendsCriteriaAsQuery(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusOK, okPayload(nil, catalog.Pagination{Page: 1, Limit: 12}))

	cat := "electronics"
	colors := []string{"black", "silver"}
	min := int64(1000)
	crit := filter.Default().Apply(filter.Patch{
		Category: &cat,
		Colors:   &colors,
		MinPrice: &min,
	})

	_, err := client.Search(context.Background(), crit)
	require.NoError(t, err)

	q := s.query()
	assert.Equal(t, "electronics", q.Get("category"))
	assert.Equal(t, "black,silver", q.Get("colors"))
	assert.Equal(t, "1000", q.Get("minPrice"))
	assert.Equal(t, "popular", q.Get("sortBy"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "12", q.Get("limit"))

	// デフォルトのフィールドは送らない
	_, hasSearch := q["search"]
	_, hasMax := q["maxPrice"]
	assert.False(t, hasSearch)
	assert.False(t, hasMax)
}

func TestClient_Search_SetsRequestHeaders(t *testing.T) {
	s := &stubServer{status: http.StatusOK, payload: okPayload(nil, catalog.Pagination{Page: 1, Limit: 12})}

	e := echo.New()
	e.GET("/products", func(c echo.Context) error {
		s.mu.Lock()
		s.lastReq = c.Request()
		s.mu.Unlock()
		return c.JSON(http.StatusOK, s.payload)
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := api.NewClient(srv.URL, "token-123")
	_, err := client.Search(context.Background(), filter.Default())
	require.NoError(t, err)

	s.mu.Lock()
	req := s.lastReq
	s.mu.Unlock()
	assert.Equal(t, "Bearer token-123", req.Header.Get("Authorization"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestClient_Search_ServerError(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusInternalServerError, map[string]string{"error": "db error"})

	_, err := client.Search(context.Background(), filter.Default())
	require.Error(t, err)

	qe, ok := catalog.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindServer, qe.Kind)
	assert.Equal(t, http.StatusInternalServerError, qe.Status)
	assert.Equal(t, "db error", qe.Message)
	assert.True(t, qe.Retryable())
}

func TestClient_Search_ClientError(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusBadRequest, map[string]string{"error": "invalid sort"})

	_, err := client.Search(context.Background(), filter.Default())
	require.Error(t, err)

	qe, ok := catalog.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindClient, qe.Kind)
	assert.False(t, qe.Retryable())
}

func TestClient_Search_SuccessFalseIsError(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusOK, map[string]interface{}{
		"success": false,
		"error":   "index rebuilding",
	})

	_, err := client.Search(context.Background(), filter.Default())
	require.Error(t, err)

	qe, ok := catalog.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindServer, qe.Kind)
	assert.Equal(t, "index rebuilding", qe.Message)
}

func TestClient_Search_NetworkError(t *testing.T) {
	e := echo.New()
	srv := httptest.NewServer(e)
	srv.Close() // 接続先が落ちている状態

	client := api.NewClient(srv.URL, "")
	_, err := client.Search(context.Background(), filter.Default())
	require.Error(t, err)

	qe, ok := catalog.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindNetwork, qe.Kind)
	assert.True(t, qe.Retryable())
}

func TestClient_Search_EmptyResultIsNotError(t *testing.T) {
	s, client := newStubServer(t)
	s.respond(http.StatusOK, okPayload([]model.Product{}, catalog.Pagination{Page: 1, Limit: 12, Total: 0, Pages: 0}))

	res, err := client.Search(context.Background(), filter.Default())
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

// =====================
// FindByID
// =====================

func TestClient_FindByID_Success(t *testing.T) {
	_, client := newStubServer(t)

	p, err := client.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Coffee", p.Name)
}

func TestClient_FindByID_NotFound(t *testing.T) {
	_, client := newStubServer(t)

	_, err := client.FindByID(context.Background(), 404)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}
