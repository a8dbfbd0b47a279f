package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/catalog"
	"app/internal/domain/model"
	"app/internal/filter"

	"github.com/google/uuid"
)

// Client は商品一覧APIに対する catalog.Querier 実装。
// token が空でなければ Authorization ヘッダを付ける。
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// DI
func NewClient(baseURL string, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GET /products の応答
type listResponse struct {
	Success    bool               `json:"success"`
	Data       []model.Product    `json:"data"`
	Pagination catalog.Pagination `json:"pagination"`
	Error      string             `json:"error"`
}

// Search は条件をクエリ文字列にして GET /products を呼ぶ。
// 失敗は network / server / client に分類して返す。
func (c *Client) Search(ctx context.Context, crit filter.Criteria) (catalog.Result, error) {
	path := "/products?" + crit.Values().Encode()

	body, status, err := c.get(ctx, path)
	if err != nil {
		return catalog.Result{}, err
	}

	if status >= http.StatusInternalServerError {
		return catalog.Result{}, catalog.NewQueryError(catalog.KindServer, status, errorMessage(body))
	}
	if status >= http.StatusBadRequest {
		return catalog.Result{}, catalog.NewQueryError(catalog.KindClient, status, errorMessage(body))
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return catalog.Result{}, catalog.NewQueryError(catalog.KindServer, status, "invalid response body")
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "request failed"
		}
		return catalog.Result{}, catalog.NewQueryError(catalog.KindServer, status, msg)
	}

	res := catalog.Result{
		Items:      out.Data,
		Pagination: out.Pagination,
	}
	return res.Normalize(), nil
}

// GET /products/:id の応答
type detailResponse struct {
	Success bool          `json:"success"`
	Data    model.Product `json:"data"`
	Error   string        `json:"error"`
}

// FindByID は商品詳細を取得する。404 は ErrNotFound。
func (c *Client) FindByID(ctx context.Context, id int64) (model.Product, error) {
	body, status, err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10))
	if err != nil {
		return model.Product{}, err
	}

	if status == http.StatusNotFound {
		return model.Product{}, catalog.ErrNotFound
	}
	if status >= http.StatusInternalServerError {
		return model.Product{}, catalog.NewQueryError(catalog.KindServer, status, errorMessage(body))
	}
	if status >= http.StatusBadRequest {
		return model.Product{}, catalog.NewQueryError(catalog.KindClient, status, errorMessage(body))
	}

	var out detailResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return model.Product{}, catalog.NewQueryError(catalog.KindServer, status, "invalid response body")
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "request failed"
		}
		return model.Product{}, catalog.NewQueryError(catalog.KindServer, status, msg)
	}

	return out.Data, nil
}

// get はGETして本文とステータスを返す。トランスポート障害は network 扱い。
func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, catalog.NewQueryError(catalog.KindClient, 0, err.Error())
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, catalog.NewQueryError(catalog.KindNetwork, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, catalog.NewQueryError(catalog.KindNetwork, resp.StatusCode, fmt.Sprintf("read body: %v", err))
	}

	return body, resp.StatusCode, nil
}

// errorMessage はエラー応答の {"error": "..."} を取り出す
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return "request failed"
}
