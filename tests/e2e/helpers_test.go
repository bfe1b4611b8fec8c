package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// E2E_BASE_URL が無ければスキップ（CIでは起動済みサーバーに向ける）
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL is not set")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New failed: %v", err)
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"token_version"`
	IsActive     bool   `json:"is_active"`
}

type JwtAccessToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenVersion int64  `json:"token_version"`
}

type AuthLoginResponse struct {
	User  UserDTO        `json:"user"`
	Token JwtAccessToken `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CategoryID  int64  `json:"category_id"`
	IsActive    bool   `json:"is_active"`
}

type ProductDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}

type ProductListResponse struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
}

type CartItemDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartResponse struct {
	ID    int64         `json:"id"`
	Items []CartItemDTO `json:"items"`
	Total int64         `json:"total"`
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutRequest struct {
	CartID int64 `json:"cart_id,omitempty"`
}

type CheckoutResult struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	InvoiceID *int64 `json:"invoice_id,omitempty"`
}

type InvoiceDTO struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"user_id"`
	CartID      int64 `json:"cart_id"`
	TotalAmount int64 `json:"total_amount"`
}

type InvoiceListResponse struct {
	Items []InvoiceDTO `json:"items"`
	Total int64        `json:"total"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecode(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

// 管理者でログインしてaccess_tokenを取得。
// 管理者ユーザーはDBシード済みである前提（E2E_ADMIN_EMAIL/E2E_ADMIN_PASSWORD）。
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("E2E_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("E2E_ADMIN_PASSWORD")
	if password == "" {
		password = "admin-password-12345"
	}

	b, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	var login AuthLoginResponse
	mustDecode(t, body, &login)
	if strings.TrimSpace(login.Token.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}

	return login.Token.AccessToken
}

// 新規ユーザーを作ってログインする（テストごとに独立させる）
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := "e2e-" + time.Now().Format("20060102-150405.000000000") + "@example.com"
	password := "e2e-user-password-42"

	b, _ := json.Marshal(RegisterRequest{Email: email, Password: password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	b, _ = json.Marshal(LoginRequest{Email: email, Password: password})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	var login AuthLoginResponse
	mustDecode(t, body, &login)
	return login.Token.AccessToken
}

// 管理者でテスト用のカテゴリと商品を作る
func createTestProduct(t *testing.T, c *TestClient, ctx context.Context, admin string, price int64) int64 {
	t.Helper()

	suffix := time.Now().Format("20060102-150405.000000000")

	b, _ := json.Marshal(CategoryCreateRequest{Name: "E2E-Cat-" + suffix})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/admin/categories", admin, b)
	requireStatus(t, resp, http.StatusOK, body)

	var cat CategoryDTO
	mustDecode(t, body, &cat)

	b, _ = json.Marshal(ProductCreateRequest{
		Name:       "E2E-Product-" + suffix,
		Price:      price,
		CategoryID: cat.ID,
		IsActive:   true,
	})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/admin/products", admin, b)
	requireStatus(t, resp, http.StatusOK, body)

	var p ProductDTO
	mustDecode(t, body, &p)
	if p.ID <= 0 {
		t.Fatalf("product id should be > 0: body=%s", string(body))
	}
	return p.ID
}

func addToCart(t *testing.T, c *TestClient, ctx context.Context, access string, productID int64, qty int64) CartResponse {
	t.Helper()

	b, _ := json.Marshal(AddCartRequest{ProductID: productID, Quantity: qty})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart", access, b)
	requireStatus(t, resp, http.StatusOK, body)

	var cart CartResponse
	mustDecode(t, body, &cart)
	return cart
}
