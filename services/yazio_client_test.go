package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paccolajoao/yazio-consumer/models"
)

func testClient(baseURL string) *YazioClient {
	return &YazioClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestDecodeDayItemsArray(t *testing.T) {
	items := decodeDayItems([]any{
		map[string]any{"product_id": "p1"},
		map[string]any{"product_id": "p2"},
		"not an item",
	})

	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0]["product_id"])
}

func TestDecodeDayItemsObjectUnion(t *testing.T) {
	items := decodeDayItems(map[string]any{
		"products":        []any{map[string]any{"product_id": "p1"}},
		"simple_products": []any{map[string]any{"name": "coffee"}},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0]["product_id"])
	assert.Equal(t, "coffee", items[1]["name"])
}

func TestDecodeDayItemsObjectMissingFields(t *testing.T) {
	assert.Empty(t, decodeDayItems(map[string]any{"unrelated": true}))
	assert.Empty(t, decodeDayItems("bogus"))
	assert.Empty(t, decodeDayItems(nil))
}

func TestExtractProductID(t *testing.T) {
	assert.Equal(t, "p1", extractProductID(map[string]any{"product_id": "p1"}))
	assert.Equal(t, "p2", extractProductID(map[string]any{
		"product": map[string]any{"id": "p2"},
	}))
	// item-level field wins over the nested object
	assert.Equal(t, "p1", extractProductID(map[string]any{
		"product_id": "p1",
		"product":    map[string]any{"id": "p2"},
	}))
	assert.Equal(t, "", extractProductID(map[string]any{"name": "apple"}))
}

func TestFetchDayStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v9/user/consumed-items", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("date") {
		case "2024-03-01":
			w.Write([]byte(`[{"product_id":"p1","amount":100},{"product":{"id":"p2"}}]`))
		case "2024-03-02":
			w.Write([]byte(`{"products":[{"product_id":"p1"}],"simple_products":[{"name":"tea"}]}`))
		case "2024-03-03":
			w.WriteHeader(http.StatusNotFound)
		case "2024-03-04":
			w.WriteHeader(http.StatusUnauthorized)
		case "2024-03-05":
			w.Write([]byte(`{invalid json`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	token := models.AuthToken{AccessToken: "tok"}
	ctx := context.Background()

	day := client.FetchDay(ctx, token, testDate(t, "2024-03-01"))
	assert.Equal(t, fetchOK, day.Status)
	require.Len(t, day.Items, 2)
	assert.Equal(t, []string{"p1", "p2"}, day.ProductIDs)

	day = client.FetchDay(ctx, token, testDate(t, "2024-03-02"))
	assert.Equal(t, fetchOK, day.Status)
	assert.Len(t, day.Items, 2)
	assert.Equal(t, []string{"p1"}, day.ProductIDs)

	assert.Equal(t, fetchNoData, client.FetchDay(ctx, token, testDate(t, "2024-03-03")).Status)
	assert.Equal(t, fetchUnauthorized, client.FetchDay(ctx, token, testDate(t, "2024-03-04")).Status)
	assert.Equal(t, fetchFailed, client.FetchDay(ctx, token, testDate(t, "2024-03-05")).Status)
	assert.Equal(t, fetchFailed, client.FetchDay(ctx, token, testDate(t, "2024-03-06")).Status)
}

func TestFetchDayTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	day := testClient(srv.URL).FetchDay(context.Background(), models.AuthToken{AccessToken: "tok"}, testDate(t, "2024-03-01"))
	assert.Equal(t, fetchFailed, day.Status)
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v9/products/p1":
			w.Write([]byte(`{"id":"p1","name":"Oats","nutrients":{"energy":3.7,"protein":0.13,"fat":0.07,"carbohydrates":0.6}}`))
		case "/v9/products/bare":
			w.Write([]byte(`{}`))
		case "/v9/products/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/v9/products/denied":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	token := models.AuthToken{AccessToken: "tok"}
	ctx := context.Background()

	res := client.FetchProduct(ctx, token, "p1")
	require.Equal(t, fetchOK, res.Status)
	assert.Equal(t, "p1", res.Product.ID)
	assert.Equal(t, "Oats", res.Product.Name)
	assert.Equal(t, 3.7, res.Product.Nutrients.Calories)
	assert.Equal(t, 0.6, res.Product.Nutrients.Carbs)

	// Missing fields fall back to the requested id and the placeholder name.
	res = client.FetchProduct(ctx, token, "bare")
	require.Equal(t, fetchOK, res.Status)
	assert.Equal(t, "bare", res.Product.ID)
	assert.Equal(t, models.UnknownProductName, res.Product.Name)
	assert.Equal(t, models.Nutrients{}, res.Product.Nutrients)

	assert.Equal(t, fetchFailed, client.FetchProduct(ctx, token, "gone").Status)
	assert.Equal(t, fetchUnauthorized, client.FetchProduct(ctx, token, "denied").Status)
}

func TestLoginPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v9/oauth/token", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"access_token":"abc","refresh_token":"def","expires_in":3600}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.clientID = "id"
	client.clientSecret = "secret"

	data, err := client.LoginPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", data["access_token"])
}

func TestLoginPasswordRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LoginPassword(context.Background(), "a@b.c", "bad")
	assert.Error(t, err)
}
