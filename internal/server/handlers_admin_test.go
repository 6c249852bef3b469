package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/pastry-blog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeBody = `{
	"slug": "bigne-crema",
	"title": "Bignè alla crema",
	"body_html": "<p>Choux ripieni di <strong>crema pasticcera</strong>.</p>",
	"categories": ["Pasticceria"],
	"difficulty": "medio",
	"prep_minutes": 60,
	"cook_minutes": 25,
	"servings": 12,
	"ingredients": [{"items": [{"quantity": "125", "unit": "g", "name": "burro"}]}],
	"published_at": "2025-05-20T08:00:00Z"
}`

func login(t *testing.T, h http.Handler) http.Header {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, "Chef@Example.com", testAdminPassword)
	w := doRequest(t, h, http.MethodPost, "/api/auth/login", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeJSON[types.LoginResponse](t, w)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, testAdminEmail, resp.Admin.Email)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	return http.Header{"Authorization": {"Bearer " + resp.Token}}
}

func TestAdminRoutesDisabledWithoutAccount(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/auth/login", `{"email":"a@b.it","password":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t, testAuthConfig(t))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed body", `{"email":`, http.StatusBadRequest},
		{"invalid email", `{"email":"chef","password":"x"}`, http.StatusBadRequest},
		{"missing password", `{"email":"chef@example.com"}`, http.StatusBadRequest},
		{"wrong password", `{"email":"chef@example.com","password":"wrong"}`, http.StatusUnauthorized},
		{"wrong email", fmt.Sprintf(`{"email":"other@example.com","password":%q}`, testAdminPassword), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodPost, "/api/auth/login", tt.body, nil)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, decodeJSON[map[string]string](t, w), "error")
		})
	}

	login(t, s.Handler())
}

func TestAdmin_RequiresToken(t *testing.T) {
	s, _ := newTestServer(t, testAuthConfig(t))

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, http.Header{"Authorization": {"Bearer not-a-jwt"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := NewJWTService(testAuthConfig(t))
	other.secret = []byte("another-secret")
	token, _, err := other.GenerateToken(testAdminEmail)
	require.NoError(t, err)
	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_RecipeLifecycle(t *testing.T) {
	s, store := newTestServer(t, testAuthConfig(t))
	auth := login(t, s.Handler())

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeJSON[types.Recipe](t, w)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, types.DifficultyMedium, created.Difficulty)
	assert.Equal(t, "Choux ripieni di crema pasticcera.", created.Excerpt)

	w = doRequest(t, s.Handler(), http.MethodGet, "/api/recipes/bigne-crema", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", recipeBody, auth)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Recipe already exists"}`, w.Body.String())

	w = doRequest(t, s.Handler(), http.MethodPut, "/api/admin/recipes/"+created.ID.String(), recipeBody, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPut, "/api/admin/recipes/"+uuid.NewString(), recipeBody, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPut, "/api/admin/recipes/not-a-uuid", recipeBody, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s.Handler(), http.MethodDelete, "/api/admin/recipes/"+created.ID.String(), "", auth)
	assert.Equal(t, http.StatusNoContent, w.Code)

	got, err := store.GetRecipe(context.Background(), "bigne-crema")
	require.NoError(t, err)
	assert.Nil(t, got)

	w = doRequest(t, s.Handler(), http.MethodDelete, "/api/admin/recipes/"+created.ID.String(), "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_ValidationErrors(t *testing.T) {
	s, _ := newTestServer(t, testAuthConfig(t))
	auth := login(t, s.Handler())

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/recipes", `{"slug":"x","title":"X","categories":["Torte"],"difficulty":"impossibile","servings":4,"ingredients":[{"items":[{"name":"uova"}]}]}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Difficulty")

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/techniques", `{"slug":"x","unknown":true}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
}

func TestAdmin_TechniqueAndScience(t *testing.T) {
	s, _ := newTestServer(t, testAuthConfig(t))
	auth := login(t, s.Handler())

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/techniques",
		`{"slug":"temperaggio","title":"Temperaggio del cioccolato","category":"Cioccolato","difficulty":"avanzato","duration_minutes":45,"published_at":"2025-01-10T08:00:00Z"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	technique := decodeJSON[types.Technique](t, w)

	w = doRequest(t, s.Handler(), http.MethodGet, "/api/techniques/temperaggio", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s.Handler(), http.MethodDelete, "/api/admin/techniques/"+technique.ID.String(), "", auth)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/science",
		`{"slug":"maillard","title":"La reazione di Maillard","category":"Chimica","difficulty":"intermedio","reading_minutes":6}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	article := decodeJSON[types.ScienceArticle](t, w)

	w = doRequest(t, s.Handler(), http.MethodGet, "/api/science/maillard", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "drafts without a publish date stay hidden")

	w = doRequest(t, s.Handler(), http.MethodPut, "/api/admin/science/"+article.ID.String(),
		`{"slug":"maillard","title":"La reazione di Maillard","category":"Chimica","difficulty":"intermedio","reading_minutes":6,"published_at":"2025-02-01T08:00:00Z"}`, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s.Handler(), http.MethodGet, "/api/science/maillard", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_ProductRefresh(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="Planetaria 5L">
			<meta property="og:image" content="https://img.example.com/planetaria.jpg">
			<meta property="product:price:amount" content="199,00">
			<meta property="product:price:currency" content="EUR">
		</head></html>`))
	}))
	defer page.Close()

	s, store := newTestServer(t, testAuthConfig(t))
	auth := login(t, s.Handler())

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/products",
		fmt.Sprintf(`{"name":"Planetaria","category":"Elettrodomestici","affiliate_url":%q}`, page.URL+"/dp/B0PLANET01"), auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decodeJSON[types.Product](t, w)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/products/"+product.ID.String()+"/refresh", "", auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	refreshed, err := store.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planetaria", refreshed.Name)
	assert.Equal(t, "https://img.example.com/planetaria.jpg", refreshed.ImageURL)
	require.NotNil(t, refreshed.Price)
	assert.InDelta(t, 199.0, *refreshed.Price, 1e-9)
	assert.Equal(t, "EUR", refreshed.Currency)

	w = doRequest(t, s.Handler(), http.MethodPost, "/api/admin/products/"+uuid.NewString()+"/refresh", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_ProductRefreshUpstreamError(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer page.Close()

	s, store := newTestServer(t, testAuthConfig(t))
	auth := login(t, s.Handler())

	product := &types.Product{Name: "Bilancia", Category: "Utensili", AffiliateURL: page.URL}
	require.NoError(t, store.CreateProduct(context.Background(), product))

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/admin/products/"+product.ID.String()+"/refresh", "", auth)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
