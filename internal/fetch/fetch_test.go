package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/pastry-blog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `
<html>
	<head>
		<title>Amazon.it: Tortiera</title>
		<meta property="og:title" content="Tortiera apribile antiaderente 24 cm">
		<meta property="og:description" content="Stampo a cerniera per torte e cheesecake">
		<meta property="og:image" content="/images/tortiera.jpg">
		<meta property="product:price:amount" content="14,90">
		<meta property="product:price:currency" content="eur">
	</head>
	<body><span id="productTitle">Tortiera</span></body>
</html>`

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestProductMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(productPage))
	}))
	defer server.Close()

	info, err := ProductMetadata(context.Background(), server.URL+"/dp/B000123456", nil)
	require.NoError(t, err)

	assert.Equal(t, "Tortiera apribile antiaderente 24 cm", info.Title)
	assert.Equal(t, server.URL+"/images/tortiera.jpg", info.ImageURL)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 14.90, *info.Price, 1e-9)
	assert.Equal(t, "EUR", info.Currency)
}

func TestParseProductHTML_FallbackTitle(t *testing.T) {
	info, err := ParseProductHTML(`<html><body><span id="productTitle"> Sac à poche </span></body></html>`, "https://example.com/p")
	require.NoError(t, err)
	assert.Equal(t, "Sac à poche", info.Title)
	assert.Nil(t, info.Price)
}

func TestParseProductHTML_NoTitle(t *testing.T) {
	_, err := ParseProductHTML(`<html><body><p>nothing</p></body></html>`, "https://example.com/p")
	assert.Error(t, err)
}

func TestProductInfo_Apply(t *testing.T) {
	price := 9.5
	info := &ProductInfo{Title: "Titolo dal sito", ImageURL: "https://img.example.com/a.jpg", Price: &price, Currency: "EUR"}
	p := types.Product{Name: "Nome curato", Description: "Descrizione curata"}

	info.Apply(&p)

	assert.Equal(t, "Nome curato", p.Name)
	assert.Equal(t, "Descrizione curata", p.Description)
	assert.Equal(t, "https://img.example.com/a.jpg", p.ImageURL)
	assert.Equal(t, &price, p.Price)
	assert.Equal(t, "EUR", p.Currency)
}

func TestParsePrice(t *testing.T) {
	tests := map[string]float64{"24.90": 24.90, "24,90": 24.90, "1.024,90": 1024.90, "7": 7}
	for in, want := range tests {
		got, ok := parsePrice(in)
		assert.True(t, ok, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
	_, ok := parsePrice("gratis")
	assert.False(t, ok)
}
