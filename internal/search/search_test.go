package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/models"
)

func TestBuildQuery(t *testing.T) {
	q := buildQuery("book", 20, 10)
	assert.Equal(t, 20, q["from"])
	assert.Equal(t, 10, q["size"])
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "book", mm["query"])
}

func TestDecodeHits(t *testing.T) {
	id := uuid.New()
	body := `{"hits":{"total":{"value":7},"hits":[{"_source":{"id":"` + id.String() + `","name":"book","price":3.5}}]}}`

	total, prods, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, prods, 1)
	assert.Equal(t, id, prods[0].ID)
	assert.Equal(t, "book", prods[0].Name)
}

func TestDisabled(t *testing.T) {
	var idx Index = Disabled{}
	require.NoError(t, idx.IndexProduct(context.Background(), models.Product{}))
	_, _, err := idx.Search(context.Background(), "q", 0, 10)
	assert.ErrorIs(t, err, ErrDisabled)
}

func newFakeES(t *testing.T, handler http.HandlerFunc) *ESIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewESIndex(es, "products")
}

func TestESIndex_RoundTrip(t *testing.T) {
	var indexed models.Product
	idx := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut || (r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/_doc/")):
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &indexed)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"name":"book"}}]}}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	ctx := context.Background()
	p := models.Product{ID: uuid.New(), Name: "book", Price: 2}
	require.NoError(t, idx.IndexProduct(ctx, p))
	assert.Equal(t, "book", indexed.Name)

	total, prods, err := idx.Search(ctx, "bok", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, prods, 1)

	require.NoError(t, idx.DeleteProduct(ctx, p.ID.String()))
}

func TestESIndex_SearchError(t *testing.T) {
	idx := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, _, err := idx.Search(context.Background(), "q", 0, 10)
	require.ErrorContains(t, err, "status 500")
}
