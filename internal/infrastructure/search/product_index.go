// Package search keeps the product read model in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

const productMapping = `{
  "mappings": {
    "properties": {
      "productId": {"type": "keyword"},
      "userId":    {"type": "keyword"},
      "status":    {"type": "keyword"},
      "code":      {"type": "keyword"},
      "name":      {"type": "text"},
      "price":     {"type": "scaled_float", "scaling_factor": 100},
      "quantity":  {"type": "integer"}
    }
  }
}`

// ProductIndex stores one document per product, with the product id as the
// document id, so re-indexing the same projection is idempotent.
type ProductIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewProductIndex(es *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{es: es, index: index, timeout: 3 * time.Second}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *ProductIndex) EnsureIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("es: index exists: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(productMapping)}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("es: create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es: create index: %s", res.Status())
	}
	return nil
}

func (x *ProductIndex) Index(ctx context.Context, p projection.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.IndexRequest{Index: x.index, DocumentID: p.ProductID.String(), Body: bytes.NewReader(body), Refresh: "false"}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("es: index %s: %w", p.ProductID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es: index %s: %s", p.ProductID, res.Status())
	}
	return nil
}

// GetProjection returns nil, nil when the document does not exist.
func (x *ProductIndex) GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := esapi.GetRequest{Index: x.index, DocumentID: id.String()}.Do(ctx, x.es)
	if err != nil {
		return nil, domainerr.Storage("product.search_get", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, domainerr.Storage("product.search_get", fmt.Errorf("es: %s", res.Status()))
	}

	var doc struct {
		Source projection.Product `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, domainerr.Storage("product.search_get", err)
	}
	return &doc.Source, nil
}

var _ repository.ProductQueryRepository = (*ProductIndex)(nil)
