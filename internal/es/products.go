package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/kmalyshev/shopcart/internal/models"
)

// IndexProduct upserts one product document. Callers treat failures as
// best-effort: the DB row is authoritative, the index is a cache.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, index string, p *models.Product) error {
	if client == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("es: marshal product: %w", err)
	}

	res, err := client.Index(
		index,
		bytes.NewReader(data),
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("es: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index product: %s", res.Status())
	}
	return nil
}

func DeleteProductDoc(ctx context.Context, client *elasticsearch.Client, index string, id uuid.UUID) error {
	if client == nil {
		return nil
	}

	res, err := client.Delete(
		index,
		id.String(),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete product doc: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete product doc: %s", res.Status())
	}
	return nil
}
