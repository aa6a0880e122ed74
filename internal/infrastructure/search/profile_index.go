package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// ProfilesMapping is applied when the profiles index is first created.
const ProfilesMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "keyword"},
      "public_handle": {"type": "keyword"},
      "name":          {"type": "text"},
      "headline":      {"type": "text"},
      "avatar_url":    {"type": "keyword", "index": false}
    }
  }
}`

const requestTimeout = 3 * time.Second

// ProfileIndex stores public profile documents in Elasticsearch. Email is never indexed.
type ProfileIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{es: es, index: index}
}

// Ensure creates the index with ProfilesMapping if it is missing.
func (p *ProfileIndex) Ensure(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, p.es, p.index, ProfilesMapping)
}

func (p *ProfileIndex) Index(ctx context.Context, doc application.ProfileDoc) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndexRequest{Index: p.index, DocumentID: doc.ID, Body: bytes.NewReader(b), Refresh: "false"}.Do(c, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index profile %s: %s", doc.ID, res.Status())
	}
	return nil
}

// Search matches handle exactly (boosted) and name/headline by full text.
func (p *ProfileIndex) Search(ctx context.Context, q string, size int) ([]application.ProfileDoc, error) {
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := p.es.Search(
		p.es.Search.WithContext(c),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source application.ProfileDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]application.ProfileDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"term": map[string]any{"public_handle": map[string]any{"value": q, "boost": 3}}},
					map[string]any{"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"name^2", "headline"},
					}},
				},
				"minimum_should_match": 1,
			},
		},
	}
}
