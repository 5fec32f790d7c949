package enrich

import (
	"encoding/json"

	"github.com/storegenius/storegenius/internal/suggest"
)

// EnrichedProduct is the externally visible unit of the trending pipeline.
// Image is null when no acceptable image was found.
type EnrichedProduct struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// EnrichedCategory groups enriched products under the category name chosen
// by the suggestion service.
type EnrichedCategory struct {
	Category string            `json:"category"`
	Products []EnrichedProduct `json:"products"`
}

// FlatProduct is a raw suggestion-service record with an image attached,
// returned by the free-text search path.
type FlatProduct struct {
	Product suggest.Product
	Image   string
}

// MarshalJSON spreads the product's passthrough fields and adds the image.
func (p FlatProduct) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(p.Product)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	image, err := json.Marshal(p.Image)
	if err != nil {
		return nil, err
	}
	fields["image"] = image
	return json.Marshal(fields)
}
