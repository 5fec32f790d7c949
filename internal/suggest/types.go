package suggest

import "encoding/json"

// Product is a suggested catalog item. Beyond the product name the service's
// fields are passed through untouched, so unknown keys survive a round trip.
type Product struct {
	ProductName string
	Extra       map[string]json.RawMessage
}

// UnmarshalJSON pulls out product_name and keeps every other field raw.
// A missing or non-string product_name yields an empty name, not an error.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["product_name"]; ok {
		// tolerate non-string values by leaving the name empty
		_ = json.Unmarshal(raw, &p.ProductName)
		delete(fields, "product_name")
	}
	p.Extra = fields
	return nil
}

// MarshalJSON re-emits the passthrough fields alongside product_name.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+1)
	for key, value := range p.Extra {
		out[key] = value
	}
	name, err := json.Marshal(p.ProductName)
	if err != nil {
		return nil, err
	}
	out["product_name"] = name
	return json.Marshal(out)
}

// Suggestion is the suggestion service's answer for a trend query. Keywords
// lists category names in the order the service chose; Results maps each
// category to its suggested products. Either may be empty.
type Suggestion struct {
	Trend    string               `json:"trend"`
	Keywords []string             `json:"keywords"`
	Results  map[string][]Product `json:"results"`
}
