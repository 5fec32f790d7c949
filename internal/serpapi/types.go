package serpapi

// ShoppingResult is a single entry from the google_shopping engine. Only the
// title feeds trend extraction; the rest is kept for logging and snapshots.
type ShoppingResult struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Link      string `json:"link"`
	Price     string `json:"price"`
	Thumbnail string `json:"thumbnail"`
}

// ImageResult is a single candidate from the google_images engine. The
// thumbnail is the only field ever emitted downstream; link, original and
// title are used to match candidates against a product name.
type ImageResult struct {
	Link      string `json:"link"`
	Original  string `json:"original"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}
