package domain

// CartItem references a product and a desired quantity. Prices are not
// stored in the cart; checkout resolves them from the catalog.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the per-user shopping cart kept in Redis.
type Cart struct {
	Items []CartItem `json:"items"`
}
