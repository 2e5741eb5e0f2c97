package cartrpc

type GetCartRequest struct {
	ShopperID string `json:"shopper_id"`
}

type AddLineRequest struct {
	ShopperID string `json:"shopper_id"`
	ProductID int32  `json:"product_id"`
}

type RemoveLineRequest struct {
	ShopperID string `json:"shopper_id"`
	ProductID int32  `json:"product_id"`
}

type SetQuantityDeltaRequest struct {
	ShopperID string `json:"shopper_id"`
	ProductID int32  `json:"product_id"`
	Delta     int32  `json:"delta"`
}

type CartLine struct {
	ProductID int32  `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int32      `json:"item_count"`
	Total     string     `json:"total"`
}
