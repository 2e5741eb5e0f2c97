package view

// Presentation targets the renderer writes into.
const (
	TargetProductGrid    = "product-grid"
	TargetCartCount      = "cart-count"
	TargetCartItems      = "cart-items"
	TargetCartTotal      = "cart-total"
	TargetCartSubtotal   = "cart-subtotal"
	TargetMainImage      = "main-img"
	TargetProductName    = "p-name"
	TargetProductCat     = "p-category"
	TargetProductPrice   = "p-price"
	TargetProductDesc    = "p-desc"
	TargetAddToCart      = "add-to-cart-btn"
	TargetCategoryFilter = "category-filter"
)
