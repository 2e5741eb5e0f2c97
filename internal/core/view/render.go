// Package view renders catalog and cart state into named presentation
// targets. It knows nothing about HTTP; callers supply a port.Page.
package view

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/port"
)

func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// RenderCatalogGrid writes one card per product, keeping the first limit
// products when limit is positive.
func RenderCatalogGrid(page port.Page, target string, products []domain.Product, limit int) error {
	if !page.Has(target) {
		return nil
	}
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}

	var b strings.Builder
	for _, p := range products {
		card, err := execute("card", p)
		if err != nil {
			return err
		}
		b.WriteString(string(card))
	}
	page.SetHTML(target, template.HTML(b.String()))
	return nil
}

func RenderCartTable(page port.Page, cart *domain.Cart) error {
	total := FormatPrice(cart.TotalValue())
	page.SetText(TargetCartTotal, total)
	page.SetText(TargetCartSubtotal, total)

	if !page.Has(TargetCartItems) {
		return nil
	}
	if cart.IsEmpty() {
		row, err := execute("cart-empty", nil)
		if err != nil {
			return err
		}
		page.SetHTML(TargetCartItems, row)
		return nil
	}

	var b strings.Builder
	for _, l := range cart.Lines() {
		row, err := execute("cart-row", struct {
			domain.CartLine
			Total decimal.Decimal
		}{l, l.Total()})
		if err != nil {
			return err
		}
		b.WriteString(string(row))
	}
	page.SetHTML(TargetCartItems, template.HTML(b.String()))
	return nil
}

// RenderProductDetail fills the detail slots for the product named by the
// id query parameter. It reports false and writes nothing when the id is
// missing or unknown.
func RenderProductDetail(page port.Page, catalog *domain.Catalog, query url.Values) (domain.Product, bool) {
	id, err := strconv.Atoi(query.Get("id"))
	if err != nil {
		return domain.Product{}, false
	}
	p, ok := catalog.Find(id)
	if !ok {
		return domain.Product{}, false
	}

	page.SetAttr(TargetMainImage, "src", p.Image)
	page.SetAttr(TargetMainImage, "alt", p.Name)
	page.SetText(TargetProductName, p.Name)
	page.SetText(TargetProductCat, "Home / "+p.Category)
	page.SetText(TargetProductPrice, FormatPrice(p.Price))
	page.SetText(TargetProductDesc, p.Description)
	page.Bind(TargetAddToCart, port.Action{
		Method: http.MethodPost,
		Path:   "/cart/add/" + strconv.Itoa(p.ID),
	})
	return p, true
}

func UpdateCartBadge(page port.Page, cart *domain.Cart) {
	if !page.Has(TargetCartCount) {
		return
	}
	page.SetText(TargetCartCount, strconv.Itoa(cart.TotalItemCount()))
}

// RenderCategoryFilter writes the shop's category links, marking active.
func RenderCategoryFilter(page port.Page, categories []string, active string) error {
	if !page.Has(TargetCategoryFilter) {
		return nil
	}
	// Filtering ignores case, so mark the link in the catalog's spelling.
	for _, c := range categories {
		if strings.EqualFold(c, strings.TrimSpace(active)) {
			active = c
			break
		}
	}
	links, err := execute("category-filter", struct {
		Categories []string
		Active     string
	}{categories, active})
	if err != nil {
		return err
	}
	page.SetHTML(TargetCategoryFilter, links)
	return nil
}
