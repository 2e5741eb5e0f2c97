package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/core/service"
	"github.com/rl1809/fitgear/internal/core/view"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "fitgear_flash"

type HTTPHandler struct {
	carts         *service.CartService
	orders        *service.OrderService
	featuredLimit int
	log           *zap.Logger
	pages         map[string]*template.Template
}

type CartHTTPResponse struct {
	Items []domain.CartLine `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

func NewHTTPHandler(carts *service.CartService, orders *service.OrderService, featuredLimit int, log *zap.Logger) (*HTTPHandler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pages, err := parsePages("home", "shop", "product", "cart", "notfound")
	if err != nil {
		return nil, err
	}
	return &HTTPHandler{
		carts:         carts,
		orders:        orders,
		featuredLimit: featuredLimit,
		log:           log,
		pages:         pages,
	}, nil
}

func parsePages(names ...string) (map[string]*template.Template, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/health", h.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(shopperMiddleware)

		r.Get("/", h.home)
		r.Get("/shop", h.shop)
		r.Get("/product", h.product)
		r.Get("/cart", h.cart)
		r.Post("/cart/add/{id}", h.addToCart)
		r.Post("/cart/remove/{id}", h.removeFromCart)
		r.Post("/cart/quantity/{id}", h.updateQuantity)
		r.Post("/checkout", h.checkout)
		r.Get("/api/cart", h.apiCart)
	})
	return r
}

func (h *HTTPHandler) home(w http.ResponseWriter, r *http.Request) {
	page := newDocumentPage("Home", view.TargetProductGrid)
	products := h.carts.Catalog().Products()

	if err := view.RenderCatalogGrid(page, view.TargetProductGrid, products, h.featuredLimit); err != nil {
		h.fail(w, r, err)
		return
	}
	view.UpdateCartBadge(page, h.loadCart(r))
	h.render(w, r, http.StatusOK, "home", page)
}

func (h *HTTPHandler) shop(w http.ResponseWriter, r *http.Request) {
	catalog := h.carts.Catalog()
	category := r.URL.Query().Get("category")
	page := newDocumentPage("Shop", view.TargetProductGrid, view.TargetCategoryFilter)

	if err := view.RenderCategoryFilter(page, catalog.Categories(), category); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := view.RenderCatalogGrid(page, view.TargetProductGrid, catalog.ByCategory(category), 0); err != nil {
		h.fail(w, r, err)
		return
	}
	view.UpdateCartBadge(page, h.loadCart(r))
	h.render(w, r, http.StatusOK, "shop", page)
}

func (h *HTTPHandler) product(w http.ResponseWriter, r *http.Request) {
	page := newDocumentPage("Product",
		view.TargetMainImage, view.TargetProductName, view.TargetProductCat,
		view.TargetProductPrice, view.TargetProductDesc, view.TargetAddToCart,
	)
	view.UpdateCartBadge(page, h.loadCart(r))

	p, ok := view.RenderProductDetail(page, h.carts.Catalog(), r.URL.Query())
	if !ok {
		page.Title = "Not Found"
		h.render(w, r, http.StatusNotFound, "notfound", page)
		return
	}
	page.Title = p.Name
	h.render(w, r, http.StatusOK, "product", page)
}

func (h *HTTPHandler) cart(w http.ResponseWriter, r *http.Request) {
	page := newDocumentPage("Cart", view.TargetCartItems, view.TargetCartTotal, view.TargetCartSubtotal)
	page.CheckoutToken = uuid.NewString()

	cart := h.loadCart(r)
	if err := view.RenderCartTable(page, cart); err != nil {
		h.fail(w, r, err)
		return
	}
	view.UpdateCartBadge(page, cart)
	h.render(w, r, http.StatusOK, "cart", page)
}

func (h *HTTPHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		_, product, err := h.carts.AddLine(r.Context(), shopperIDFromContext(r.Context()), id)
		switch {
		case err == nil:
			setFlash(w, product.Name+" added to cart!")
		case errors.Is(err, service.ErrProductNotFound):
		default:
			h.logCartError(r, "add to cart failed", err)
		}
	}
	http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
}

func (h *HTTPHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.Atoi(chi.URLParam(r, "id")); err == nil {
		if _, err := h.carts.RemoveLine(r.Context(), shopperIDFromContext(r.Context()), id); err != nil {
			h.logCartError(r, "remove from cart failed", err)
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// updateQuantity applies the difference between the submitted quantity and
// the quantity the form was rendered with.
func (h *HTTPHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	quantity, qerr := strconv.Atoi(r.PostFormValue("quantity"))
	prev, perr := strconv.Atoi(r.PostFormValue("prev"))
	if qerr != nil || perr != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if delta := quantity - prev; delta != 0 {
		if _, err := h.carts.SetQuantityDelta(r.Context(), shopperIDFromContext(r.Context()), id, delta); err != nil {
			h.logCartError(r, "update quantity failed", err)
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *HTTPHandler) checkout(w http.ResponseWriter, r *http.Request) {
	requestID := r.PostFormValue("request_id")
	if requestID == "" {
		requestID = requestIDFromContext(r.Context())
	}

	order, err := h.orders.Checkout(r.Context(), requestID, shopperIDFromContext(r.Context()))
	switch {
	case err == nil:
		h.log.Info("order placed",
			zap.String("order_id", order.ID),
			zap.Int("items", order.ItemCount()),
			zap.String("total", order.Total.StringFixed(2)),
		)
		setFlash(w, fmt.Sprintf("Order placed! Total %s", view.FormatPrice(order.Total)))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, service.ErrEmptyCart):
		setFlash(w, "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	case errors.Is(err, service.ErrDuplicateRequest):
		setFlash(w, "This order was already placed.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		h.logCartError(r, "checkout failed", err)
		setFlash(w, "Checkout failed, please try again.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func (h *HTTPHandler) apiCart(w http.ResponseWriter, r *http.Request) {
	cart := h.loadCart(r)
	writeJSON(w, http.StatusOK, CartHTTPResponse{
		Items: cart.Lines(),
		Count: cart.TotalItemCount(),
		Total: cart.TotalValue().StringFixed(2),
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadCart never fails the page: an unreachable store renders as an empty
// cart and is logged.
func (h *HTTPHandler) loadCart(r *http.Request) *domain.Cart {
	cart, err := h.carts.Cart(r.Context(), shopperIDFromContext(r.Context()))
	if err != nil {
		h.logCartError(r, "load cart failed", err)
	}
	return cart
}

func (h *HTTPHandler) logCartError(r *http.Request, msg string, err error) {
	h.log.Error(msg,
		zap.Error(err),
		zap.String("shopper_id", shopperIDFromContext(r.Context())),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, page *documentPage) {
	page.Flash = takeFlash(w, r)

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", page); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("render failed", zap.Error(err), zap.String("path", r.URL.Path))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func takeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

// backTo returns the local part of the Referer so the shopper lands where
// they clicked, never on another host.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	return (&url.URL{Path: ref.Path, RawQuery: ref.RawQuery}).String()
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
