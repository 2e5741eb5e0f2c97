package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/fitgear/internal/adapter/handler/cartrpc"
	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/core/service"
)

type GRPCHandler struct {
	cartrpc.UnimplementedCartServiceServer
	carts *service.CartService
}

func NewGRPCHandler(carts *service.CartService) *GRPCHandler {
	return &GRPCHandler{carts: carts}
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *cartrpc.GetCartRequest) (*cartrpc.CartResponse, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}
	cart, err := h.carts.Cart(ctx, req.ShopperID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartResponse(cart), nil
}

func (h *GRPCHandler) AddLine(ctx context.Context, req *cartrpc.AddLineRequest) (*cartrpc.CartResponse, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}
	cart, _, err := h.carts.AddLine(ctx, req.ShopperID, int(req.ProductID))
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartResponse(cart), nil
}

func (h *GRPCHandler) RemoveLine(ctx context.Context, req *cartrpc.RemoveLineRequest) (*cartrpc.CartResponse, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}
	cart, err := h.carts.RemoveLine(ctx, req.ShopperID, int(req.ProductID))
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartResponse(cart), nil
}

func (h *GRPCHandler) SetQuantityDelta(ctx context.Context, req *cartrpc.SetQuantityDeltaRequest) (*cartrpc.CartResponse, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}
	cart, err := h.carts.SetQuantityDelta(ctx, req.ShopperID, int(req.ProductID), int(req.Delta))
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartResponse(cart), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrPersistence):
		return status.Error(codes.Unavailable, "cart storage unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toCartResponse(cart *domain.Cart) *cartrpc.CartResponse {
	resp := &cartrpc.CartResponse{
		Lines:     make([]cartrpc.CartLine, 0, len(cart.Lines())),
		ItemCount: int32(cart.TotalItemCount()),
		Total:     cart.TotalValue().StringFixed(2),
	}
	for _, l := range cart.Lines() {
		resp.Lines = append(resp.Lines, cartrpc.CartLine{
			ProductID: int32(l.ProductID),
			Name:      l.Name,
			Category:  l.Category,
			Price:     l.Price.StringFixed(2),
			Quantity:  int32(l.Quantity),
			LineTotal: l.Total().StringFixed(2),
		})
	}
	return resp
}
