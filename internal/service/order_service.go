package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// OrderService converts an item list into an immutable order: it validates
// every line, then decrements stock, appends the order and clears the
// user's cart as one unit.
type OrderService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

func NewOrderService(products repository.ProductRepository, carts repository.CartRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{products: products, carts: carts, orders: orders, tx: tx}
}

// PlaceOrder validates all lines before mutating anything, so a failure on
// any line leaves every product's stock untouched. Prices are snapshotted
// into the order at this moment. The user's cart is deleted whether or not
// its contents match the ordered items.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, items []domain.CartItem, shippingAddress string) (*domain.Order, error) {
	if userID <= 0 || len(items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Accumulate stock changes on copies; duplicate product ids across
		// lines draw down the same copy.
		copies := make(map[int64]*domain.Product)
		orderItems := make([]domain.OrderItem, 0, len(items))
		total := 0.0
		for _, it := range items {
			p, ok := copies[it.ProductID]
			if !ok {
				loaded, err := s.products.GetByID(ctx, it.ProductID)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return fmt.Errorf("product %d %w", it.ProductID, repository.ErrNotFound)
					}
					return err
				}
				copies[it.ProductID] = loaded
				p = loaded
			}
			if p.Stock < it.Quantity {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
			}
			p.Stock -= it.Quantity
			total += p.Price * float64(it.Quantity)
			orderItems = append(orderItems, domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.Quantity,
			})
		}

		// All lines validated: persist the decrements.
		for _, p := range copies {
			if err := s.products.Update(ctx, p); err != nil {
				return err
			}
		}

		o := domain.Order{
			UserID:          userID,
			Items:           orderItems,
			Total:           FormatAmount(total),
			ShippingAddress: shippingAddress,
			Status:          domain.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := s.carts.Delete(ctx, userID); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByUser returns the user's orders in creation order.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.orders.ListByUser(ctx, userID)
}

// FormatAmount renders a money amount with exactly two decimals, the way
// totals appear on the wire.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
