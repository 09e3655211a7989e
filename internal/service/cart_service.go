package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// CartLine is a cart item joined with its live catalog product.
type CartLine struct {
	ProductID int64
	Quantity  int64
	Product   domain.Product
}

// CartView is a cart priced at current catalog prices. Totals drift as the
// catalog changes; the snapshot happens only at order time.
type CartView struct {
	UserID int64
	Lines  []CartLine
	Total  float64
}

// CartService owns carts and validates stock on add.
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	tx       repository.TxManager
}

func NewCartService(products repository.ProductRepository, carts repository.CartRepository, tx repository.TxManager) *CartService {
	return &CartService{products: products, carts: carts, tx: tx}
}

// AddItem appends or merges a line after checking current stock. The check
// is against the full requested quantity; nothing is reserved until an
// order is placed.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int64) (*CartView, error) {
	if userID <= 0 || productID <= 0 || quantity <= 0 {
		return nil, ErrInvalidInput
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p.Stock < quantity {
			return ErrInsufficientStock
		}
		cart, err := s.carts.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			cart = &domain.Cart{UserID: userID}
		} else if err != nil {
			return err
		}
		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
		}
		if err := s.carts.Save(ctx, cart); err != nil {
			return err
		}
		view, err = s.priceCart(ctx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetCart never fails on a missing cart: it returns an empty view.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			cart = &domain.Cart{UserID: userID}
		} else if err != nil {
			return err
		}
		view, err = s.priceCart(ctx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem drops a product's line. Removing an absent line is a no-op;
// removing from an absent cart is ErrNotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (*CartView, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrInvalidInput
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("cart %w", repository.ErrNotFound)
			}
			return err
		}
		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
		if err := s.carts.Save(ctx, cart); err != nil {
			return err
		}
		view, err = s.priceCart(ctx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// priceCart joins lines with live products and sums the total.
func (s *CartService) priceCart(ctx context.Context, cart *domain.Cart) (*CartView, error) {
	view := &CartView{UserID: cart.UserID, Lines: make([]CartLine, 0, len(cart.Items))}
	for _, it := range cart.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		view.Lines = append(view.Lines, CartLine{ProductID: it.ProductID, Quantity: it.Quantity, Product: *p})
		view.Total += p.Price * float64(it.Quantity)
	}
	return view, nil
}
