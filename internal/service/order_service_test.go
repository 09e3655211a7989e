package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type testStores struct {
	store   *repository.MemoryStore
	carts   *repository.MemoryCarts
	catalog *CatalogService
	cart    *CartService
	orders  *OrderService
}

func setup(t *testing.T) *testStores {
	t.Helper()
	store := repository.NewMemoryStore()
	carts := repository.NewMemoryCarts(store)
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)
	return &testStores{
		store:   store,
		carts:   carts,
		catalog: NewCatalogService(store),
		cart:    NewCartService(store, carts, tx),
		orders:  NewOrderService(store, carts, ordersRepo, tx),
	}
}

func seedProduct(t *testing.T, ts *testStores, name string, price float64, stock int64) *domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Description: name, Price: price, Category: "X", Stock: stock}
	if err := ts.store.Create(context.Background(), &p); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return &p
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p1 := seedProduct(t, ts, "A", 10, 5)
	p2 := seedProduct(t, ts, "B", 20, 2)

	o, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{
		{ProductID: p1.ID, Quantity: 3},
		{ProductID: p2.ID, Quantity: 2},
	}, "123 Main St")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.ID == 0 {
		t.Fatalf("no id")
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending, got %v", o.Status)
	}
	if o.Total != "70.00" {
		t.Fatalf("total: expected 70.00, got %v", o.Total)
	}
	if o.ShippingAddress != "123 Main St" {
		t.Fatalf("shipping address lost")
	}
	if len(o.Items) != 2 || o.Items[0].Name != "A" || o.Items[0].Price != 10 {
		t.Fatalf("snapshot items wrong: %+v", o.Items)
	}

	p1After, _ := ts.catalog.GetByID(ctx, p1.ID)
	p2After, _ := ts.catalog.GetByID(ctx, p2.ID)
	if p1After.Stock != 2 || p2After.Stock != 0 {
		t.Fatalf("stock not decreased: %v %v", p1After.Stock, p2After.Stock)
	}

	mine, err := ts.orders.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != o.ID {
		t.Fatalf("order not listed: %+v", mine)
	}
}

func TestPlaceOrder_SnapshotSurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p := seedProduct(t, ts, "A", 10, 5)

	o, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, "addr")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// raise the catalog price after the order
	cur, _ := ts.store.GetByID(ctx, p.ID)
	cur.Price = 999
	if err := ts.store.Update(ctx, cur); err != nil {
		t.Fatalf("update price: %v", err)
	}

	mine, _ := ts.orders.ListByUser(ctx, 7)
	if mine[0].Items[0].Price != 10 || mine[0].Total != o.Total {
		t.Fatalf("order snapshot mutated: %+v", mine[0])
	}
}

func TestPlaceOrder_InsufficientStockNoPartialDecrement(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p1 := seedProduct(t, ts, "A", 10, 5)
	p2 := seedProduct(t, ts, "B", 20, 1)

	// second line fails, first line's stock must stay untouched
	_, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 5},
	}, "addr")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	p1After, _ := ts.store.GetByID(ctx, p1.ID)
	p2After, _ := ts.store.GetByID(ctx, p2.ID)
	if p1After.Stock != 5 || p2After.Stock != 1 {
		t.Fatalf("partial decrement leaked: %v %v", p1After.Stock, p2After.Stock)
	}

	if orders, _ := ts.orders.ListByUser(ctx, 7); len(orders) != 0 {
		t.Fatalf("order created on failure")
	}
}

func TestPlaceOrder_DuplicateLinesShareStock(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p := seedProduct(t, ts, "A", 10, 3)

	// 2+2 of the same product exceeds stock 3 even though each line alone fits
	_, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: p.ID, Quantity: 2},
	}, "addr")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	o, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: p.ID, Quantity: 1},
	}, "addr")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.Total != "30.00" {
		t.Fatalf("total: %v", o.Total)
	}
	after, _ := ts.store.GetByID(ctx, p.ID)
	if after.Stock != 0 {
		t.Fatalf("stock: %v", after.Stock)
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p := seedProduct(t, ts, "A", 10, 5)

	_, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	}, "addr")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	after, _ := ts.store.GetByID(ctx, p.ID)
	if after.Stock != 5 {
		t.Fatalf("stock mutated on failure: %v", after.Stock)
	}
}

func TestPlaceOrder_ClearsCart(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p1 := seedProduct(t, ts, "A", 10, 5)
	p2 := seedProduct(t, ts, "B", 20, 5)

	if _, err := ts.cart.AddItem(ctx, 7, p1.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// ordered items need not match the cart; the cart goes away regardless
	if _, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{{ProductID: p2.ID, Quantity: 1}}, "addr"); err != nil {
		t.Fatalf("place order: %v", err)
	}

	view, err := ts.cart.GetCart(ctx, 7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Lines) != 0 || view.Total != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	p := seedProduct(t, ts, "A", 10, 5)

	if _, err := ts.orders.PlaceOrder(ctx, 0, []domain.CartItem{{ProductID: p.ID, Quantity: 1}}, "addr"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing user, got %v", err)
	}
	if _, err := ts.orders.PlaceOrder(ctx, 7, nil, "addr"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty items, got %v", err)
	}
	if _, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{{ProductID: p.ID, Quantity: 0}}, "addr"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero quantity, got %v", err)
	}
}

func TestPlaceOrder_WorkedExample(t *testing.T) {
	ctx := context.Background()
	ts := setup(t)
	if err := repository.SeedDemoData(ctx, ts.store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Running Shoes: seeded id 3, price 89.99, stock 100
	view, err := ts.cart.AddItem(ctx, 7, 3, 2)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if FormatAmount(view.Total) != "179.98" {
		t.Fatalf("cart total: expected 179.98, got %v", FormatAmount(view.Total))
	}

	o, err := ts.orders.PlaceOrder(ctx, 7, []domain.CartItem{{ProductID: 3, Quantity: 2}}, "123 Main St")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.Total != "179.98" {
		t.Fatalf("order total: expected 179.98, got %v", o.Total)
	}
	shoes, _ := ts.store.GetByID(ctx, 3)
	if shoes.Stock != 98 {
		t.Fatalf("stock: expected 98, got %v", shoes.Stock)
	}
	cart, _ := ts.cart.GetCart(ctx, 7)
	if len(cart.Lines) != 0 {
		t.Fatalf("cart not emptied")
	}
}
