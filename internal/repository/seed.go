package repository

import (
	"context"

	"storefront/internal/domain"
)

// SeedDemoData loads the demo catalog, items and voters into the store.
// Called once at boot; ids come out 1..n in slice order.
func SeedDemoData(ctx context.Context, store *MemoryStore) error {
	products := []domain.Product{
		{Name: "Wireless Headphones", Description: "High-quality Bluetooth headphones with noise cancellation", Price: 79.99, Category: "Electronics", Stock: 50, Image: "/public/images/wireless_headset.jpg"},
		{Name: "Smart Watch", Description: "Fitness tracker with heart rate monitor", Price: 199.99, Category: "Electronics", Stock: 30, Image: "/public/images/smart_watch.jpg"},
		{Name: "Running Shoes", Description: "Comfortable sports shoes for running", Price: 89.99, Category: "Sports", Stock: 100, Image: "/public/images/running_shoes.jpg"},
		{Name: "Coffee Maker", Description: "Automatic coffee machine with timer", Price: 129.99, Category: "Home & Kitchen", Stock: 20, Image: "/public/images/Coffee_Maker.jpg"},
		{Name: "Backpack", Description: "Water-resistant laptop backpack", Price: 49.99, Category: "Accessories", Stock: 75, Image: "/public/images/Backpack.jpg"},
		{Name: "Yoga Mat", Description: "Non-slip exercise mat", Price: 29.99, Category: "Sports", Stock: 150, Image: "/public/images/Yoga_Mat.jpg"},
	}
	for i := range products {
		if err := store.Create(ctx, &products[i]); err != nil {
			return err
		}
	}

	items := NewMemoryItems(store)
	for _, it := range []domain.Item{
		{Name: "Item 1", Description: "First item"},
		{Name: "Item 2", Description: "Second item"},
		{Name: "Item 3", Description: "Third item"},
	} {
		cp := it
		if err := items.Create(ctx, &cp); err != nil {
			return err
		}
	}

	voters := NewMemoryVoters(store)
	for _, v := range []domain.Voter{
		{Name: "User Name1", Age: 25},
		{Name: "User Name2", Age: 17},
		{Name: "User Name3", Age: 45, HasVoted: true},
	} {
		cp := v
		if err := voters.Create(ctx, &cp); err != nil {
			return err
		}
	}
	return nil
}
