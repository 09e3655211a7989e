package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
)

// MemoryStore is the combined in-memory store for catalog, cart, order and
// demo records, plus monotonic id counters. Listing order follows insertion
// order, so ids are kept in slices alongside the maps.
type MemoryStore struct {
	mu           sync.RWMutex
	nextProdID   int64
	nextOrderID  int64
	nextItemID   int64
	nextVoterID  int64
	productIDs   []int64
	productsByID map[int64]domain.Product
	cartsByUser  map[int64]domain.Cart
	orders       []domain.Order
	itemIDs      []int64
	itemsByID    map[int64]domain.Item
	voterIDs     []int64
	votersByID   map[int64]domain.Voter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProdID:   1,
		nextOrderID:  1,
		nextItemID:   1,
		nextVoterID:  1,
		productsByID: make(map[int64]domain.Product),
		cartsByUser:  make(map[int64]domain.Cart),
		itemsByID:    make(map[int64]domain.Item),
		votersByID:   make(map[int64]domain.Voter),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation

func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextProdID
	m.nextProdID++
	m.productsByID[p.ID] = *p
	m.productIDs = append(m.productIDs, p.ID)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, id := range m.productIDs {
		p := m.productsByID[id]
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Search != "" && !containsIgnoreCase(p.Name, f.Search) && !containsIgnoreCase(p.Description, f.Search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range m.productIDs {
		c := m.productsByID[id].Category
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// CartRepository implementation on wrapper type

type MemoryCarts struct{ store *MemoryStore }

func NewMemoryCarts(store *MemoryStore) *MemoryCarts { return &MemoryCarts{store: store} }

var _ CartRepository = (*MemoryCarts)(nil)

func (mc *MemoryCarts) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.cartsByUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp, nil
}

func (mc *MemoryCarts) Save(ctx context.Context, cart *domain.Cart) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	mc.store.cartsByUser[cart.UserID] = cp
	return nil
}

func (mc *MemoryCarts) Delete(ctx context.Context, userID int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	delete(mc.store.cartsByUser, userID)
	return nil
}

// OrderRepository implementation on wrapper type

type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	o.CreatedAt = time.Now().UTC()
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	mo.store.orders = append(mo.store.orders, cp)
	return nil
}

func (mo *MemoryOrders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.orders {
		if o.UserID != userID {
			continue
		}
		cp := o
		cp.Items = append([]domain.OrderItem(nil), o.Items...)
		out = append(out, cp)
	}
	return out, nil
}

// ItemRepository implementation on wrapper type

type MemoryItems struct{ store *MemoryStore }

func NewMemoryItems(store *MemoryStore) *MemoryItems { return &MemoryItems{store: store} }

var _ ItemRepository = (*MemoryItems)(nil)

func (mi *MemoryItems) Create(ctx context.Context, it *domain.Item) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	it.ID = mi.store.nextItemID
	mi.store.nextItemID++
	mi.store.itemsByID[it.ID] = *it
	mi.store.itemIDs = append(mi.store.itemIDs, it.ID)
	return nil
}

func (mi *MemoryItems) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	it, ok := mi.store.itemsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := it
	return &cp, nil
}

func (mi *MemoryItems) Update(ctx context.Context, it *domain.Item) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	if _, ok := mi.store.itemsByID[it.ID]; !ok {
		return ErrNotFound
	}
	mi.store.itemsByID[it.ID] = *it
	return nil
}

func (mi *MemoryItems) Delete(ctx context.Context, id int64) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	if _, ok := mi.store.itemsByID[id]; !ok {
		return ErrNotFound
	}
	delete(mi.store.itemsByID, id)
	for i, v := range mi.store.itemIDs {
		if v == id {
			mi.store.itemIDs = append(mi.store.itemIDs[:i], mi.store.itemIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (mi *MemoryItems) List(ctx context.Context) ([]domain.Item, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	out := make([]domain.Item, 0, len(mi.store.itemIDs))
	for _, id := range mi.store.itemIDs {
		out = append(out, mi.store.itemsByID[id])
	}
	return out, nil
}

// VoterRepository implementation on wrapper type

type MemoryVoters struct{ store *MemoryStore }

func NewMemoryVoters(store *MemoryStore) *MemoryVoters { return &MemoryVoters{store: store} }

var _ VoterRepository = (*MemoryVoters)(nil)

func (mv *MemoryVoters) Create(ctx context.Context, v *domain.Voter) error {
	mv.store.wlock(ctx)
	defer mv.store.wunlock(ctx)
	v.ID = mv.store.nextVoterID
	mv.store.nextVoterID++
	mv.store.votersByID[v.ID] = *v
	mv.store.voterIDs = append(mv.store.voterIDs, v.ID)
	return nil
}

func (mv *MemoryVoters) GetByID(ctx context.Context, id int64) (*domain.Voter, error) {
	mv.store.rlock(ctx)
	defer mv.store.runlock(ctx)
	v, ok := mv.store.votersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := v
	return &cp, nil
}

func (mv *MemoryVoters) List(ctx context.Context) ([]domain.Voter, error) {
	mv.store.rlock(ctx)
	defer mv.store.runlock(ctx)
	out := make([]domain.Voter, 0, len(mv.store.voterIDs))
	for _, id := range mv.store.voterIDs {
		out = append(out, mv.store.votersByID[id])
	}
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary

type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Hold the write lock for the whole unit and mark the context so the
	// repositories skip their own locks.
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
