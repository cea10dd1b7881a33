package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
)

type fakeAccounts struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]models.Account
	findErr  error
	createFn func(*models.Account) error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: map[uuid.UUID]models.Account{}}
}

func (f *fakeAccounts) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, a := range f.byID {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) GetAccount(_ context.Context, id uuid.UUID) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAccounts) CreateAccount(_ context.Context, a *models.Account) error {
	if f.createFn != nil {
		if err := f.createFn(a); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeProducts struct {
	mu        sync.Mutex
	items     map[uuid.UUID]models.Product
	createErr error
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: map[uuid.UUID]models.Product{}}
}

func (f *fakeProducts) ListProducts(_ context.Context, offset, limit int) (int64, []models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return total, out, nil
}

func (f *fakeProducts) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) CreateProduct(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, id uuid.UUID, updates map[string]any) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if v, ok := updates["name"].(string); ok {
		p.Name = v
	}
	if v, ok := updates["price"].(float64); ok {
		p.Price = v
	}
	f.items[id] = p
	return &p, nil
}

func (f *fakeProducts) DeleteProduct(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeOrders struct {
	mu    sync.Mutex
	items map[uuid.UUID]models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{items: map[uuid.UUID]models.Order{}}
}

func (f *fakeOrders) ListOrders(_ context.Context, _, _ int) (int64, []models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.items))
	for _, o := range f.items {
		out = append(out, o)
	}
	return int64(len(out)), out, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) CreateOrder(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[o.ID] = *o
	return nil
}

func (f *fakeOrders) DeleteOrder(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	topics []string
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(events.Event); ok {
		p.events = append(p.events, ev)
		p.topics = append(p.topics, topic)
	}
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
