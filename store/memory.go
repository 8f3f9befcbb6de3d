package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"webshop-backend/models"
)

// In-memory store implementations. Used by tests so handlers and the seeder
// can run against isolated instances without a MongoDB connection.

// MemoryProductStore is a mutex-guarded in-memory ProductStore.
type MemoryProductStore struct {
	mu       sync.Mutex
	products []models.Product
}

// NewMemoryProductStore creates an empty in-memory product store.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

func (s *MemoryProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryProductStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	return nil
}

func (s *MemoryProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products = append(s.products, p)
	}
	return nil
}

// MemoryUserStore is a mutex-guarded in-memory UserStore. The mutex also
// serializes AddCartLine, giving the same per-user exclusion the Mongo
// implementation gets from its conditional updates.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

// Put inserts or replaces a user record.
func (s *MemoryUserStore) Put(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := cloneUser(user)
	s.users[user.ID] = clone
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	updated := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity += qty
			updated = true
			break
		}
	}
	if !updated {
		user.Cart = append(user.Cart, models.CartLine{ProductID: productID, Quantity: qty})
	}
	return cloneUser(user), nil
}

func cloneUser(user *models.User) *models.User {
	clone := *user
	clone.Cart = make([]models.CartLine, len(user.Cart))
	copy(clone.Cart, user.Cart)
	return &clone
}

// MemorySessionStore is a mutex-guarded in-memory SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

func (s *MemorySessionStore) Create(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *MemorySessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
