// Package memory implements the repository stores with mutex-guarded maps.
// Uniqueness rules match the MongoDB indexes so services behave the same.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *UserStore) UpsertByEmail(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var current models.User
	found := false
	for _, u := range s.users {
		if u.Email == user.Email {
			current, found = u, true
			break
		}
	}
	if !found {
		current = models.User{ID: primitive.NewObjectID(), Email: user.Email, CreatedAt: now}
	}
	applyProfile(&current, user.Name, user.Profile)
	current.UpdatedAt = now
	s.users[current.ID] = current
	return &current, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, profile models.Profile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	applyProfile(&u, name, profile)
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return &u, nil
}

func (s *UserStore) SetRole(_ context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return &u, nil
}

func (s *UserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func applyProfile(u *models.User, name string, p models.Profile) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&u.Name, name)
	set(&u.Education, p.Education)
	set(&u.Location, p.Location)
	set(&u.Phone, p.Phone)
	set(&u.LinkedIn, p.LinkedIn)
	set(&u.Image, p.Image)
}

type ToolStore struct {
	mu    sync.RWMutex
	tools []models.Tool
}

func NewToolStore() *ToolStore {
	return &ToolStore{}
}

func (s *ToolStore) Insert(_ context.Context, tool *models.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(tool.Name, primitive.NilObjectID) {
		return repository.ErrDuplicate
	}
	if tool.ID.IsZero() {
		tool.ID = primitive.NewObjectID()
	}
	s.tools = append(s.tools, *tool)
	return nil
}

func (s *ToolStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		t := s.tools[i]
		return &t, nil
	}
	return nil, repository.ErrNotFound
}

func (s *ToolStore) Find(_ context.Context, q models.ToolQuery) ([]models.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.matching(q.Search)
	if q.Limit <= 0 {
		return matched, nil
	}
	if len(matched) == 0 || q.Page > (len(matched)-1)/q.Limit {
		return []models.Tool{}, nil
	}
	skip := q.Page * q.Limit
	end := len(matched)
	if q.Limit < end-skip {
		end = skip + q.Limit
	}
	return matched[skip:end], nil
}

func (s *ToolStore) Count(_ context.Context, search string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(search))), nil
}

func (s *ToolStore) Upsert(_ context.Context, id primitive.ObjectID, tool *models.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(tool.Name, id) {
		return repository.ErrDuplicate
	}
	t := *tool
	t.ID = id
	if i := s.index(id); i >= 0 {
		s.tools[i] = t
		return nil
	}
	s.tools = append(s.tools, t)
	return nil
}

func (s *ToolStore) SetImage(_ context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.tools[i].Image = url
	return nil
}

func (s *ToolStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.tools = append(s.tools[:i], s.tools[i+1:]...)
	return nil
}

func (s *ToolStore) index(id primitive.ObjectID) int {
	for i := range s.tools {
		if s.tools[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ToolStore) nameTaken(name string, except primitive.ObjectID) bool {
	for _, t := range s.tools {
		if t.Name == name && t.ID != except {
			return true
		}
	}
	return false
}

func (s *ToolStore) matching(search string) []models.Tool {
	needle := strings.ToLower(search)
	out := []models.Tool{}
	for _, t := range s.tools {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, t)
		}
	}
	return out
}

type OrderStore struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *OrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (s *OrderStore) FindByCustomer(_ context.Context, email string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *OrderStore) MarkPaid(_ context.Context, id primitive.ObjectID, transactionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Paid {
		return false, nil
	}
	o.Paid = true
	o.TransactionID = &transactionID
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *OrderStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.orders)), nil
}

type PaymentStore struct {
	mu       sync.RWMutex
	payments []models.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{}
}

func (s *PaymentStore) Insert(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.OrderID == payment.OrderID {
			return repository.ErrDuplicate
		}
	}
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	s.payments = append(s.payments, *payment)
	return nil
}

func (s *PaymentStore) FindByOrder(_ context.Context, orderID primitive.ObjectID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.OrderID == orderID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *PaymentStore) FindByCustomer(_ context.Context, email string) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.CustomerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PaymentStore) Revenue(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		total += p.TotalToolPrice
	}
	return total, nil
}

// All returns a copy of every stored payment.
func (s *PaymentStore) All() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Payment(nil), s.payments...)
}

type ReviewStore struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{}
}

func (s *ReviewStore) Insert(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	s.reviews = append(s.reviews, *review)
	return nil
}

func (s *ReviewStore) List(_ context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Review, 0, len(s.reviews))
	for i := len(s.reviews) - 1; i >= 0; i-- {
		out = append(out, s.reviews[i])
	}
	return out, nil
}

func (s *ReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reviews {
		if r.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// Transactor runs fn directly; the memory stores have no rollback.
type Transactor struct{}

func (Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	_ repository.UserStore    = (*UserStore)(nil)
	_ repository.ToolStore    = (*ToolStore)(nil)
	_ repository.OrderStore   = (*OrderStore)(nil)
	_ repository.PaymentStore = (*PaymentStore)(nil)
	_ repository.ReviewStore  = (*ReviewStore)(nil)
	_ repository.Transactor   = Transactor{}
)
