// Package testhelpers provides in-memory repository fakes for service and
// controller tests. The fakes serialize all access through one mutex, which
// mirrors the row-lock serialization the SQL repositories rely on.
package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/audit"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// MemStateRepository implements repositories.StateRepository.
type MemStateRepository struct {
	mu     sync.Mutex
	states map[string]*models.State
}

func NewMemStateRepository() *MemStateRepository {
	return &MemStateRepository{states: make(map[string]*models.State)}
}

func (r *MemStateRepository) GetByID(_ context.Context, id uuid.UUID) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.states {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemStateRepository) GetByName(_ context.Context, name string) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *MemStateRepository) GetOrCreate(_ context.Context, name, description string) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[name]; ok {
		cp := *s
		return &cp, nil
	}
	now := time.Now()
	s := &models.State{ID: uuid.New(), Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	r.states[name] = s
	cp := *s
	return &cp, nil
}

func (r *MemStateRepository) List(_ context.Context) ([]*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.State, 0, len(r.states))
	for _, s := range r.states {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemActionTypeRepository implements repositories.ActionTypeRepository.
type MemActionTypeRepository struct {
	mu    sync.Mutex
	types map[string]*models.ActionType
}

func NewMemActionTypeRepository() *MemActionTypeRepository {
	return &MemActionTypeRepository{types: make(map[string]*models.ActionType)}
}

func (r *MemActionTypeRepository) GetByName(_ context.Context, name string) (*models.ActionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (r *MemActionTypeRepository) GetOrCreate(_ context.Context, name string, stateID uuid.UUID) (*models.ActionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.types[name]; ok {
		cp := *t
		return &cp, nil
	}
	now := time.Now()
	t := &models.ActionType{ID: uuid.New(), Name: name, StateID: stateID, CreatedAt: now, UpdatedAt: now}
	r.types[name] = t
	cp := *t
	return &cp, nil
}

func (r *MemActionTypeRepository) List(_ context.Context) ([]*models.ActionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ActionType, 0, len(r.types))
	for _, t := range r.types {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemActionRepository implements repositories.ActionRepository. References
// are assigned under the mutex so concurrent opens serialize exactly like
// the row-locked SQL path.
type MemActionRepository struct {
	mu      sync.Mutex
	actions []*models.Action

	// Lookups resolved when building ActionDetail rows.
	Types  *MemActionTypeRepository
	States *MemStateRepository
	Users  *MemEUserRepository
}

func NewMemActionRepository(types *MemActionTypeRepository, states *MemStateRepository, users *MemEUserRepository) *MemActionRepository {
	return &MemActionRepository{Types: types, States: states, Users: users}
}

const maxReferenceRetries = 20

func (r *MemActionRepository) CreateWithReference(_ context.Context, a *models.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last string
	if n := len(r.actions); n > 0 {
		last = r.actions[n-1].Reference
	}
	ref := audit.NextReference(last)
	for attempt := 0; r.referenceTaken(ref); attempt++ {
		if attempt >= maxReferenceRetries {
			return utils.ErrReferenceExhausted
		}
		ref = audit.NextReference(ref)
	}

	now := time.Now()
	a.Reference = ref
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.actions = append(r.actions, &cp)
	return nil
}

func (r *MemActionRepository) referenceTaken(ref string) bool {
	for _, a := range r.actions {
		if a.Reference == ref {
			return true
		}
	}
	return false
}

func (r *MemActionRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemActionRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.ActionDetail, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.detail(ctx, a), nil
}

func (r *MemActionRepository) List(ctx context.Context) ([]*models.ActionDetail, error) {
	r.mu.Lock()
	copies := make([]*models.Action, 0, len(r.actions))
	for _, a := range r.actions {
		cp := *a
		copies = append(copies, &cp)
	}
	r.mu.Unlock()

	out := make([]*models.ActionDetail, 0, len(copies))
	for i := len(copies) - 1; i >= 0; i-- {
		out = append(out, r.detail(ctx, copies[i]))
	}
	return out, nil
}

func (r *MemActionRepository) detail(ctx context.Context, a *models.Action) *models.ActionDetail {
	d := &models.ActionDetail{Action: *a}
	if types, err := r.Types.List(ctx); err == nil {
		for _, t := range types {
			if t.ID == a.ActionTypeID {
				d.ActionTypeName = t.Name
			}
		}
	}
	if s, err := r.States.GetByID(ctx, a.StateID); err == nil {
		d.StateName = s.Name
	}
	if a.UserID != nil && r.Users != nil {
		if u, err := r.Users.GetByID(ctx, *a.UserID); err == nil {
			name := u.Username
			d.Username = &name
		}
	}
	return d
}

func (r *MemActionRepository) CloseIfActive(_ context.Context, id, fromStateID, toStateID uuid.UUID, statusCode, description string) (*models.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.ID != id {
			continue
		}
		if a.StateID != fromStateID {
			return nil, utils.ErrActionClosed
		}
		a.StatusCode = statusCode
		a.Description = description
		a.StateID = toStateID
		a.UpdatedAt = time.Now()
		cp := *a
		return &cp, nil
	}
	return nil, utils.ErrActionClosed
}

func (r *MemActionRepository) ListUnsynced(_ context.Context, terminalStateIDs []uuid.UUID, limit int) ([]*models.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Action
	for _, a := range r.actions {
		if a.Synced {
			continue
		}
		for _, id := range terminalStateIDs {
			if a.StateID == id {
				cp := *a
				out = append(out, &cp)
				break
			}
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemActionRepository) MarkSynced(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		for _, id := range ids {
			if a.ID == id {
				a.Synced = true
			}
		}
	}
	return nil
}

// MemEUserRepository implements repositories.EUserRepository.
type MemEUserRepository struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*models.EUser
	passwords map[uuid.UUID][]models.EUserPassword
}

func NewMemEUserRepository() *MemEUserRepository {
	return &MemEUserRepository{
		users:     make(map[uuid.UUID]*models.EUser),
		passwords: make(map[uuid.UUID][]models.EUserPassword),
	}
}

func (r *MemEUserRepository) Create(_ context.Context, u *models.EUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemEUserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.EUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *MemEUserRepository) GetByUsername(_ context.Context, username string) (*models.EUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemEUserRepository) List(_ context.Context) ([]*models.EUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.EUser, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *MemEUserRepository) Update(_ context.Context, u *models.EUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	u.UpdatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemEUserRepository) TouchLastActivity(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	u.LastActivity = &now
	return nil
}

func (r *MemEUserRepository) SetPassword(_ context.Context, userID uuid.UUID, passwordHash string, activeStateID, disabledStateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.passwords[userID]
	for i := range rows {
		if rows[i].StateID == activeStateID {
			rows[i].StateID = disabledStateID
		}
	}
	rows = append(rows, models.EUserPassword{
		ID:           uuid.New(),
		EUserID:      userID,
		PasswordHash: passwordHash,
		StateID:      activeStateID,
		CreatedAt:    time.Now(),
	})
	r.passwords[userID] = rows
	return nil
}

func (r *MemEUserRepository) GetActivePassword(_ context.Context, userID uuid.UUID, activeStateID uuid.UUID) (*models.EUserPassword, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.passwords[userID]
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].StateID == activeStateID {
			cp := rows[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// MemCustomerRepository implements repositories.CustomerRepository.
type MemCustomerRepository struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*models.Customer
}

func NewMemCustomerRepository() *MemCustomerRepository {
	return &MemCustomerRepository{customers: make(map[uuid.UUID]*models.Customer)}
}

func (r *MemCustomerRepository) Create(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *MemCustomerRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *MemCustomerRepository) GetByUsername(_ context.Context, username string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemCustomerRepository) List(_ context.Context) ([]*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *MemCustomerRepository) Update(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

// MemProductRepository implements repositories.ProductRepository.
type MemProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func NewMemProductRepository() *MemProductRepository {
	return &MemProductRepository{products: make(map[uuid.UUID]*models.Product)}
}

func (r *MemProductRepository) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *MemProductRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *MemProductRepository) List(_ context.Context) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemProductRepository) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *MemProductRepository) AdjustQuantity(_ context.Context, id uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return utils.ErrInsufficientStock
	}
	if p.Quantity+delta < 0 {
		return utils.ErrInsufficientStock
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now()
	return nil
}

// MemOrderRepository implements repositories.OrderRepository.
type MemOrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
	items  map[uuid.UUID][]*models.OrderItem
}

func NewMemOrderRepository() *MemOrderRepository {
	return &MemOrderRepository{
		orders: make(map[uuid.UUID]*models.Order),
		items:  make(map[uuid.UUID][]*models.OrderItem),
	}
}

func (r *MemOrderRepository) CreateWithItems(_ context.Context, o *models.Order, items []*models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	cp := *o
	r.orders[o.ID] = &cp
	for _, it := range items {
		it.CreatedAt = now
		itCp := *it
		r.items[o.ID] = append(r.items[o.ID], &itCp)
	}
	return nil
}

func (r *MemOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *MemOrderRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemOrderRepository) List(_ context.Context) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemOrderRepository) ListItems(_ context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.OrderItem
	for _, it := range r.items[orderID] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemOrderRepository) UpdateState(_ context.Context, id, stateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	o.StateID = stateID
	o.UpdatedAt = time.Now()
	return nil
}

// MemRoleRepository implements repositories.RoleRepository.
type MemRoleRepository struct {
	mu    sync.Mutex
	roles map[string]*models.Role
}

func NewMemRoleRepository() *MemRoleRepository {
	return &MemRoleRepository{roles: make(map[string]*models.Role)}
}

func (r *MemRoleRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.ID == id {
			cp := *role
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemRoleRepository) GetOrCreate(_ context.Context, name, description string, stateID uuid.UUID) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[name]; ok {
		cp := *role
		return &cp, nil
	}
	now := time.Now()
	role := &models.Role{ID: uuid.New(), Name: name, Description: description, StateID: stateID, CreatedAt: now, UpdatedAt: now}
	r.roles[name] = role
	cp := *role
	return &cp, nil
}

func (r *MemRoleRepository) List(_ context.Context) ([]*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Role, 0, len(r.roles))
	for _, role := range r.roles {
		cp := *role
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemCategoryRepository implements repositories.CategoryRepository.
type MemCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func NewMemCategoryRepository() *MemCategoryRepository {
	return &MemCategoryRepository{categories: make(map[string]*models.Category)}
}

func (r *MemCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemCategoryRepository) GetOrCreate(_ context.Context, name, description string, stateID uuid.UUID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[name]; ok {
		cp := *c
		return &cp, nil
	}
	now := time.Now()
	c := &models.Category{ID: uuid.New(), Name: name, Description: description, StateID: stateID, CreatedAt: now, UpdatedAt: now}
	r.categories[name] = c
	cp := *c
	return &cp, nil
}

func (r *MemCategoryRepository) List(_ context.Context) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemCurrencyRepository implements repositories.CurrencyRepository.
type MemCurrencyRepository struct {
	mu         sync.Mutex
	currencies map[string]*models.Currency
}

func NewMemCurrencyRepository() *MemCurrencyRepository {
	return &MemCurrencyRepository{currencies: make(map[string]*models.Currency)}
}

func (r *MemCurrencyRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.currencies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemCurrencyRepository) GetOrCreate(_ context.Context, name, code string, stateID uuid.UUID) (*models.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.currencies[name]; ok {
		cp := *c
		return &cp, nil
	}
	now := time.Now()
	c := &models.Currency{ID: uuid.New(), Name: name, Code: code, StateID: stateID, CreatedAt: now, UpdatedAt: now}
	r.currencies[name] = c
	cp := *c
	return &cp, nil
}

func (r *MemCurrencyRepository) List(_ context.Context) ([]*models.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
