package service

import (
	"context"
	"errors"
	"time"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. The tx runner snapshots repository state and
// restores it when the unit fails, mirroring the all-or-nothing contract of
// the real transaction runner.

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.UserUpdate) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Active != nil {
		u.Active = *update.Active
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return &u, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return &u, nil
}

type fakeCartRepo struct {
	carts   map[primitive.ObjectID]models.Cart
	saveErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[primitive.ObjectID]models.Cart)}
}

func (r *fakeCartRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	if c, ok := r.carts[userID]; ok {
		items := make([]models.CartItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = time.Now().UTC()
	}
	cart.UpdatedAt = time.Now().UTC()
	r.carts[cart.UserID] = *cart
	return nil
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]models.Product)}
}

func (r *fakeProductRepo) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Replace(ctx context.Context, id primitive.ObjectID, replace repository.ProductReplace) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	p.Name = replace.Name
	p.Description = replace.Description
	p.Price = replace.Price
	p.Stock = replace.Stock
	p.CategoryID = replace.CategoryID
	p.Images = replace.Images
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return &p, nil
}

func (r *fakeProductRepo) Patch(ctx context.Context, id primitive.ObjectID, patch repository.ProductPatch) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return &p, nil
}

type fakeOrderRepo struct {
	orders    map[primitive.ObjectID]models.Order
	insertErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]models.Order)}
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.OrderUpdate) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o.UserID = update.UserID
	o.TotalAmount = update.TotalAmount
	o.Status = update.Status
	o.PaymentMethod = update.PaymentMethod
	o.ShippingAddress = update.ShippingAddress
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return &o, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	delete(r.orders, id)
	return &o, nil
}

type fakeOrderDetailRepo struct {
	details   []models.OrderDetail
	insertErr error
}

func newFakeOrderDetailRepo() *fakeOrderDetailRepo {
	return &fakeOrderDetailRepo{}
}

func (r *fakeOrderDetailRepo) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	out := make([]models.OrderDetail, len(r.details))
	copy(out, r.details)
	return out, nil
}

func (r *fakeOrderDetailRepo) ListByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderDetail, error) {
	var out []models.OrderDetail
	for _, d := range r.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeOrderDetailRepo) InsertMany(ctx context.Context, details []models.OrderDetail) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for i := range details {
		if details[i].ID.IsZero() {
			details[i].ID = primitive.NewObjectID()
		}
	}
	r.details = append(r.details, details...)
	return nil
}

func (r *fakeOrderDetailRepo) DeleteByOrderID(ctx context.Context, orderID primitive.ObjectID) error {
	kept := r.details[:0]
	for _, d := range r.details {
		if d.OrderID != orderID {
			kept = append(kept, d)
		}
	}
	r.details = kept
	return nil
}

// fakeTxRunner snapshots the order repositories before running fn and rolls
// the snapshot back when fn fails.
type fakeTxRunner struct {
	orders  *fakeOrderRepo
	details *fakeOrderDetailRepo
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	orderSnap := make(map[primitive.ObjectID]models.Order, len(r.orders.orders))
	for k, v := range r.orders.orders {
		orderSnap[k] = v
	}
	detailSnap := make([]models.OrderDetail, len(r.details.details))
	copy(detailSnap, r.details.details)

	if err := fn(ctx); err != nil {
		r.orders.orders = orderSnap
		r.details.details = detailSnap
		return err
	}
	return nil
}

var errRepoDown = errors.New("repository unavailable")
