package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/provider"
	"github.com/cartloom/cartloom/internal/repository"
	"github.com/cartloom/cartloom/internal/router"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing a fully wired router, so the tests cover
// binding, auth, role checks and response shapes end to end.

type memUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func (r *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.UserUpdate) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Active != nil {
		u.Active = *update.Active
	}
	r.users[id] = u
	return &u, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return &u, nil
}

type memOrderRepo struct {
	orders map[primitive.ObjectID]models.Order
}

func (r *memOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *memOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.OrderUpdate) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o.UserID = update.UserID
	o.TotalAmount = update.TotalAmount
	o.Status = update.Status
	o.PaymentMethod = update.PaymentMethod
	o.ShippingAddress = update.ShippingAddress
	r.orders[id] = o
	return &o, nil
}

func (r *memOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	delete(r.orders, id)
	return &o, nil
}

type memDetailRepo struct {
	details []models.OrderDetail
}

func (r *memDetailRepo) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	out := make([]models.OrderDetail, len(r.details))
	copy(out, r.details)
	return out, nil
}

func (r *memDetailRepo) ListByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderDetail, error) {
	var out []models.OrderDetail
	for _, d := range r.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDetailRepo) InsertMany(ctx context.Context, details []models.OrderDetail) error {
	r.details = append(r.details, details...)
	return nil
}

func (r *memDetailRepo) DeleteByOrderID(ctx context.Context, orderID primitive.ObjectID) error {
	kept := r.details[:0]
	for _, d := range r.details {
		if d.OrderID != orderID {
			kept = append(kept, d)
		}
	}
	r.details = kept
	return nil
}

type passTxRunner struct{}

func (passTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type apiFixture struct {
	engine *gin.Engine
	users  *memUserRepo
}

func newAPIFixture() *apiFixture {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "api-test-secret"
	cfg.JWT.ExpireHours = 1

	users := &memUserRepo{users: make(map[primitive.ObjectID]models.User)}
	orders := &memOrderRepo{orders: make(map[primitive.ObjectID]models.Order)}
	details := &memDetailRepo{}

	c := &provider.Container{Config: cfg}
	c.UserRepo = users
	c.OrderRepo = orders
	c.OrderDetailRepo = details
	c.TxRunner = passTxRunner{}
	c.AuthService = service.NewAuthService(cfg, users)
	c.UserService = service.NewUserService(users)
	c.OrderService = service.NewOrderService(orders, details, users, c.TxRunner)

	return &apiFixture{engine: router.SetupRouter(cfg, c), users: users}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) registerAndLogin(t *testing.T, email, role string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada",
		"email":    email,
		"password": "s3cret",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register want 201 got %d body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login want 200 got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal login response failed: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login response carries no token")
	}
	return resp.Data.Token
}

func (f *apiFixture) userIDByEmail(t *testing.T, email string) string {
	t.Helper()
	u, _ := f.users.GetByEmail(context.Background(), email)
	if u == nil {
		t.Fatalf("user %s not found", email)
	}
	return u.ID.Hex()
}

func orderBody(userID string) gin.H {
	return gin.H{
		"user":            userID,
		"totalAmount":     "49.98",
		"status":          "pending",
		"paymentMethod":   "card",
		"shippingAddress": "1 Main St",
		"orderDetails": []gin.H{
			{"productId": primitive.NewObjectID().Hex(), "quantity": 2, "price": "24.99"},
		},
	}
}

func TestOrderEndpointsRoundTrip(t *testing.T) {
	f := newAPIFixture()
	token := f.registerAndLogin(t, "ada@example.com", "user")
	userID := f.userIDByEmail(t, "ada@example.com")

	w := f.do(t, http.MethodPost, "/api/order", token, orderBody(userID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create order want 201 got %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			Order struct {
				ID          string `json:"id"`
				TotalAmount string `json:"totalAmount"`
			} `json:"order"`
			OrderDetails []struct {
				OrderID  string `json:"orderId"`
				Quantity int    `json:"quantity"`
			} `json:"orderDetails"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response failed: %v", err)
	}
	if created.Data.Order.TotalAmount != "49.98" {
		t.Fatalf("totalAmount want 49.98 got %s", created.Data.Order.TotalAmount)
	}
	if len(created.Data.OrderDetails) != 1 || created.Data.OrderDetails[0].OrderID != created.Data.Order.ID {
		t.Fatalf("line items must reference the created order: %+v", created.Data)
	}

	w = f.do(t, http.MethodGet, "/api/order/"+created.Data.Order.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order want 200 got %d body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodGet, "/api/order/"+primitive.NewObjectID().Hex(), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown order want 404 got %d", w.Code)
	}
}

func TestOrderCreateValidationOverHTTP(t *testing.T) {
	f := newAPIFixture()
	token := f.registerAndLogin(t, "ada@example.com", "user")
	userID := f.userIDByEmail(t, "ada@example.com")

	body := orderBody(userID)
	body["orderDetails"] = []gin.H{}
	w := f.do(t, http.MethodPost, "/api/order", token, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty line items want 400 got %d body %s", w.Code, w.Body.String())
	}
}

func TestOrderDeleteRequiresAdmin(t *testing.T) {
	f := newAPIFixture()
	userToken := f.registerAndLogin(t, "ada@example.com", "user")
	adminToken := f.registerAndLogin(t, "root@example.com", "admin")
	userID := f.userIDByEmail(t, "ada@example.com")

	w := f.do(t, http.MethodPost, "/api/order", userToken, orderBody(userID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create order want 201 got %d", w.Code)
	}
	var created struct {
		Data struct {
			Order struct {
				ID string `json:"id"`
			} `json:"order"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response failed: %v", err)
	}

	w = f.do(t, http.MethodDelete, "/api/order/"+created.Data.Order.ID, userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user deleting order want 403 got %d", w.Code)
	}

	w = f.do(t, http.MethodDelete, "/api/order/"+created.Data.Order.ID, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin deleting order want 200 got %d body %s", w.Code, w.Body.String())
	}
}

func TestUserRoutesOwnerOrAdmin(t *testing.T) {
	f := newAPIFixture()
	userToken := f.registerAndLogin(t, "ada@example.com", "user")
	f.registerAndLogin(t, "bob@example.com", "user")
	adminToken := f.registerAndLogin(t, "root@example.com", "admin")

	adaID := f.userIDByEmail(t, "ada@example.com")
	bobID := f.userIDByEmail(t, "bob@example.com")

	w := f.do(t, http.MethodGet, "/api/auth/users/"+adaID, userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner reading own record want 200 got %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/auth/users/"+bobID, userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user reading another record want 403 got %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/auth/users/"+bobID, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin reading any record want 200 got %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/auth/users", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user listing users want 403 got %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/auth/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin listing users want 200 got %d", w.Code)
	}
}
