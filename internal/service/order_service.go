package service

import (
	"context"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService manages order headers together with their line items. Every
// mutation touching both collections runs inside one transaction, so a header
// is never observable without its line items and vice versa.
type OrderService struct {
	orderRepo       repository.OrderRepository
	orderDetailRepo repository.OrderDetailRepository
	userRepo        repository.UserRepository
	txRunner        repository.TxRunner
}

// NewOrderService creates an order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderDetailRepo repository.OrderDetailRepository,
	userRepo repository.UserRepository,
	txRunner repository.TxRunner,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		orderDetailRepo: orderDetailRepo,
		userRepo:        userRepo,
		txRunner:        txRunner,
	}
}

// OrderDetailInput is one line item of an order mutation.
type OrderDetailInput struct {
	ProductID primitive.ObjectID
	Quantity  int
	Price     models.Money
}

// OrderInput carries the full field set of an order create or replace. The
// total amount is stored as supplied and is not recomputed from the line
// items.
type OrderInput struct {
	UserID          primitive.ObjectID
	TotalAmount     models.Money
	Status          string
	PaymentMethod   string
	ShippingAddress string
	Details         []OrderDetailInput
}

// OrderView is an order header joined with its owner summary and line items.
type OrderView struct {
	models.Order
	User    *models.UserSummary  `json:"user"`
	Details []models.OrderDetail `json:"orderDetails"`
}

func (s *OrderService) validateInput(input OrderInput) error {
	if input.UserID.IsZero() {
		return requiredError("user")
	}
	if input.TotalAmount.Sign() <= 0 {
		return newValidationError("totalAmount", "must be greater than zero")
	}
	if input.Status == "" {
		return requiredError("status")
	}
	if !constants.IsValidPaymentMethod(input.PaymentMethod) {
		return newValidationError("paymentMethod", "must be one of: card")
	}
	if input.ShippingAddress == "" {
		return requiredError("shippingAddress")
	}
	if len(input.Details) == 0 {
		return newValidationError("orderDetails", "must contain at least one item")
	}
	for _, d := range input.Details {
		if d.ProductID.IsZero() {
			return requiredError("orderDetails.productId")
		}
		if d.Quantity <= 0 {
			return newValidationError("orderDetails.quantity", "must be greater than zero")
		}
		if d.Price.Sign() <= 0 {
			return newValidationError("orderDetails.price", "must be greater than zero")
		}
	}
	return nil
}

func buildDetails(orderID primitive.ObjectID, inputs []OrderDetailInput) []models.OrderDetail {
	details := make([]models.OrderDetail, 0, len(inputs))
	for _, d := range inputs {
		details = append(details, models.OrderDetail{
			ID:        primitive.NewObjectID(),
			OrderID:   orderID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Price:     d.Price,
		})
	}
	return details
}

// List returns every order joined with its owner summary and line items.
func (s *OrderService) List(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	allDetails, err := s.orderDetailRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	detailsByOrder := make(map[primitive.ObjectID][]models.OrderDetail, len(orders))
	for _, d := range allDetails {
		detailsByOrder[d.OrderID] = append(detailsByOrder[d.OrderID], d)
	}

	userIDs := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	summaries := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{Order: o, Details: detailsByOrder[o.ID]}
		if view.Details == nil {
			view.Details = []models.OrderDetail{}
		}
		if summary, ok := summaries[o.UserID]; ok {
			view.User = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns one order header with its line items. A header with zero line
// items is returned with an empty slice.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, []models.OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrNotFound
	}
	details, err := s.orderDetailRepo.ListByOrderID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if details == nil {
		details = []models.OrderDetail{}
	}
	return order, details, nil
}

// Create writes the header and its line items in one transaction. On any
// failure nothing is persisted.
func (s *OrderService) Create(ctx context.Context, input OrderInput) (*models.Order, []models.OrderDetail, error) {
	if err := s.validateInput(input); err != nil {
		return nil, nil, err
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          input.UserID,
		TotalAmount:     input.TotalAmount,
		Status:          input.Status,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	}
	details := buildDetails(order.ID, input.Details)

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Insert(ctx, &order); err != nil {
			return err
		}
		return s.orderDetailRepo.InsertMany(ctx, details)
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, details, nil
}

// Update replaces the header fields and swaps the full line-item set in one
// transaction. On any failure the previous header and line items survive
// untouched.
func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, input OrderInput) (*models.Order, []models.OrderDetail, error) {
	if err := s.validateInput(input); err != nil {
		return nil, nil, err
	}

	var order *models.Order
	details := buildDetails(id, input.Details)

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.Update(ctx, id, repository.OrderUpdate{
			UserID:          input.UserID,
			TotalAmount:     input.TotalAmount,
			Status:          input.Status,
			PaymentMethod:   input.PaymentMethod,
			ShippingAddress: input.ShippingAddress,
		})
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrNotFound
		}
		order = updated
		if err := s.orderDetailRepo.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		return s.orderDetailRepo.InsertMany(ctx, details)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, details, nil
}

// Delete removes the header and all its line items in one transaction.
func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order *models.Order
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.orderRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return ErrNotFound
		}
		order = deleted
		return s.orderDetailRepo.DeleteByOrderID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
