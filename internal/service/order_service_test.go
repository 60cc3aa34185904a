package service

import (
	"context"
	"testing"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type orderFixture struct {
	svc     *OrderService
	orders  *fakeOrderRepo
	details *fakeOrderDetailRepo
	users   *fakeUserRepo
}

func newOrderFixture() *orderFixture {
	orders := newFakeOrderRepo()
	details := newFakeOrderDetailRepo()
	users := newFakeUserRepo()
	tx := &fakeTxRunner{orders: orders, details: details}
	return &orderFixture{
		svc:     NewOrderService(orders, details, users, tx),
		orders:  orders,
		details: details,
		users:   users,
	}
}

func validOrderInput(userID primitive.ObjectID) OrderInput {
	return OrderInput{
		UserID:          userID,
		TotalAmount:     models.NewMoneyFromFloat(59.98),
		Status:          "pending",
		PaymentMethod:   constants.PaymentMethodCard,
		ShippingAddress: "1 Main St",
		Details: []OrderDetailInput{
			{ProductID: primitive.NewObjectID(), Quantity: 1, Price: models.NewMoneyFromFloat(39.99)},
			{ProductID: primitive.NewObjectID(), Quantity: 2, Price: models.NewMoneyFromFloat(9.99)},
		},
	}
}

func TestOrderCreatePersistsHeaderAndLineItems(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()

	order, details, err := f.svc.Create(context.Background(), validOrderInput(userID))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "59.98", order.TotalAmount.String())

	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, order.ID, d.OrderID)
		assert.False(t, d.ID.IsZero())
	}

	got, gotDetails, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Len(t, gotDetails, 2)
}

func TestOrderCreateValidation(t *testing.T) {
	f := newOrderFixture()
	userID := primitive.NewObjectID()

	cases := []struct {
		name   string
		mutate func(*OrderInput)
	}{
		{"missing user", func(in *OrderInput) { in.UserID = primitive.NilObjectID }},
		{"zero total", func(in *OrderInput) { in.TotalAmount = models.Money{} }},
		{"missing status", func(in *OrderInput) { in.Status = "" }},
		{"unknown payment method", func(in *OrderInput) { in.PaymentMethod = "barter" }},
		{"missing shipping address", func(in *OrderInput) { in.ShippingAddress = "" }},
		{"no line items", func(in *OrderInput) { in.Details = nil }},
		{"zero quantity", func(in *OrderInput) { in.Details[0].Quantity = 0 }},
		{"zero price", func(in *OrderInput) { in.Details[0].Price = models.Money{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validOrderInput(userID)
			tc.mutate(&input)

			_, _, err := f.svc.Create(context.Background(), input)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Empty(t, f.orders.orders, "nothing may persist on validation failure")
		})
	}
}

func TestOrderCreateRollsBackHeaderOnLineItemFailure(t *testing.T) {
	f := newOrderFixture()
	f.details.insertErr = errRepoDown

	_, _, err := f.svc.Create(context.Background(), validOrderInput(primitive.NewObjectID()))
	require.ErrorIs(t, err, errRepoDown)

	assert.Empty(t, f.orders.orders, "header must roll back with the failed line items")
	assert.Empty(t, f.details.details)
}

func TestOrderUpdateNotFound(t *testing.T) {
	f := newOrderFixture()

	_, _, err := f.svc.Update(context.Background(), primitive.NewObjectID(), validOrderInput(primitive.NewObjectID()))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderUpdateReplacesLineItems(t *testing.T) {
	f := newOrderFixture()
	order, _, err := f.svc.Create(context.Background(), validOrderInput(primitive.NewObjectID()))
	require.NoError(t, err)

	input := validOrderInput(order.UserID)
	input.Status = "shipped"
	input.Details = input.Details[:1]

	updated, details, err := f.svc.Update(context.Background(), order.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	require.Len(t, details, 1)

	_, gotDetails, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, gotDetails, 1, "old line items must be gone after replace")
}

func TestOrderUpdateRollsBackOnLineItemFailure(t *testing.T) {
	f := newOrderFixture()
	order, originalDetails, err := f.svc.Create(context.Background(), validOrderInput(primitive.NewObjectID()))
	require.NoError(t, err)

	f.details.insertErr = errRepoDown
	input := validOrderInput(order.UserID)
	input.Status = "shipped"

	_, _, err = f.svc.Update(context.Background(), order.ID, input)
	require.ErrorIs(t, err, errRepoDown)

	got, gotDetails, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status, "header must keep its pre-update fields")
	assert.Equal(t, originalDetails, gotDetails, "line items must keep their pre-update state")
}

func TestOrderDeleteRemovesLineItems(t *testing.T) {
	f := newOrderFixture()
	order, _, err := f.svc.Create(context.Background(), validOrderInput(primitive.NewObjectID()))
	require.NoError(t, err)

	deleted, err := f.svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, deleted.ID)

	_, _, err = f.svc.Get(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.details.details, "no line item may outlive its order")
}

func TestOrderDeleteNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Delete(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderGetWithZeroLineItems(t *testing.T) {
	f := newOrderFixture()
	order := models.Order{
		UserID:          primitive.NewObjectID(),
		TotalAmount:     models.NewMoneyFromFloat(10),
		Status:          "pending",
		PaymentMethod:   constants.PaymentMethodCard,
		ShippingAddress: "1 Main St",
	}
	require.NoError(t, f.orders.Insert(context.Background(), &order))

	got, details, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestOrderListJoinsUserAndDetails(t *testing.T) {
	f := newOrderFixture()
	user := models.User{Name: "Ada", Email: "ada@example.com", Role: constants.RoleUser, Active: true}
	require.NoError(t, f.users.Create(context.Background(), &user))

	first, _, err := f.svc.Create(context.Background(), validOrderInput(user.ID))
	require.NoError(t, err)
	second, _, err := f.svc.Create(context.Background(), validOrderInput(user.ID))
	require.NoError(t, err)

	views, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[primitive.ObjectID]OrderView, len(views))
	for _, v := range views {
		byID[v.Order.ID] = v
	}
	for _, id := range []primitive.ObjectID{first.ID, second.ID} {
		view, ok := byID[id]
		require.True(t, ok)
		require.NotNil(t, view.User)
		assert.Equal(t, "Ada", view.User.Name)
		assert.Equal(t, "ada@example.com", view.User.Email)
		assert.Len(t, view.Details, 2)
		for _, d := range view.Details {
			assert.Equal(t, id, d.OrderID)
		}
	}
}
