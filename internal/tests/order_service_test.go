package tests

import (
	"context"
	"testing"
	"time"

	"restaurant-api/internal/domain"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/mocks"
	"restaurant-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	dishAID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	dishBID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

	dishA = domain.Dish{ID: dishAID, Name: "Varenyky", Price: 10.00}
	dishB = domain.Dish{ID: dishBID, Name: "Syrnyky", Price: 5.00}
)

func newOrderService(orders *mocks.OrderRepository, catalog *mocks.CatalogRepository, cache *mocks.AggregateCache, publisher *mocks.EventPublisher) *service.OrderService {
	var c service.AggregateCache
	if cache != nil {
		c = cache
	}
	var pub service.EventPublisher
	if publisher != nil {
		pub = publisher
	}
	return service.NewOrderService(orders, catalog, c, pub, service.ReceiptQRGenerator{BaseURL: "http://localhost"}, logger.Discard())
}

func TestOrderService_CreateEmptyOrder(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	_, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	mockOrders.AssertNotCalled(t, "CreateOrder")
}

func TestOrderService_CreateCustomerNameValidation(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	_, err := svc.Create(context.Background(), "", map[uuid.UUID]int{dishAID: 1})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	mockCatalog.AssertNotCalled(t, "GetDish")
}

func TestOrderService_CreateInvalidQuantity(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	_, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{dishAID: 0})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
	mockOrders.AssertNotCalled(t, "CreateOrder")
}

// Dishes are resolved in ascending id order, so with two unknown dishes the
// error names the lower id and the second is never looked up.
func TestOrderService_CreateUnknownDishShortCircuits(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	mockCatalog.On("GetDish", mock.Anything, dishAID).
		Return(nil, domain.NotFound("dish", dishAID.String())).Once()

	_, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{dishAID: 1, dishBID: 2})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, dishAID.String(), notFound.ID)
	mockCatalog.AssertNumberOfCalls(t, "GetDish", 1)
	mockOrders.AssertNotCalled(t, "CreateOrder")
}

func TestOrderService_CreateSuccess(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockPublisher := new(mocks.EventPublisher)
	svc := newOrderService(mockOrders, mockCatalog, nil, mockPublisher)

	mockCatalog.On("GetDish", mock.Anything, dishAID).Return(&dishA, nil).Once()
	mockCatalog.On("GetDish", mock.Anything, dishBID).Return(&dishB, nil).Once()
	mockOrders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && len(e.Items) == 2
	})).Return(nil).Once()

	before := time.Now().UTC()
	order, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{dishAID: 2, dishBID: 1})
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, "Olena", order.CustomerName)
	assert.False(t, order.CreatedAt.Before(before))
	assert.False(t, order.CreatedAt.After(after))
	assert.Equal(t, time.UTC, order.CreatedAt.Location())

	require.Len(t, order.Items, 2)
	assert.Equal(t, dishAID, order.Items[0].DishID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, dishA, order.Items[0].Dish)
	assert.Equal(t, dishBID, order.Items[1].DishID)
	assert.Equal(t, 1, order.Items[1].Quantity)

	mockOrders.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_UpdateNotFound(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	id := uuid.New()
	mockOrders.On("GetOrder", mock.Anything, id).
		Return(nil, domain.NotFound("order", id.String())).Once()

	_, err := svc.Update(context.Background(), id, "Olena", map[uuid.UUID]int{dishAID: 1})

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockOrders.AssertNotCalled(t, "ReplaceOrder")
}

// A failed dish lookup during update must not touch the stored order.
func TestOrderService_UpdateUnknownDishLeavesOrderIntact(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	orderID := uuid.New()
	existing := &domain.Order{
		ID:           orderID,
		CustomerName: "Olena",
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Items:        []domain.OrderItem{{DishID: dishAID, Quantity: 2, Dish: dishA}},
	}
	mockOrders.On("GetOrder", mock.Anything, orderID).Return(existing, nil).Once()
	mockCatalog.On("GetDish", mock.Anything, dishBID).
		Return(nil, domain.NotFound("dish", dishBID.String())).Once()

	_, err := svc.Update(context.Background(), orderID, "Olena", map[uuid.UUID]int{dishBID: 3})

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockOrders.AssertNotCalled(t, "ReplaceOrder")
}

func TestOrderService_UpdateReplacesItemsAndKeepsTimestamp(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockPublisher := new(mocks.EventPublisher)
	svc := newOrderService(mockOrders, mockCatalog, nil, mockPublisher)

	orderID := uuid.New()
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &domain.Order{
		ID:           orderID,
		CustomerName: "Olena",
		CreatedAt:    createdAt,
		Items:        []domain.OrderItem{{DishID: dishAID, Quantity: 2, Dish: dishA}},
	}

	mockOrders.On("GetOrder", mock.Anything, orderID).Return(existing, nil).Once()
	mockCatalog.On("GetDish", mock.Anything, dishBID).Return(&dishB, nil).Once()
	mockOrders.On("ReplaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderUpdated &&
			len(e.Items) == 1 && e.Items[0].DishID == dishBID && e.Items[0].Quantity == 3 &&
			len(e.Removed) == 1 && e.Removed[0].DishID == dishAID && e.Removed[0].Quantity == 2
	})).Return(nil).Once()

	order, err := svc.Update(context.Background(), orderID, "Marta", map[uuid.UUID]int{dishBID: 3})

	require.NoError(t, err)
	assert.Equal(t, "Marta", order.CustomerName)
	assert.Equal(t, createdAt, order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, dishBID, order.Items[0].DishID)
	assert.Equal(t, 3, order.Items[0].Quantity)

	mockOrders.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_Delete(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockPublisher := new(mocks.EventPublisher)
	svc := newOrderService(mockOrders, mockCatalog, nil, mockPublisher)

	orderID := uuid.New()
	existing := &domain.Order{
		ID:    orderID,
		Items: []domain.OrderItem{{DishID: dishAID, Quantity: 2, Dish: dishA}},
	}
	mockOrders.On("GetOrder", mock.Anything, orderID).Return(existing, nil).Once()
	mockOrders.On("DeleteOrder", mock.Anything, orderID).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderDeleted &&
			len(e.Items) == 0 &&
			len(e.Removed) == 1 && e.Removed[0].DishID == dishAID
	})).Return(nil).Once()

	err := svc.Delete(context.Background(), orderID)

	assert.NoError(t, err)
	mockOrders.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_DeleteNotFound(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	svc := newOrderService(mockOrders, mockCatalog, nil, nil)

	id := uuid.New()
	mockOrders.On("GetOrder", mock.Anything, id).
		Return(nil, domain.NotFound("order", id.String())).Once()

	err := svc.Delete(context.Background(), id)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockOrders.AssertNotCalled(t, "DeleteOrder")
}

// Publisher failures are logged, not returned: the order is already saved.
func TestOrderService_PublishFailureDoesNotFailCreate(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockPublisher := new(mocks.EventPublisher)
	svc := newOrderService(mockOrders, mockCatalog, nil, mockPublisher)

	mockCatalog.On("GetDish", mock.Anything, dishAID).Return(&dishA, nil).Once()
	mockOrders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	_, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{dishAID: 1})

	assert.NoError(t, err)
}

// An event that never reaches the broker never reaches the aggregator either,
// so the ranking must be dropped or it keeps counting the deleted order.
func TestOrderService_PublishFailureDropsPopularityRanking(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockCache := new(mocks.AggregateCache)
	mockPublisher := new(mocks.EventPublisher)
	svc := newOrderService(mockOrders, mockCatalog, mockCache, mockPublisher)

	orderID := uuid.New()
	existing := &domain.Order{
		ID:    orderID,
		Items: []domain.OrderItem{{DishID: dishAID, Quantity: 5, Dish: dishA}},
	}
	mockOrders.On("GetOrder", mock.Anything, orderID).Return(existing, nil).Once()
	mockOrders.On("DeleteOrder", mock.Anything, orderID).Return(nil).Once()
	mockCache.On("InvalidateProfit", mock.Anything).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()
	mockCache.On("InvalidatePopularity", mock.Anything).Return(nil).Once()

	err := svc.Delete(context.Background(), orderID)

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestOrderService_CreateInvalidatesProfit(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockCatalog := new(mocks.CatalogRepository)
	mockCache := new(mocks.AggregateCache)
	svc := newOrderService(mockOrders, mockCatalog, mockCache, nil)

	mockCatalog.On("GetDish", mock.Anything, dishAID).Return(&dishA, nil).Once()
	mockOrders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockCache.On("InvalidateProfit", mock.Anything).Return(nil).Once()

	_, err := svc.Create(context.Background(), "Olena", map[uuid.UUID]int{dishAID: 1})

	require.NoError(t, err)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "InvalidatePopularity")
}

func TestOrderService_ReceiptQR(t *testing.T) {
	mockOrders := new(mocks.OrderRepository)
	mockReceipts := new(mocks.ReceiptGenerator)
	svc := service.NewOrderService(mockOrders, new(mocks.CatalogRepository), nil, nil, mockReceipts, logger.Discard())

	orderID := uuid.New()
	mockOrders.On("GetOrder", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID}, nil).Once()
	mockReceipts.On("Generate", orderID).Return([]byte("png-bytes"), nil).Once()

	png, err := svc.ReceiptQR(context.Background(), orderID)

	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)
	mockReceipts.AssertExpectations(t)
}

func TestReceiptQRGenerator_ProducesPNG(t *testing.T) {
	gen := service.ReceiptQRGenerator{BaseURL: "http://localhost"}

	png, err := gen.Generate(uuid.New())

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
