package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"gocrm/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockProductRepository
	service      OrderService
	context      context.Context
	customer     *models.Customer
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.productRepo = new(MockProductRepository)
	suite.service = NewOrderService(suite.orderRepo, suite.customerRepo, suite.productRepo)
	suite.context = context.Background()
	suite.customer = &models.Customer{ID: uuid.New(), FirstName: "Alice", Email: "alice@example.com", IsActive: true}
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

var orderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

func (suite *OrderServiceTestSuite) TestCreate_Success() {
	productA := &models.Product{ID: uuid.New(), Name: "A", Price: 10.50, Stock: 5}
	productB := &models.Product{ID: uuid.New(), Name: "B", Price: 4.25, Stock: 2}

	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)
	suite.productRepo.On("ListByIDs", suite.context, []uuid.UUID{productA.ID, productB.ID}).
		Return([]*models.Product{productA, productB}, nil)
	suite.orderRepo.On("CreateWithProducts", suite.context, mock.AnythingOfType("*models.Order"), []uuid.UUID{productA.ID, productB.ID}).
		Return(nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{productA.ID.String(), productB.ID.String()},
	})

	assert.Empty(suite.T(), payload.Errors)
	assert.NotNil(suite.T(), payload.Order)
	assert.Equal(suite.T(), 14.75, payload.Order.TotalAmount)
	assert.Equal(suite.T(), models.OrderStatusPending, payload.Order.Status)
	assert.Regexp(suite.T(), orderNumberPattern, payload.Order.OrderNumber)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreate_ExplicitOrderDateIsUsed() {
	product := &models.Product{ID: uuid.New(), Name: "A", Price: 1, Stock: 1}
	orderDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)
	suite.productRepo.On("ListByIDs", suite.context, []uuid.UUID{product.ID}).
		Return([]*models.Product{product}, nil)
	suite.orderRepo.On("CreateWithProducts", suite.context, mock.AnythingOfType("*models.Order"), []uuid.UUID{product.ID}).
		Return(nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{product.ID.String()},
		OrderDate:  &orderDate,
	})

	assert.NotNil(suite.T(), payload.Order)
	assert.Equal(suite.T(), orderDate, payload.Order.OrderDate)
}

func (suite *OrderServiceTestSuite) TestCreate_UnknownCustomerFailsImmediately() {
	missing := uuid.New()
	suite.customerRepo.On("GetByID", suite.context, missing).Return(nil, nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: missing.String(),
		ProductIDs: []string{uuid.New().String()},
	})

	assert.Nil(suite.T(), payload.Order)
	assert.Len(suite.T(), payload.Errors, 1)
	assert.Equal(suite.T(), "customerId", payload.Errors[0].Field)
	suite.productRepo.AssertNotCalled(suite.T(), "ListByIDs", mock.Anything, mock.Anything)
	suite.orderRepo.AssertNotCalled(suite.T(), "CreateWithProducts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreate_EmptyProductListFails() {
	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{},
	})

	assert.Nil(suite.T(), payload.Order)
	assert.Len(suite.T(), payload.Errors, 1)
	assert.Equal(suite.T(), "productIds", payload.Errors[0].Field)
	suite.orderRepo.AssertNotCalled(suite.T(), "CreateWithProducts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreate_CollectsEveryUnresolvedProductID() {
	product := &models.Product{ID: uuid.New(), Name: "A", Price: 3, Stock: 1}
	missingA := uuid.New()
	missingB := uuid.New()

	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)
	suite.productRepo.On("ListByIDs", suite.context, []uuid.UUID{product.ID, missingA, missingB}).
		Return([]*models.Product{product}, nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{product.ID.String(), missingA.String(), missingB.String()},
	})

	assert.Nil(suite.T(), payload.Order)
	assert.Len(suite.T(), payload.Errors, 2)
	for _, fieldError := range payload.Errors {
		assert.Equal(suite.T(), "productIds", fieldError.Field)
	}
	assert.Contains(suite.T(), payload.Errors[0].Message, missingA.String())
	assert.Contains(suite.T(), payload.Errors[1].Message, missingB.String())
	suite.orderRepo.AssertNotCalled(suite.T(), "CreateWithProducts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreate_DuplicateProductIDsCollapse() {
	product := &models.Product{ID: uuid.New(), Name: "A", Price: 5, Stock: 1}

	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)
	suite.productRepo.On("ListByIDs", suite.context, []uuid.UUID{product.ID}).
		Return([]*models.Product{product}, nil)
	suite.orderRepo.On("CreateWithProducts", suite.context, mock.AnythingOfType("*models.Order"), []uuid.UUID{product.ID}).
		Return(nil)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{product.ID.String(), product.ID.String()},
	})

	assert.NotNil(suite.T(), payload.Order)
	assert.Equal(suite.T(), 5.0, payload.Order.TotalAmount)
	assert.Equal(suite.T(), []uuid.UUID{product.ID}, payload.Order.ProductIDs)
}

func (suite *OrderServiceTestSuite) TestCreate_StoreFailureSurfacesAsDatabaseError() {
	product := &models.Product{ID: uuid.New(), Name: "A", Price: 2, Stock: 1}

	suite.customerRepo.On("GetByID", suite.context, suite.customer.ID).Return(suite.customer, nil)
	suite.productRepo.On("ListByIDs", suite.context, []uuid.UUID{product.ID}).
		Return([]*models.Product{product}, nil)
	suite.orderRepo.On("CreateWithProducts", suite.context, mock.AnythingOfType("*models.Order"), []uuid.UUID{product.ID}).
		Return(assert.AnError)

	payload := suite.service.Create(suite.context, &models.CreateOrderInput{
		CustomerID: suite.customer.ID.String(),
		ProductIDs: []string{product.ID.String()},
	})

	assert.Nil(suite.T(), payload.Order)
	assert.Len(suite.T(), payload.Errors, 1)
	assert.Equal(suite.T(), "database", payload.Errors[0].Field)
}
