package repositories

import (
	"context"
	"testing"
	"time"

	"gocrm/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mock = mock
	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func productRows(products ...*models.Product) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "price", "stock", "created_at", "updated_at"})
	for _, product := range products {
		rows.AddRow(product.ID, product.Name, product.Price, product.Stock, product.CreatedAt, product.UpdatedAt)
	}
	return rows
}

func (suite *ProductRepoTestSuite) TestCreate() {
	product := &models.Product{ID: uuid.New(), Name: "Widget", Price: 9.99, Stock: 4}

	suite.mock.ExpectExec("INSERT INTO products").
		WithArgs(product.ID, product.Name, product.Price, product.Stock).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	suite.NoError(suite.repo.Create(suite.context, product))
}

func (suite *ProductRepoTestSuite) TestGetByID_NotFoundReturnsNil() {
	id := uuid.New()

	suite.mock.ExpectQuery("FROM products").
		WithArgs(id).
		WillReturnRows(productRows())

	product, err := suite.repo.GetByID(suite.context, id)
	suite.NoError(err)
	suite.Nil(product)
}

func (suite *ProductRepoTestSuite) TestListByIDs_EmptyInputSkipsQuery() {
	products, err := suite.repo.ListByIDs(suite.context, nil)
	suite.NoError(err)
	suite.Empty(products)
}

func (suite *ProductRepoTestSuite) TestListLowStock_FiltersBelowThreshold() {
	now := time.Now()
	low := &models.Product{ID: uuid.New(), Name: "Low", Price: 2, Stock: 3, CreatedAt: now, UpdatedAt: now}

	suite.mock.ExpectQuery("stock < \\$1").
		WithArgs(models.LowStockThreshold).
		WillReturnRows(productRows(low))

	products, err := suite.repo.ListLowStock(suite.context, models.LowStockThreshold)
	suite.NoError(err)
	suite.Len(products, 1)
	suite.Equal(low.ID, products[0].ID)
	suite.Equal(3, products[0].Stock)
}

func (suite *ProductRepoTestSuite) TestUpdateStock() {
	id := uuid.New()

	suite.mock.ExpectExec("UPDATE products").
		WithArgs(13, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	suite.NoError(suite.repo.UpdateStock(suite.context, id, 13))
}
