package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "orderregistry/internal/adapters/out/postgres"
	"orderregistry/internal/adapters/out/postgres/orderrepo"
	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"
	"orderregistry/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection and
// runs schema migrations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ProductDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(externalID string) *order.Order {
	price, err := kernel.NewMoney(decimal.NewFromFloat(19.99))
	suite.Require().NoError(err)
	gadget, err := order.NewProduct("Gadget", price, 1)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(externalID, []*order.Product{gadget})
	suite.Require().NoError(err)
	return testOrder
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback
// state transitions.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Commit(ctx)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction, "Commit without transaction should fail")

	err = uow.Rollback(ctx)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction, "Rollback without transaction should fail")
}

// TestUnitOfWork_CommitPersistsChanges verifies that committed work is
// visible outside the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsChanges() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("EXT-COMMIT")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.Require().NoError(testOrder.MarkProcessed())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(restored)
	suite.Equal(order.Processed, restored.Status())
}

// TestUnitOfWork_RollbackDiscardsChanges verifies that rolled back work
// leaves no rows behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("EXT-ROLLBACK")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Nil(restored, "Rolled back order should not be visible")
}

// TestUnitOfWork_RepositoryWithoutTransaction verifies that repository reads
// work against the main connection before Begin, which the registration
// workflow relies on for its duplicate pre-checks.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryWithoutTransaction() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("EXT-NOTX")

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(writer.Commit(ctx))

	reader := suite.factory.Create()
	restored, err := reader.OrderRepository().GetByExternalID(ctx, "EXT-NOTX")
	suite.Require().NoError(err)
	suite.Require().NotNil(restored)
	suite.True(restored.ID().IsEqual(testOrder.ID()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
