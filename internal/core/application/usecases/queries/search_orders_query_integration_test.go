package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type SearchOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	handler    queries.SearchOrdersQueryHandler
}

func TestSearchOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(SearchOrdersQueryHandlerTestSuite))
}

func (suite *SearchOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.HistoryEntryDTO{},
	))
	suite.repository = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.handler = queries.NewSearchOrdersQueryHandler(db)
}

func (suite *SearchOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines, order_status_history").Error)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestNoCriteria_ReturnsEverythingNewestFirst() {
	suite.seed(7, false)
	suite.seed(7, true)
	suite.seed(8, false)

	result := suite.search(queries.SearchCriteria{}, ports.Page{})

	suite.Equal(int64(3), result.Total)
	suite.Len(result.Items, 3)
	suite.Equal(ports.DefaultPageLimit, result.Limit)
	for i := 1; i < len(result.Items); i++ {
		suite.False(result.Items[i].CreatedAt.After(result.Items[i-1].CreatedAt))
	}
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestFiltersCombine() {
	suite.seed(7, false)
	confirmed := suite.seed(7, true)
	suite.seed(8, true)

	result := suite.search(queries.SearchCriteria{CustomerID: 7, Status: order.Confirmed}, ports.Page{})

	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	item := result.Items[0]
	suite.True(confirmed.ID().IsEqual(item.ID))
	suite.Equal(confirmed.Number(), item.Number)
	suite.Equal("CONFIRMED", item.Status)
	suite.Equal("25.00", item.Total)
	suite.Equal("35.99", item.Net)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestNumberPrefix() {
	target := suite.seed(7, false)
	suite.seed(7, false)

	result := suite.search(queries.SearchCriteria{NumberPrefix: " " + target.Number() + " "}, ports.Page{})

	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(target.Number(), result.Items[0].Number)

	result = suite.search(queries.SearchCriteria{NumberPrefix: "ORD-%"}, ports.Page{})
	suite.Zero(result.Total)
	suite.Empty(result.Items)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestCreatedRange() {
	o := suite.seed(7, false)

	inside := suite.search(queries.SearchCriteria{
		CreatedFrom: o.CreatedAt().Add(-time.Minute),
		CreatedTo:   o.CreatedAt().Add(time.Minute),
	}, ports.Page{})
	suite.Equal(int64(1), inside.Total)

	after := suite.search(queries.SearchCriteria{CreatedFrom: o.CreatedAt().Add(time.Minute)}, ports.Page{})
	suite.Zero(after.Total)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestPaging_KeepsTotal() {
	for range 5 {
		suite.seed(7, false)
	}

	first := suite.search(queries.SearchCriteria{CustomerID: 7}, ports.Page{Offset: 0, Limit: 2})
	last := suite.search(queries.SearchCriteria{CustomerID: 7}, ports.Page{Offset: 4, Limit: 2})

	suite.Equal(int64(5), first.Total)
	suite.Len(first.Items, 2)
	suite.Equal(int64(5), last.Total)
	suite.Len(last.Items, 1)
	suite.Equal(4, last.Offset)
}

func (suite *SearchOrdersQueryHandlerTestSuite) TestInvalidCriteria() {
	now := time.Now()
	_, err := queries.NewSearchOrdersQuery(queries.SearchCriteria{
		CustomerID:  -1,
		CreatedFrom: now,
		CreatedTo:   now.Add(-time.Hour),
	}, ports.Page{})

	suite.Require().Error(err)
	suite.Equal(errs.KindValidation, errs.KindOf(err))
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *SearchOrdersQueryHandlerTestSuite) search(criteria queries.SearchCriteria, page ports.Page) queries.SearchOrdersResult {
	query, err := queries.NewSearchOrdersQuery(criteria, page)
	suite.Require().NoError(err)
	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return result
}

func (suite *SearchOrdersQueryHandlerTestSuite) seed(customerID int64, confirm bool) *order.Order {
	o := newTestOrder(suite.T(), customerID)
	if confirm {
		suite.Require().NoError(o.Confirm("clerk"))
	}
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	time.Sleep(2 * time.Millisecond)
	return o
}
