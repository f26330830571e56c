package bidrepo_test

import (
	"context"
	"testing"
	"time"

	"loadboard/internal/adapters/out/postgres/bidrepo"
	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// BidRepositoryIntegrationTestSuite provides integration tests for BidRepository
// using PostgreSQL containers to verify database persistence behavior.
type BidRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *bidrepo.GormBidRepository
	tracker    *MockAggregateTracker
}

func (suite *BidRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&bidrepo.BidDTO{}))
}

func (suite *BidRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE bids").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = bidrepo.NewGormBidRepository(suite.db, suite.tracker)
}

func (suite *BidRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BidRepositoryIntegrationTestSuite) createTestBid(orderID, driverID kernel.UUID, amount int64) *bid.Bid {
	price, err := kernel.NewPrice(amount)
	suite.Require().NoError(err)

	b, err := bid.NewBid(kernel.NewUUID(), orderID, driverID, price, time.Now().UTC())
	suite.Require().NoError(err)
	return b
}

func (suite *BidRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	testBid := suite.createTestBid(orderID, driverID, 1500)

	suite.Require().NoError(suite.repository.Add(ctx, testBid))

	loaded, err := suite.repository.Get(ctx, testBid.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(testBid.ID()))
	suite.True(loaded.Order().IsEqual(orderID))
	suite.True(loaded.Driver().IsEqual(driverID))
	suite.Equal(int64(1500), loaded.Price().Amount())
	suite.Equal(bid.Pending, loaded.Status())
}

func (suite *BidRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	testBid := suite.createTestBid(kernel.NewUUID(), kernel.NewUUID(), 1500)

	suite.Require().NoError(suite.repository.Add(ctx, testBid))

	err := suite.repository.Add(ctx, testBid)
	suite.Require().Error(err)
}

func (suite *BidRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BidRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	testBid := suite.createTestBid(kernel.NewUUID(), kernel.NewUUID(), 1500)
	suite.Require().NoError(suite.repository.Add(ctx, testBid))

	suite.Require().NoError(testBid.Withdraw())
	suite.Require().NoError(suite.repository.Update(ctx, testBid))

	loaded, err := suite.repository.Get(ctx, testBid.ID())
	suite.Require().NoError(err)
	suite.Equal(bid.Withdrawn, loaded.Status())
}

func (suite *BidRepositoryIntegrationTestSuite) TestGetPendingByOrder_ExcludesTerminal() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	live := suite.createTestBid(orderID, kernel.NewUUID(), 1200)
	dead := suite.createTestBid(orderID, kernel.NewUUID(), 1500)
	other := suite.createTestBid(kernel.NewUUID(), kernel.NewUUID(), 900)

	suite.Require().NoError(suite.repository.Add(ctx, live))
	suite.Require().NoError(suite.repository.Add(ctx, dead))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	suite.Require().NoError(dead.Reject())
	suite.Require().NoError(suite.repository.Update(ctx, dead))

	pending, err := suite.repository.GetPendingByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(live.ID()))
}

func (suite *BidRepositoryIntegrationTestSuite) TestGetPendingByOrderAndDriver() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	mine := suite.createTestBid(orderID, driverID, 1200)
	others := suite.createTestBid(orderID, kernel.NewUUID(), 1500)

	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, others))

	loaded, err := suite.repository.GetPendingByOrderAndDriver(ctx, orderID, driverID)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(mine.ID()))

	_, err = suite.repository.GetPendingByOrderAndDriver(ctx, orderID, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BidRepositoryIntegrationTestSuite) TestAdd_SecondPendingBidForSamePair() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	first := suite.createTestBid(orderID, driverID, 1200)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestBid(orderID, driverID, 900)
	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *BidRepositoryIntegrationTestSuite) TestAdd_RebidAllowedAfterWithdrawal() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	first := suite.createTestBid(orderID, driverID, 1200)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.Withdraw())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.createTestBid(orderID, driverID, 900)
	suite.Require().NoError(suite.repository.Add(ctx, second))
}

func (suite *BidRepositoryIntegrationTestSuite) TestUpdateIfStatus_ClaimsOnlyExpectedRow() {
	ctx := context.Background()
	testBid := suite.createTestBid(kernel.NewUUID(), kernel.NewUUID(), 1500)
	suite.Require().NoError(suite.repository.Add(ctx, testBid))

	suite.Require().NoError(testBid.Accept())
	claimed, err := suite.repository.UpdateIfStatus(ctx, testBid, bid.Pending)
	suite.Require().NoError(err)
	suite.True(claimed)

	// The row is Accepted now, so a second conditional claim must miss.
	claimed, err = suite.repository.UpdateIfStatus(ctx, testBid, bid.Pending)
	suite.Require().NoError(err)
	suite.False(claimed)

	loaded, err := suite.repository.Get(ctx, testBid.ID())
	suite.Require().NoError(err)
	suite.Equal(bid.Accepted, loaded.Status())
}

func TestBidRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BidRepositoryIntegrationTestSuite))
}
