package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mkallas/flashdeck/internal/repository"
	"github.com/mkallas/flashdeck/internal/repository/sqlite"
	"github.com/mkallas/flashdeck/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type CategoryRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CategoryRepository
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCategoryRepository(s.db)
}

func (s *CategoryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	created, err := s.repo.Insert(ctx, "Capitals")
	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Assert().Greater(created.ID, int64(0))
	s.Assert().Equal("Capitals", created.Name)
	s.Assert().False(created.CreatedAt.IsZero())

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(created.ID, got.ID)
	s.Assert().Equal("Capitals", got.Name)
}

func (s *CategoryRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), 12345)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CategoryRepositorySuite) TestList_NewestFirst() {
	ctx := context.Background()

	first, err := s.repo.Insert(ctx, "First")
	s.Require().NoError(err)
	second, err := s.repo.Insert(ctx, "Second")
	s.Require().NoError(err)
	third, err := s.repo.Insert(ctx, "Third")
	s.Require().NoError(err)

	categories, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Assert().Equal(third.ID, categories[0].ID)
	s.Assert().Equal(second.ID, categories[1].ID)
	s.Assert().Equal(first.ID, categories[2].ID)
}

func (s *CategoryRepositorySuite) TestDelete_NotFound() {
	err := s.repo.Delete(context.Background(), 99)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *CategoryRepositorySuite) TestDelete_CascadesToCardsAndStatistics() {
	ctx := context.Background()
	cardRepo := sqlite.NewCardRepository(s.db)

	category, err := s.repo.Insert(ctx, "Doomed")
	s.Require().NoError(err)
	for i := 0; i < 3; i++ {
		_, err := cardRepo.Insert(ctx, category.ID, "q", "a")
		s.Require().NoError(err)
	}

	err = s.repo.Delete(ctx, category.ID)
	s.Require().NoError(err)

	var cardCount, statsCount int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&cardCount))
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statistics`).Scan(&statsCount))
	s.Assert().Equal(0, cardCount, "no orphan cards after cascade")
	s.Assert().Equal(0, statsCount, "no orphan statistics after cascade")
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}
