package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
	"github.com/mkallas/flashdeck/internal/repository/sqlite"
	"github.com/mkallas/flashdeck/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type StatsRepositorySuite struct {
	suite.Suite
	db         *sql.DB
	repo       repository.StatsRepository
	cardRepo   repository.CardRepository
	categoryID int64
	cardID     int64
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.cardRepo = sqlite.NewCardRepository(s.db)

	ctx := context.Background()
	category, err := sqlite.NewCategoryRepository(s.db).Insert(ctx, "Capitals")
	s.Require().NoError(err)
	s.categoryID = category.ID

	card, err := s.cardRepo.Insert(ctx, category.ID, "Capital of France?", "Paris")
	s.Require().NoError(err)
	s.cardID = card.ID
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) TestRecordAttempt_IncrementsExactlyOneCounter() {
	ctx := context.Background()

	st, err := s.repo.RecordAttempt(ctx, s.cardID, true)
	s.Require().NoError(err)
	s.Require().NotNil(st)
	s.Assert().Equal(1, st.CorrectCount)
	s.Assert().Equal(0, st.WrongCount)
	s.Require().NotNil(st.LastAttempt)
	s.Assert().Equal(time.Now().Format("2006-01-02"), st.AttemptDate)

	st, err = s.repo.RecordAttempt(ctx, s.cardID, false)
	s.Require().NoError(err)
	s.Assert().Equal(1, st.CorrectCount)
	s.Assert().Equal(1, st.WrongCount)
}

func (s *StatsRepositorySuite) TestRecordAttempt_CountsNeverDecrease() {
	ctx := context.Background()

	prevCorrect, prevWrong := 0, 0
	verdicts := []bool{true, false, false, true, true, false}
	for i, correct := range verdicts {
		st, err := s.repo.RecordAttempt(ctx, s.cardID, correct)
		s.Require().NoError(err)
		s.Assert().GreaterOrEqual(st.CorrectCount, prevCorrect)
		s.Assert().GreaterOrEqual(st.WrongCount, prevWrong)
		s.Assert().Equal(i+1, st.Attempts(), "one attempt per call")
		prevCorrect, prevWrong = st.CorrectCount, st.WrongCount
	}
}

func (s *StatsRepositorySuite) TestRecordAttempt_RepairsMissingRow() {
	ctx := context.Background()

	// Simulate a card left without statistics by an older create path.
	_, err := s.db.ExecContext(ctx, `DELETE FROM statistics WHERE card_id = ?`, s.cardID)
	s.Require().NoError(err)

	st, err := s.repo.RecordAttempt(ctx, s.cardID, false)
	s.Require().NoError(err)
	s.Require().NotNil(st, "the attempt must not be dropped")
	s.Assert().Equal(0, st.CorrectCount)
	s.Assert().Equal(1, st.WrongCount)

	got, err := s.repo.ForCard(ctx, s.cardID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(1, got.WrongCount)
}

func (s *StatsRepositorySuite) TestRecordAttempt_UnknownCard() {
	_, err := s.repo.RecordAttempt(context.Background(), 9999, true)
	s.Assert().Error(err, "repair insert must fail for a card that does not exist")
}

func (s *StatsRepositorySuite) TestForCard() {
	ctx := context.Background()

	st, err := s.repo.ForCard(ctx, s.cardID)
	s.Require().NoError(err)
	s.Require().NotNil(st)
	s.Assert().Equal(0, st.CorrectCount)
	s.Assert().Equal(0, st.WrongCount)
	s.Assert().Nil(st.LastAttempt)

	st, err = s.repo.ForCard(ctx, 9999)
	s.Require().NoError(err)
	s.Assert().Nil(st)
}

func (s *StatsRepositorySuite) TestListReport_JoinsCardAndCategory() {
	ctx := context.Background()

	_, err := s.repo.RecordAttempt(ctx, s.cardID, true)
	s.Require().NoError(err)

	report, err := s.repo.ListReport(ctx, models.ReportFilter{})
	s.Require().NoError(err)
	s.Require().Len(report, 1)
	s.Assert().Equal(s.cardID, report[0].CardID)
	s.Assert().Equal("Capital of France?", report[0].Question)
	s.Assert().Equal("Paris", report[0].Answer)
	s.Assert().Equal("Capitals", report[0].CategoryName)
	s.Assert().Equal(1, report[0].CorrectCount)
}

func (s *StatsRepositorySuite) TestListReport_FiltersByCategory() {
	ctx := context.Background()

	other, err := sqlite.NewCategoryRepository(s.db).Insert(ctx, "Rivers")
	s.Require().NoError(err)
	_, err = s.cardRepo.Insert(ctx, other.ID, "Longest river?", "Nile")
	s.Require().NoError(err)

	report, err := s.repo.ListReport(ctx, models.ReportFilter{CategoryID: other.ID})
	s.Require().NoError(err)
	s.Require().Len(report, 1)
	s.Assert().Equal("Rivers", report[0].CategoryName)

	all, err := s.repo.ListReport(ctx, models.ReportFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, 2)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
