package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/services"
	"github.com/mkallas/flashdeck/internal/session"
	"github.com/mkallas/flashdeck/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSessionService(cardRepo *mocks.MockCardRepository, categoryRepo *mocks.MockCategoryRepository, statsRepo *mocks.MockStatsRepository) services.SessionService {
	return services.NewSessionService(cardRepo, categoryRepo, statsRepo, 16)
}

func capitalsFixture() (*models.Category, []models.Card) {
	category := &models.Category{ID: 1, Name: "Capitals"}
	cards := []models.Card{
		{ID: 11, CategoryID: 1, Question: "Capital of France?", Answer: "Paris"},
		{ID: 12, CategoryID: 1, Question: "Capital of Spain?", Answer: "Madrid"},
	}
	return category, cards
}

func TestStartSession_EmptyCategory(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	categoryRepo.On("Get", mock.Anything, int64(1)).Return(&models.Category{ID: 1, Name: "Empty"}, nil)
	cardRepo.On("ListByCategory", mock.Anything, models.CardFilter{CategoryID: 1}).Return([]models.Card{}, nil)

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	_, err := svc.StartSession(context.Background(), 1, false, 0)

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	statsRepo.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartSession_UnknownCategory(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	categoryRepo.On("Get", mock.Anything, int64(7)).Return(nil, nil)

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	_, err := svc.StartSession(context.Background(), 7, false, 0)

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestSubmitAnswer_RecordsAttemptAndScores(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	category, cards := capitalsFixture()
	categoryRepo.On("Get", mock.Anything, category.ID).Return(category, nil)
	cardRepo.On("ListByCategory", mock.Anything, models.CardFilter{CategoryID: category.ID}).Return(cards, nil)
	statsRepo.On("RecordAttempt", mock.Anything, int64(11), true).Return(&models.CardStats{CardID: 11, CorrectCount: 1}, nil)

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	view, err := svc.StartSession(context.Background(), category.ID, false, 0)
	require.NoError(t, err)
	assert.Equal(t, session.StateAnswering, view.State)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "Capital of France?", view.Question)
	assert.Empty(t, view.Answer, "canonical answer hidden while answering")

	view, err = svc.SubmitAnswer(context.Background(), view.ID, " paris ")
	require.NoError(t, err)
	assert.Equal(t, session.StateRevealed, view.State)
	require.NotNil(t, view.Result)
	assert.True(t, view.Result.Correct)
	assert.Equal(t, "Paris", view.Answer)
	assert.Equal(t, " paris ", view.Submitted)
	assert.Equal(t, models.Score{Correct: 1, Wrong: 0}, view.Score)

	statsRepo.AssertExpectations(t)
}

func TestSubmitAnswer_PersistenceFailureKeepsSessionGoing(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	category, cards := capitalsFixture()
	categoryRepo.On("Get", mock.Anything, category.ID).Return(category, nil)
	cardRepo.On("ListByCategory", mock.Anything, models.CardFilter{CategoryID: category.ID}).Return(cards, nil)
	statsRepo.On("RecordAttempt", mock.Anything, int64(11), false).Return(nil, errors.New("store down"))

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	view, err := svc.StartSession(context.Background(), category.ID, false, 0)
	require.NoError(t, err)

	view, err = svc.SubmitAnswer(context.Background(), view.ID, "London")
	require.NoError(t, err, "a failed attempt write must not fail the submit")
	assert.Equal(t, models.Score{Correct: 0, Wrong: 1}, view.Score)
	assert.Equal(t, session.StateRevealed, view.State)
}

func TestFullTraversal_FinishedReportsTotals(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	category, cards := capitalsFixture()
	categoryRepo.On("Get", mock.Anything, category.ID).Return(category, nil)
	cardRepo.On("ListByCategory", mock.Anything, models.CardFilter{CategoryID: category.ID}).Return(cards, nil)
	statsRepo.On("RecordAttempt", mock.Anything, int64(11), true).Return(&models.CardStats{}, nil)
	statsRepo.On("RecordAttempt", mock.Anything, int64(12), false).Return(&models.CardStats{}, nil)

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	view, err := svc.StartSession(context.Background(), category.ID, false, 0)
	require.NoError(t, err)

	view, err = svc.SubmitAnswer(context.Background(), view.ID, "Paris")
	require.NoError(t, err)
	view, err = svc.Advance(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateAnswering, view.State)
	assert.Equal(t, 1, view.Index)

	view, err = svc.SubmitAnswer(context.Background(), view.ID, "Barcelona")
	require.NoError(t, err)
	view, err = svc.Advance(context.Background(), view.ID)
	require.NoError(t, err)

	assert.Equal(t, session.StateFinished, view.State)
	assert.Equal(t, models.Score{Correct: 1, Wrong: 1}, view.Score)
	assert.Empty(t, view.Question)
	statsRepo.AssertExpectations(t)
}

func TestSessionNotFound(t *testing.T) {
	svc := newSessionService(new(mocks.MockCardRepository), new(mocks.MockCategoryRepository), new(mocks.MockStatsRepository))

	_, err := svc.GetSession(context.Background(), "missing")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestSetShuffle_ReshufflesWithSeed(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	statsRepo := new(mocks.MockStatsRepository)

	category, cards := capitalsFixture()
	categoryRepo.On("Get", mock.Anything, category.ID).Return(category, nil)
	cardRepo.On("ListByCategory", mock.Anything, models.CardFilter{CategoryID: category.ID}).Return(cards, nil)

	svc := newSessionService(cardRepo, categoryRepo, statsRepo)
	view, err := svc.StartSession(context.Background(), category.ID, true, 42)
	require.NoError(t, err)
	assert.True(t, view.Shuffled)
	assert.Equal(t, 0, view.Index)

	view, err = svc.SetShuffle(context.Background(), view.ID, false)
	require.NoError(t, err)
	assert.False(t, view.Shuffled)
	assert.Equal(t, "Capital of France?", view.Question, "creation order restored")
}
