package services

import (
	"errors"
	"testing"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type clickArtistStoreMock struct {
	mock.Mock
}

func (m *clickArtistStoreMock) GetByID(id string) (*models.Artist, error) {
	args := m.Called(id)
	if artist := args.Get(0); artist != nil {
		return artist.(*models.Artist), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *clickArtistStoreMock) IncrementClicks(id string, adActive bool) error {
	args := m.Called(id, adActive)
	return args.Error(0)
}

type clickAdStoreMock struct {
	mock.Mock
}

func (m *clickAdStoreMock) IncrementRunningClick(artistID string) error {
	args := m.Called(artistID)
	return args.Error(0)
}

func TestRecordVisitPromotedArtist(t *testing.T) {
	artistRepo := new(clickArtistStoreMock)
	adRepo := new(clickAdStoreMock)

	artist := &models.Artist{ID: "artist-1", IsAdActive: true}
	artistRepo.On("GetByID", "artist-1").Return(artist, nil)
	artistRepo.On("IncrementClicks", "artist-1", true).Return(nil)
	adRepo.On("IncrementRunningClick", "artist-1").Return(nil)

	svc := NewClickService(artistRepo, adRepo)

	require.NoError(t, svc.RecordVisit("artist-1"))

	artistRepo.AssertExpectations(t)
	adRepo.AssertExpectations(t)
}

func TestRecordVisitUnpromotedArtist(t *testing.T) {
	artistRepo := new(clickArtistStoreMock)
	adRepo := new(clickAdStoreMock)

	artist := &models.Artist{ID: "artist-1", IsAdActive: false}
	artistRepo.On("GetByID", "artist-1").Return(artist, nil)
	artistRepo.On("IncrementClicks", "artist-1", false).Return(nil)

	svc := NewClickService(artistRepo, adRepo)

	require.NoError(t, svc.RecordVisit("artist-1"))

	// No ad-attributed increment without a promotion
	adRepo.AssertNotCalled(t, "IncrementRunningClick", mock.Anything)
}

func TestRecordVisitToleratesMissingRunningAd(t *testing.T) {
	artistRepo := new(clickArtistStoreMock)
	adRepo := new(clickAdStoreMock)

	artist := &models.Artist{ID: "artist-1", IsAdActive: true}
	artistRepo.On("GetByID", "artist-1").Return(artist, nil)
	artistRepo.On("IncrementClicks", "artist-1", true).Return(nil)
	adRepo.On("IncrementRunningClick", "artist-1").Return(errors.New("no running ad"))

	svc := NewClickService(artistRepo, adRepo)

	// Ad bookkeeping drift must never fail the visit
	require.NoError(t, svc.RecordVisit("artist-1"))
}

func TestRecordVisitArtistNotFound(t *testing.T) {
	artistRepo := new(clickArtistStoreMock)
	adRepo := new(clickAdStoreMock)

	artistRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewClickService(artistRepo, adRepo)

	require.ErrorIs(t, svc.RecordVisit("missing"), ErrArtistNotFound)
}

func TestRecordVisitIncrementFailure(t *testing.T) {
	artistRepo := new(clickArtistStoreMock)
	adRepo := new(clickAdStoreMock)

	artistRepo.On("GetByID", "artist-1").Return(&models.Artist{ID: "artist-1"}, nil)
	artistRepo.On("IncrementClicks", "artist-1", false).Return(errors.New("connection reset"))

	svc := NewClickService(artistRepo, adRepo)

	require.Error(t, svc.RecordVisit("artist-1"))
}
