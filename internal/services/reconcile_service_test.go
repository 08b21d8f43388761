package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/stretchr/testify/require"
)

// In-memory stores let the reconciliation tests run the job repeatedly and
// observe real state transitions instead of scripted calls.

type fakeAdStore struct {
	ads          map[string]*models.Ad
	completeErrs map[string]error
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{
		ads:          map[string]*models.Ad{},
		completeErrs: map[string]error{},
	}
}

func (f *fakeAdStore) FindExpiredRunning(now time.Time) ([]*models.Ad, error) {
	var out []*models.Ad
	for _, ad := range f.ads {
		if ad.Status == models.AdStatusRunning && ad.AdEndDate.Before(now) {
			out = append(out, ad)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAdStore) MarkCompleted(id string) error {
	if err := f.completeErrs[id]; err != nil {
		return err
	}
	f.ads[id].Status = models.AdStatusCompleted
	return nil
}

type fakeArtistStore struct {
	artists map[string]*models.Artist
}

func newFakeArtistStore() *fakeArtistStore {
	return &fakeArtistStore{artists: map[string]*models.Artist{}}
}

func (f *fakeArtistStore) FindOrphaned(now time.Time) ([]*models.Artist, error) {
	var out []*models.Artist
	for _, artist := range f.artists {
		if artist.IsAdActive && (artist.AdsUntil == nil || artist.AdsUntil.Before(now)) {
			out = append(out, artist)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeArtistStore) ClearAdState(id string, resetAdClicks bool) (bool, error) {
	artist, ok := f.artists[id]
	if !ok {
		return false, nil
	}
	artist.IsAdActive = false
	artist.AdsUntil = nil
	if resetAdClicks {
		artist.AdsClickCount = 0
	}
	return true, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestReconcileExpiresRunningAds(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	yesterday := time.Now().AddDate(0, 0, -1)
	adStore.ads["ad-1"] = &models.Ad{
		ID:        "ad-1",
		ArtistID:  "artist-1",
		Title:     "Summer Promo",
		AdEndDate: yesterday,
		Status:    models.AdStatusRunning,
	}
	artistStore.artists["artist-1"] = &models.Artist{
		ID:            "artist-1",
		IsAdActive:    true,
		AdsUntil:      timePtr(yesterday),
		ClickCount:    12,
		AdsClickCount: 5,
	}

	svc := NewReconcileService(adStore, artistStore)

	before := time.Now()
	result, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 1, result.Processed)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 0, result.Errors)
	require.False(t, result.Timestamp.Before(before))
	require.False(t, result.Timestamp.After(time.Now()))
	require.Len(t, result.Details, 1)
	require.Equal(t, "ad-1", result.Details[0].AdID)
	require.Equal(t, "artist-1", result.Details[0].ArtistID)
	require.Equal(t, "Summer Promo", result.Details[0].Title)
	require.Equal(t, "completed", result.Details[0].Status)

	require.Equal(t, models.AdStatusCompleted, adStore.ads["ad-1"].Status)

	artist := artistStore.artists["artist-1"]
	require.False(t, artist.IsAdActive)
	require.Nil(t, artist.AdsUntil)
	require.Equal(t, int64(0), artist.AdsClickCount)
	// The lifetime counter survives campaign completion
	require.Equal(t, int64(12), artist.ClickCount)
}

func TestReconcileFixesOrphanedArtists(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	artistStore.artists["artist-1"] = &models.Artist{
		ID:         "artist-1",
		Name:       "Neon Tide",
		IsAdActive: true,
		AdsUntil:   nil,
	}

	svc := NewReconcileService(adStore, artistStore)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 0, result.Processed)
	require.Equal(t, 1, result.Updated)
	require.Len(t, result.Details, 1)
	require.Equal(t, "artist-1", result.Details[0].ArtistID)
	require.Equal(t, "Neon Tide", result.Details[0].Name)
	require.Equal(t, "fixed_orphaned_artist", result.Details[0].Action)

	require.False(t, artistStore.artists["artist-1"].IsAdActive)
}

func TestReconcileIdempotent(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	yesterday := time.Now().AddDate(0, 0, -1)
	adStore.ads["ad-1"] = &models.Ad{
		ID:        "ad-1",
		ArtistID:  "artist-1",
		AdEndDate: yesterday,
		Status:    models.AdStatusRunning,
	}
	artistStore.artists["artist-1"] = &models.Artist{
		ID:         "artist-1",
		IsAdActive: true,
		AdsUntil:   timePtr(yesterday),
	}
	artistStore.artists["artist-2"] = &models.Artist{
		ID:         "artist-2",
		IsAdActive: true,
		AdsUntil:   nil,
	}

	svc := NewReconcileService(adStore, artistStore)

	first, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 2, first.Updated)

	second, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 0, second.Processed)
	require.Equal(t, 0, second.Updated)
	require.Equal(t, 0, second.Errors)
	require.Empty(t, second.Details)
}

func TestReconcileIsolatesPerAdErrors(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	yesterday := time.Now().AddDate(0, 0, -1)
	for _, id := range []string{"ad-1", "ad-2"} {
		adStore.ads[id] = &models.Ad{
			ID:        id,
			ArtistID:  "artist-" + id,
			Title:     "Promo " + id,
			AdEndDate: yesterday,
			Status:    models.AdStatusRunning,
		}
		artistStore.artists["artist-"+id] = &models.Artist{
			ID:         "artist-" + id,
			IsAdActive: true,
			AdsUntil:   timePtr(yesterday),
		}
	}
	adStore.completeErrs["ad-1"] = errors.New("deadlock detected")

	svc := NewReconcileService(adStore, artistStore)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 2, result.Processed)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Errors)

	var errDetail, okDetail *ReconcileDetail
	for i := range result.Details {
		if result.Details[i].Error != "" {
			errDetail = &result.Details[i]
		} else {
			okDetail = &result.Details[i]
		}
	}
	require.NotNil(t, errDetail)
	require.Equal(t, "ad-1", errDetail.AdID)
	require.NotNil(t, okDetail)
	require.Equal(t, "ad-2", okDetail.AdID)

	// The failed ad is still running and will be retried by the next sweep
	require.Equal(t, models.AdStatusRunning, adStore.ads["ad-1"].Status)
	require.Equal(t, models.AdStatusCompleted, adStore.ads["ad-2"].Status)
}

func TestReconcileCountsMissingArtistAsError(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	adStore.ads["ad-1"] = &models.Ad{
		ID:        "ad-1",
		ArtistID:  "gone",
		AdEndDate: time.Now().AddDate(0, 0, -1),
		Status:    models.AdStatusRunning,
	}

	svc := NewReconcileService(adStore, artistStore)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 1, result.Processed)
	require.Equal(t, 0, result.Updated)
	require.Equal(t, 1, result.Errors)
	require.Contains(t, result.Details[0].Error, "not found")
}

func TestReconcileLeavesFutureAdsAlone(t *testing.T) {
	adStore := newFakeAdStore()
	artistStore := newFakeArtistStore()

	tomorrow := time.Now().AddDate(0, 0, 1)
	adStore.ads["ad-1"] = &models.Ad{
		ID:        "ad-1",
		ArtistID:  "artist-1",
		AdEndDate: tomorrow,
		Status:    models.AdStatusRunning,
	}
	artistStore.artists["artist-1"] = &models.Artist{
		ID:         "artist-1",
		IsAdActive: true,
		AdsUntil:   timePtr(tomorrow),
	}

	svc := NewReconcileService(adStore, artistStore)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	require.Equal(t, 0, result.Processed)
	require.Equal(t, 0, result.Updated)

	require.Equal(t, models.AdStatusRunning, adStore.ads["ad-1"].Status)
	require.True(t, artistStore.artists["artist-1"].IsAdActive)
}
