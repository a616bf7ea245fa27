package sectionavailabilityhandler

import (
	"testing"
	"time"

	"appraisal-backend/lib/uow/memstore"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestHandler(now time.Time) (impl, *memstore.Store) {
	store := memstore.New()
	return impl{
		unit: store,
		now:  func() time.Time { return now },
	}, store
}

func TestCheckOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run(`no row is open`, func(t *testing.T) {
		h, _ := newTestHandler(now)
		require.NoError(t, h.CheckOpen(models.StageFinalSections))
	})

	t.Run(`closed with message`, func(t *testing.T) {
		h, _ := newTestHandler(now)
		_, err := h.Update(models.StageAnnualAppraisal, appraisalapimodels.SectionAvailabilityData{
			IsAvailable: ptr(false),
			Message:     ptr("Annual appraisal is closed"),
		}, "admin")
		require.NoError(t, err)

		err = h.CheckOpen(models.StageAnnualAppraisal)
		require.True(t, models.IsValidationError(err))
		require.Equal(t, "Annual appraisal is closed", err.Error())
	})

	t.Run(`closed until date`, func(t *testing.T) {
		h, _ := newTestHandler(now)
		_, err := h.Update(models.StageEndYearReview, appraisalapimodels.SectionAvailabilityData{
			IsAvailable: ptr(false),
			OpensAt:     ptr("2025-12-01T00:00:00Z"),
		}, "admin")
		require.NoError(t, err)

		err = h.CheckOpen(models.StageEndYearReview)
		require.Equal(t, "End-year review section opens on 2025-12-01", err.Error())

		later := h
		later.now = func() time.Time { return now.AddDate(1, 0, 0) }
		require.NoError(t, later.CheckOpen(models.StageEndYearReview))
	})

	t.Run(`closed without details`, func(t *testing.T) {
		h, _ := newTestHandler(now)
		_, err := h.Update(models.StageMidYearReview, appraisalapimodels.SectionAvailabilityData{IsAvailable: ptr(false)}, "admin")
		require.NoError(t, err)
		require.Equal(t, "Mid-year review section is not available", h.CheckOpen(models.StageMidYearReview).Error())
	})
}

func TestUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, _ := newTestHandler(now)

	_, err := h.Update(models.StageName("unknown"), appraisalapimodels.SectionAvailabilityData{}, "admin")
	require.True(t, models.IsValidationError(err))

	_, err = h.Update(models.StagePersonalInfo, appraisalapimodels.SectionAvailabilityData{OpensAt: ptr("01.12.2025")}, "admin")
	require.True(t, models.IsValidationError(err))

	view, err := h.Update(models.StagePersonalInfo, appraisalapimodels.SectionAvailabilityData{IsAvailable: ptr(false)}, "admin")
	require.NoError(t, err)
	require.False(t, view.IsAvailable)

	view, err = h.Update(models.StagePersonalInfo, appraisalapimodels.SectionAvailabilityData{Message: ptr("Закрыто")}, "admin")
	require.NoError(t, err)
	require.False(t, view.IsAvailable)
	require.Equal(t, "Закрыто", view.Message)

	view, err = h.Get(models.StagePersonalInfo)
	require.NoError(t, err)
	require.Equal(t, "Закрыто", view.Message)

	list, err := h.List()
	require.NoError(t, err)
	require.Len(t, list, len(models.AllStages))
	for _, item := range list {
		require.Equal(t, item.SectionName != models.StagePersonalInfo, item.IsAvailable)
	}
}

func TestOpenDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, store := newTestHandler(now)

	_, err := h.Update(models.StageMidYearReview, appraisalapimodels.SectionAvailabilityData{
		IsAvailable: ptr(false),
		OpensAt:     ptr("2025-05-31T00:00:00Z"),
	}, "admin")
	require.NoError(t, err)
	_, err = h.Update(models.StageEndYearReview, appraisalapimodels.SectionAvailabilityData{
		IsAvailable: ptr(false),
		OpensAt:     ptr("2025-12-01T00:00:00Z"),
	}, "admin")
	require.NoError(t, err)

	opened, err := h.OpenDue(now)
	require.NoError(t, err)
	require.Equal(t, 1, opened)

	rec, err := store.Stores().Sections.GetBySection(models.StageMidYearReview)
	require.NoError(t, err)
	require.True(t, rec.IsAvailable)
	rec, err = store.Stores().Sections.GetBySection(models.StageEndYearReview)
	require.NoError(t, err)
	require.False(t, rec.IsAvailable)

	opened, err = h.OpenDue(now)
	require.NoError(t, err)
	require.Zero(t, opened)
}

func TestPreload(t *testing.T) {
	h, store := newTestHandler(time.Now())
	_, err := h.Update(models.StageFinalSections, appraisalapimodels.SectionAvailabilityData{IsAvailable: ptr(false)}, "admin")
	require.NoError(t, err)

	require.NoError(t, h.Preload())
	require.NoError(t, h.Preload())

	list, err := store.Stores().Sections.List()
	require.NoError(t, err)
	require.Len(t, list, len(models.AllStages))
	for _, rec := range list {
		require.Equal(t, rec.SectionName != models.StageFinalSections, rec.IsAvailable)
	}
}
