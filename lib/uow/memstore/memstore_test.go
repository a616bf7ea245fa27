package memstore

import (
	"testing"
	"time"

	"appraisal-backend/lib/uow"
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newAppraisal(employeeID string, status models.AppraisalStatus) dbmodels.Appraisal {
	return dbmodels.Appraisal{
		EmployeeID:  employeeID,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

func TestTransaction(t *testing.T) {
	t.Run(`rollback on error`, func(t *testing.T) {
		s := New()
		errTest := errors.New("test")
		err := s.Transaction(func(tx uow.Stores) error {
			_, err := tx.Appraisals.Create(newAppraisal("u1", models.AppraisalStatusInProgress))
			require.NoError(t, err)
			_, err = tx.PersonalInfo.Create(&dbmodels.PersonalInfo{StageBase: dbmodels.StageBase{UserID: "u1"}})
			require.NoError(t, err)
			return errTest
		})
		require.ErrorIs(t, err, errTest)

		rec, err := s.Stores().Appraisals.GetActiveByEmployee("u1")
		require.NoError(t, err)
		require.Nil(t, rec)
		list, err := s.Stores().PersonalInfo.ListByUser("u1")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run(`commit`, func(t *testing.T) {
		s := New()
		var id string
		err := s.Transaction(func(tx uow.Stores) (err error) {
			id, err = tx.Appraisals.Create(newAppraisal("u1", models.AppraisalStatusInProgress))
			return err
		})
		require.NoError(t, err)
		rec, err := s.Stores().Appraisals.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "u1", rec.EmployeeID)
	})
}

func TestFailOn(t *testing.T) {
	s := New()
	errTest := errors.New("db is down")
	s.FailOn("mid_year_reviews.Create", errTest)

	_, err := s.Stores().MidYearReview.Create(&dbmodels.MidYearReview{})
	require.ErrorIs(t, err, errTest)
	_, err = s.Stores().EndYearReview.Create(&dbmodels.EndYearReview{})
	require.NoError(t, err)

	s.ClearFaults()
	_, err = s.Stores().MidYearReview.Create(&dbmodels.MidYearReview{})
	require.NoError(t, err)
}

func TestSingleActiveAppraisal(t *testing.T) {
	s := New()
	_, err := s.Stores().Appraisals.Create(newAppraisal("u1", models.AppraisalStatusInProgress))
	require.NoError(t, err)

	_, err = s.Stores().Appraisals.Create(newAppraisal("u1", models.AppraisalStatusSubmitted))
	require.ErrorIs(t, err, ErrUniqueViolation)

	_, err = s.Stores().Appraisals.Create(newAppraisal("u1", models.AppraisalStatusCompleted))
	require.NoError(t, err)
	_, err = s.Stores().Appraisals.Create(newAppraisal("u2", models.AppraisalStatusInProgress))
	require.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	s := New()
	id, err := s.Stores().Appraisals.Create(newAppraisal("u1", models.AppraisalStatusInProgress))
	require.NoError(t, err)

	now := time.Now()
	err = s.Stores().Appraisals.Update(id, map[string]interface{}{
		"Status":      models.AppraisalStatusSubmitted,
		"SubmittedAt": now,
		"CurrentStep": 3,
	})
	require.NoError(t, err)

	rec, err := s.Stores().Appraisals.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, models.AppraisalStatusSubmitted, rec.Status)
	require.NotNil(t, rec.SubmittedAt)
	require.True(t, now.Equal(*rec.SubmittedAt))
	require.Equal(t, 3, rec.CurrentStep)

	err = s.Stores().Appraisals.Update(id, map[string]interface{}{"Unknown": 1})
	require.Error(t, err)
}

func TestStageOrder(t *testing.T) {
	s := New()
	appraisalID := "a1"
	for _, surname := range []string{"first", "second"} {
		_, err := s.Stores().PersonalInfo.Create(&dbmodels.PersonalInfo{
			StageBase: dbmodels.StageBase{UserID: "u1", AppraisalID: &appraisalID},
			Surname:   surname,
		})
		require.NoError(t, err)
	}
	last, err := s.Stores().PersonalInfo.GetLastByUser("u1")
	require.NoError(t, err)
	require.Equal(t, "second", last.Surname)

	count, err := s.Stores().PersonalInfo.CountByAppraisal(appraisalID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = s.Stores().PersonalInfo.DeleteByAppraisal(appraisalID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	last, err = s.Stores().PersonalInfo.GetLastByUser("u1")
	require.NoError(t, err)
	require.Nil(t, last)
}

func TestLinkUnassigned(t *testing.T) {
	s := New()
	stores := s.Stores()
	other, target := "a0", "a1"
	free, err := stores.FinalSections.Create(&dbmodels.FinalSections{StageBase: dbmodels.StageBase{UserID: "u1"}})
	require.NoError(t, err)
	owned, err := stores.FinalSections.Create(&dbmodels.FinalSections{StageBase: dbmodels.StageBase{UserID: "u1", AppraisalID: &other}})
	require.NoError(t, err)
	foreign, err := stores.FinalSections.Create(&dbmodels.FinalSections{StageBase: dbmodels.StageBase{UserID: "u2"}})
	require.NoError(t, err)

	count, err := stores.FinalSections.LinkUnassigned("u1", target)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	for id, want := range map[string]*string{free: &target, owned: &other, foreign: nil} {
		rec, err := stores.FinalSections.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, want, rec.AppraisalID)
	}

	s.FailOn("final_sections.LinkUnassigned", errors.New("db is down"))
	_, err = stores.FinalSections.LinkUnassigned("u2", "a1")
	require.Error(t, err)
}
