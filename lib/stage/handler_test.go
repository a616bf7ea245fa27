package stagehandler

import (
	"context"
	"testing"

	appraisalhandler "appraisal-backend/lib/appraisal"
	sectionavailabilityhandler "appraisal-backend/lib/section-availability"
	"appraisal-backend/lib/uow/memstore"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

type testEnv struct {
	store      *memstore.Store
	handler    Provider
	employeeID string
}

func newTestEnv() testEnv {
	store := memstore.New()
	managerID := store.AddUser(dbmodels.User{Name: "Петрова", Role: models.SupervisorRole, IsActive: true})
	employeeID := store.AddUser(dbmodels.User{Name: "Иванов", Role: models.StaffOfficerRole, ManagerID: &managerID, IsActive: true})
	return testEnv{
		store:      store,
		handler:    NewInstance(store, nil),
		employeeID: employeeID,
	}
}

func personalInfo() *appraisalapimodels.PersonalInfoData {
	return &appraisalapimodels.PersonalInfoData{
		PeriodFrom: ptr("2025-01-01"),
		PeriodTo:   ptr("2025-12-31"),
		Surname:    ptr("Иванов"),
		FirstName:  ptr("Иван"),
	}
}

func planning(signed bool) *appraisalapimodels.PerformancePlanningData {
	data := &appraisalapimodels.PerformancePlanningData{
		KeyResultAreas: &[]dbmodels.KeyResultArea{
			{Area: "Продажи", Targets: "Рост 10%", Weight: 60},
			{Area: "Клиенты", Targets: "NPS 50", Weight: 40},
		},
		KeyCompetencies: &[]dbmodels.KeyCompetency{{Competency: "Лидерство"}},
	}
	if signed {
		data.AppraiseeSignatureUrl = ptr("http://s3/signatures/appraisee.png")
		data.AppraiserSignatureUrl = ptr("http://s3/signatures/appraiser.png")
	}
	return data
}

func (e testEnv) appraisal(t *testing.T) *dbmodels.Appraisal {
	rec, err := e.store.Stores().Appraisals.GetActiveByEmployee(e.employeeID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec
}

func TestCreatePersonalInfo(t *testing.T) {
	t.Run(`allocates appraisal`, func(t *testing.T) {
		env := newTestEnv()
		rec, err := env.handler.Create(context.Background(), env.employeeID, personalInfo())
		require.NoError(t, err)
		require.NotEmpty(t, rec.GetID())

		appraisal := env.appraisal(t)
		require.Equal(t, &appraisal.ID, rec.GetAppraisalID())
		require.Equal(t, models.AppraisalStatusInProgress, appraisal.Status)
		require.Equal(t, "Иванов", appraisal.EmployeeInfo.Surname)
		require.Equal(t, "2025-01-01", appraisal.EmployeeInfo.PeriodFrom)
		require.NotNil(t, appraisal.AppraiserID)

		again, err := env.handler.Create(context.Background(), env.employeeID, personalInfo())
		require.NoError(t, err)
		require.Equal(t, rec.GetAppraisalID(), again.GetAppraisalID())
	})

	t.Run(`period is required`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(context.Background(), env.employeeID, &appraisalapimodels.PersonalInfoData{Surname: ptr("Иванов")})
		require.True(t, models.IsValidationError(err))
		require.Equal(t, "Period from and period to are required", err.Error())
	})

	t.Run(`unknown employee`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Create(context.Background(), "unknown", personalInfo())
		require.True(t, models.IsNotFoundError(err))
	})

	t.Run(`completed period is rejected`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)
		appraisal := env.appraisal(t)
		require.NoError(t, env.store.Stores().Appraisals.Update(appraisal.ID, map[string]interface{}{
			"Status": models.AppraisalStatusCompleted,
		}))

		_, err = env.handler.Create(ctx, env.employeeID, personalInfo())
		require.True(t, models.IsValidationError(err))
		require.Equal(t, "Appraisal has already been completed", err.Error())

		count, err := env.store.Stores().PersonalInfo.CountByAppraisal(appraisal.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})

	t.Run(`links records saved before allocation`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		pp, err := env.handler.Create(ctx, env.employeeID, planning(false))
		require.NoError(t, err)
		require.Nil(t, pp.GetAppraisalID())

		_, err = env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)
		appraisal := env.appraisal(t)

		linked, err := env.handler.GetByID(models.StagePerformancePlanning, pp.GetID())
		require.NoError(t, err)
		require.Equal(t, &appraisal.ID, linked.GetAppraisalID())
		reviews, err := env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		require.Equal(t, &appraisal.ID, reviews[0].GetAppraisalID())
	})
}

func TestCompletePurgesRecordsSavedBeforeAllocation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	appraisals := appraisalhandler.NewInstance(env.store, nil, nil, nil)

	_, err := env.handler.Create(ctx, env.employeeID, planning(false))
	require.NoError(t, err)
	_, err = env.handler.Create(ctx, env.employeeID, personalInfo())
	require.NoError(t, err)
	_, err = env.handler.Create(ctx, env.employeeID, &appraisalapimodels.EndYearReviewData{
		Targets: &[]appraisalapimodels.EndYearTargetData{{Target: "Рост 10%", WeightOfTarget: 0.6, Score: 4}},
	})
	require.NoError(t, err)
	_, err = env.handler.Create(ctx, env.employeeID, &appraisalapimodels.FinalSectionsData{
		AppraiserComments:  ptr("Хорошая работа"),
		AssessmentDecision: ptr("suitable"),
	})
	require.NoError(t, err)

	view, err := appraisals.Submit(env.employeeID)
	require.NoError(t, err)
	appraisal := env.appraisal(t)
	require.Equal(t, appraisal.ID, view.ID)
	require.NotNil(t, appraisal.AppraiserID)
	managerID := *appraisal.AppraiserID

	require.NoError(t, appraisals.Approve(appraisal.ID, managerID, ""))
	require.NoError(t, appraisals.Complete(appraisal.ID, managerID))

	stores := env.store.Stores()
	for _, count := range []func(string) (int64, error){
		stores.PerformancePlanning.CountByAppraisal,
		stores.MidYearReview.CountByAppraisal,
	} {
		n, err := count(appraisal.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	}
	plans, err := env.handler.ListByUser(models.StagePerformancePlanning, env.employeeID)
	require.NoError(t, err)
	require.Empty(t, plans)
	reviews, err := env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
	require.NoError(t, err)
	require.Empty(t, reviews)
}

func TestLocking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pi, err := env.handler.Create(ctx, env.employeeID, personalInfo())
	require.NoError(t, err)

	pp, err := env.handler.Create(ctx, env.employeeID, planning(true))
	require.NoError(t, err)
	require.True(t, pp.IsFullySigned())

	appraisal := env.appraisal(t)
	require.True(t, appraisal.PersonalInfoLocked)
	require.True(t, appraisal.PerformancePlanningLocked)
	require.False(t, appraisal.MidYearReviewLocked)

	_, err = env.handler.Update(ctx, pi.GetID(), &appraisalapimodels.PersonalInfoData{Surname: ptr("Петров")})
	require.True(t, models.IsValidationError(err))
	require.Equal(t, "Personal info form is locked", err.Error())

	_, err = env.handler.Create(ctx, env.employeeID, personalInfo())
	require.True(t, models.IsValidationError(err))

	_, err = env.handler.Update(ctx, pp.GetID(), planning(false))
	require.Equal(t, "Performance planning form is locked", err.Error())

	stored, err := env.handler.GetByID(models.StagePersonalInfo, pi.GetID())
	require.NoError(t, err)
	require.Equal(t, "Иванов", stored.(dbmodels.PersonalInfo).Surname)
}

func TestAtomicity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
	require.NoError(t, err)

	env.store.FailOn("appraisals.Update", errors.New("db is down"))
	_, err = env.handler.Create(ctx, env.employeeID, planning(true))
	require.Error(t, err)
	env.store.ClearFaults()

	list, err := env.handler.ListByUser(models.StagePerformancePlanning, env.employeeID)
	require.NoError(t, err)
	require.Empty(t, list)
	appraisal := env.appraisal(t)
	require.False(t, appraisal.PerformancePlanningLocked)
	require.Empty(t, appraisal.KeyResultAreas)
}

func TestAutofill(t *testing.T) {
	t.Run(`planning seeds mid-year review once`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)
		_, err = env.handler.Create(ctx, env.employeeID, planning(false))
		require.NoError(t, err)

		list, err := env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		review := list[0].(dbmodels.MidYearReview)
		require.Equal(t, dbmodels.ReviewItems{{Description: "Рост 10%"}, {Description: "NPS 50"}}, review.Targets)
		require.Equal(t, dbmodels.ReviewItems{{Description: "Лидерство"}}, review.Competencies)
		require.Equal(t, &env.appraisal(t).ID, review.AppraisalID)

		_, err = env.handler.Create(ctx, env.employeeID, planning(false))
		require.NoError(t, err)
		list, err = env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		// создание промежуточной оценки годовую не заполняет
		eyr, err := env.handler.ListByUser(models.StageEndYearReview, env.employeeID)
		require.NoError(t, err)
		require.Empty(t, eyr)
	})

	t.Run(`mid-year update seeds end-year review`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)
		_, err = env.handler.Create(ctx, env.employeeID, planning(false))
		require.NoError(t, err)
		list, err := env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		_, err = env.handler.Update(ctx, list[0].GetID(), &appraisalapimodels.MidYearReviewData{
			Targets: &[]dbmodels.ReviewItem{{Description: "Рост 10%", Progress: "50%"}},
		})
		require.NoError(t, err)

		eyr, err := env.handler.ListByUser(models.StageEndYearReview, env.employeeID)
		require.NoError(t, err)
		require.Len(t, eyr, 1)
		require.Equal(t, dbmodels.EndYearTargets{{Target: "Рост 10%", WeightOfTarget: 0.6}}, eyr[0].(dbmodels.EndYearReview).Targets)

		appraisal := env.appraisal(t)
		require.Equal(t, "50%", appraisal.MidYearReview.Targets[0].Progress)
		require.Len(t, appraisal.EndOfYearReview.Targets, 1)
	})

	t.Run(`seed failure keeps saved stage`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)

		env.store.FailOn("mid_year_reviews.Create", errors.New("db is down"))
		pp, err := env.handler.Create(ctx, env.employeeID, planning(false))
		require.NoError(t, err)
		env.store.ClearFaults()

		_, err = env.handler.GetByID(models.StagePerformancePlanning, pp.GetID())
		require.NoError(t, err)
		list, err := env.handler.ListByUser(models.StageMidYearReview, env.employeeID)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestUpdate(t *testing.T) {
	t.Run(`no fields`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		rec, err := env.handler.Create(ctx, env.employeeID, &appraisalapimodels.FinalSectionsData{AppraiserComments: ptr("Ок")})
		require.NoError(t, err)

		_, err = env.handler.Update(ctx, rec.GetID(), &appraisalapimodels.FinalSectionsData{})
		require.True(t, models.IsValidationError(err))
		require.Equal(t, "No fields to update", err.Error())
	})

	t.Run(`unknown record`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Update(context.Background(), "unknown", &appraisalapimodels.FinalSectionsData{AppraiserComments: ptr("Ок")})
		require.True(t, models.IsNotFoundError(err))
		require.Equal(t, "Final sections record not found", err.Error())
	})

	t.Run(`record without appraisal is linked on update`, func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		rec, err := env.handler.Create(ctx, env.employeeID, &appraisalapimodels.MidYearReviewData{})
		require.NoError(t, err)
		require.Nil(t, rec.GetAppraisalID())

		_, err = env.handler.Create(ctx, env.employeeID, personalInfo())
		require.NoError(t, err)
		updated, err := env.handler.Update(ctx, rec.GetID(), &appraisalapimodels.MidYearReviewData{
			Competencies: &[]dbmodels.ReviewItem{{Description: "Лидерство"}},
		})
		require.NoError(t, err)
		require.Equal(t, &env.appraisal(t).ID, updated.GetAppraisalID())
	})
}

func TestEndYearCalculations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
	require.NoError(t, err)

	rec, err := env.handler.Create(ctx, env.employeeID, &appraisalapimodels.EndYearReviewData{
		Targets: &[]appraisalapimodels.EndYearTargetData{
			{Target: "A", WeightOfTarget: 0.6, Score: 4},
			{Target: "B", WeightOfTarget: 0.4, Score: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, dbmodels.EndYearCalculations{TotalScore: 7, AverageScore: 3.5, WeightedScore: 3.6}, rec.(dbmodels.EndYearReview).Calculations)

	updated, err := env.handler.Update(ctx, rec.GetID(), &appraisalapimodels.EndYearReviewData{
		Targets: &[]appraisalapimodels.EndYearTargetData{{Target: "A", WeightOfTarget: 0.5, Score: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, dbmodels.EndYearCalculations{TotalScore: 5, AverageScore: 5, WeightedScore: 2.5}, updated.(dbmodels.EndYearReview).Calculations)
	require.Equal(t, 2.5, env.appraisal(t).EndOfYearReview.Calculations.WeightedScore)

	_, err = env.handler.Create(ctx, env.employeeID, &appraisalapimodels.EndYearReviewData{
		Targets: &[]appraisalapimodels.EndYearTargetData{{Target: "A", Score: 7}},
	})
	require.True(t, models.IsValidationError(err))
}

func TestFinalSectionsSubmit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.handler.Create(ctx, env.employeeID, personalInfo())
	require.NoError(t, err)

	_, err = env.handler.Create(ctx, env.employeeID, &appraisalapimodels.FinalSectionsData{
		AppraiserComments:  ptr("Хорошая работа"),
		AssessmentDecision: ptr("suitable"),
	})
	require.NoError(t, err)

	appraisal := env.appraisal(t)
	require.Equal(t, models.AppraisalStatusSubmitted, appraisal.Status)
	require.NotNil(t, appraisal.SubmittedAt)
	require.Equal(t, models.AssessmentSuitable, appraisal.AssessmentDecision)
}

func TestSectionAvailability(t *testing.T) {
	store := memstore.New()
	employeeID := store.AddUser(dbmodels.User{Name: "Иванов", Role: models.StaffOfficerRole, IsActive: true})
	sections := sectionavailabilityhandler.NewInstance(store)
	handler := NewInstance(store, sections)

	_, err := sections.Update(models.StageMidYearReview, appraisalapimodels.SectionAvailabilityData{
		IsAvailable: ptr(false),
		Message:     ptr("Mid-year review opens in June"),
	}, "admin")
	require.NoError(t, err)

	_, err = handler.Create(context.Background(), employeeID, &appraisalapimodels.MidYearReviewData{})
	require.True(t, models.IsValidationError(err))
	require.Equal(t, "Mid-year review opens in June", err.Error())

	_, err = handler.Create(context.Background(), employeeID, &appraisalapimodels.EndYearReviewData{})
	require.NoError(t, err)
}
