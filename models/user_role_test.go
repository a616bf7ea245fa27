package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRole(t *testing.T) {
	t.Run(`IsManagerRole check`, func(t *testing.T) {
		managers := []UserRole{
			DirectorGeneralRole,
			SystemAdministratorRole,
			DeputyDirectorGeneralRole,
			DirectorRole,
			DeputyDirectorRole,
			PrincipalRole,
			VicePrincipalRole,
			HeadOfDepartmentRole,
			SupervisorRole,
			"Finance Division Head",
			"Procurement Unit Head",
		}
		for _, role := range managers {
			require.True(t, role.IsManagerRole(), role)
		}

		require.False(t, StaffOfficerRole.IsManagerRole())
		require.False(t, UserRole("").IsManagerRole())
		require.False(t, UserRole("Headmaster").IsManagerRole())
		require.False(t, UserRole("Head").IsManagerRole())
	})

	t.Run(`IsAdmin check`, func(t *testing.T) {
		require.True(t, DirectorGeneralRole.IsAdmin())
		require.True(t, SystemAdministratorRole.IsAdmin())
		require.False(t, SupervisorRole.IsAdmin())
		require.False(t, StaffOfficerRole.IsAdmin())
	})
}

func TestAppraisalStatus(t *testing.T) {
	require.True(t, AppraisalStatusInProgress.IsActive())
	require.True(t, AppraisalStatusSubmitted.IsActive())
	require.False(t, AppraisalStatusReviewed.IsActive())
	require.False(t, AppraisalStatusCompleted.IsActive())
}

func TestStageName(t *testing.T) {
	require.Len(t, AllStages, 6)
	for _, stage := range AllStages {
		require.True(t, stage.IsValid())
		require.NotEmpty(t, stage.ToHuman())
		require.NotEmpty(t, stage.LockField())
	}
	require.False(t, StageName("unknown").IsValid())
	require.Equal(t, "Personal info", StagePersonalInfo.ToHuman())
	require.Equal(t, "PerformancePlanningLocked", StagePerformancePlanning.LockField())
}

func TestAppraisalStatusOrder(t *testing.T) {
	require.True(t, AppraisalStatusInProgress.CanMoveTo(AppraisalStatusSubmitted))
	require.True(t, AppraisalStatusSubmitted.CanMoveTo(AppraisalStatusReviewed))
	require.True(t, AppraisalStatusReviewed.CanMoveTo(AppraisalStatusCompleted))
	require.True(t, AppraisalStatusSubmitted.CanMoveTo(AppraisalStatusSubmitted))
	require.False(t, AppraisalStatusCompleted.CanMoveTo(AppraisalStatusInProgress))
	require.False(t, AppraisalStatusReviewed.CanMoveTo(AppraisalStatusSubmitted))
	require.False(t, AppraisalStatus("draft").CanMoveTo(AppraisalStatusSubmitted))
}
