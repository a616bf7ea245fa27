package models

type AppraisalStatus string

const (
	AppraisalStatusInProgress AppraisalStatus = "in-progress"
	AppraisalStatusSubmitted  AppraisalStatus = "submitted"
	AppraisalStatusReviewed   AppraisalStatus = "reviewed"
	AppraisalStatusCompleted  AppraisalStatus = "completed"
)

// ActiveAppraisalStatuses статусы, при которых у сотрудника может быть только одна аттестация
var ActiveAppraisalStatuses = []AppraisalStatus{AppraisalStatusInProgress, AppraisalStatusSubmitted}

var appraisalStatusOrder = map[AppraisalStatus]int{
	AppraisalStatusInProgress: 0,
	AppraisalStatusSubmitted:  1,
	AppraisalStatusReviewed:   2,
	AppraisalStatusCompleted:  3,
}

func (s AppraisalStatus) IsActive() bool {
	return s == AppraisalStatusInProgress || s == AppraisalStatusSubmitted
}

// CanMoveTo статус меняется только вперед
func (s AppraisalStatus) CanMoveTo(next AppraisalStatus) bool {
	cur, ok := appraisalStatusOrder[s]
	if !ok {
		return false
	}
	nxt, ok := appraisalStatusOrder[next]
	if !ok {
		return false
	}
	return nxt >= cur
}

type ManagerStatus string

const (
	ManagerStatusNone     ManagerStatus = ""
	ManagerStatusApproved ManagerStatus = "approved"
	ManagerStatusRejected ManagerStatus = "rejected"
)

type AssessmentDecision string

const (
	AssessmentOutstanding AssessmentDecision = "outstanding"
	AssessmentSuitable    AssessmentDecision = "suitable"
	AssessmentLikelyReady AssessmentDecision = "likely_ready"
	AssessmentNotReady    AssessmentDecision = "not_ready"
	AssessmentUnlikely    AssessmentDecision = "unlikely"
)
