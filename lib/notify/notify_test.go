package notify

import (
	"strings"
	"testing"
	"time"

	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	message string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) SendEMail(to, subject, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

func testAppraisal() dbmodels.Appraisal {
	rec := dbmodels.Appraisal{
		PeriodStart:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		ManagerComments: "Уточните цели",
	}
	rec.ID = "a1"
	return rec
}

func TestNotify(t *testing.T) {
	employee := dbmodels.User{Name: "Иванов", Email: "employee@test.ru"}
	appraiser := dbmodels.User{Name: "Петрова", Email: "manager@test.ru"}

	t.Run(`submitted goes to appraiser`, func(t *testing.T) {
		sender := &fakeSender{}
		n := NewInstance(sender, "https://appraisal.test")
		require.NoError(t, n.AppraisalSubmitted(employee, appraiser, testAppraisal()))
		require.Len(t, sender.sent, 1)
		require.Equal(t, "manager@test.ru", sender.sent[0].to)
		require.Equal(t, "Appraisal Submitted for Review", sender.sent[0].subject)
		require.True(t, strings.Contains(sender.sent[0].message, "01.01.2025 - 31.12.2025"))
		require.True(t, strings.Contains(sender.sent[0].message, "https://appraisal.test/appraisals/a1"))
	})

	t.Run(`rejected includes comments`, func(t *testing.T) {
		sender := &fakeSender{}
		n := NewInstance(sender, "https://appraisal.test")
		require.NoError(t, n.AppraisalRejected(employee, testAppraisal()))
		require.Equal(t, "employee@test.ru", sender.sent[0].to)
		require.True(t, strings.Contains(sender.sent[0].message, "Comments: Уточните цели"))
	})

	t.Run(`no email`, func(t *testing.T) {
		sender := &fakeSender{}
		n := NewInstance(sender, "")
		require.NoError(t, n.AppraisalCompleted(dbmodels.User{Name: "Без почты"}, testAppraisal()))
		require.Empty(t, sender.sent)
	})

	t.Run(`sender error`, func(t *testing.T) {
		n := NewInstance(&fakeSender{err: errors.New("connection refused")}, "")
		err := n.AppraisalApproved(employee, testAppraisal())
		require.Error(t, err)
		require.Contains(t, err.Error(), "Appraisal Approved")
	})
}
