package notify

import (
	"fmt"

	"appraisal-backend/lib/smtp"
	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider почтовые уведомления по этапам аттестации
type Provider interface {
	AppraisalSubmitted(employee, appraiser dbmodels.User, appraisal dbmodels.Appraisal) error
	AppraisalApproved(employee dbmodels.User, appraisal dbmodels.Appraisal) error
	AppraisalRejected(employee dbmodels.User, appraisal dbmodels.Appraisal) error
	AppraisalCompleted(employee dbmodels.User, appraisal dbmodels.Appraisal) error
}

var Instance Provider

func NewHandler(appURL string) {
	Instance = NewInstance(smtp.Instance, appURL)
}

func NewInstance(sender smtp.Provider, appURL string) Provider {
	return impl{
		sender: sender,
		appURL: appURL,
	}
}

type impl struct {
	sender smtp.Provider
	appURL string
}

func (i impl) AppraisalSubmitted(employee, appraiser dbmodels.User, appraisal dbmodels.Appraisal) error {
	message := fmt.Sprintf("Dear %s,\r\n\r\n%s has submitted the performance appraisal for the period %s.\r\n"+
		"Please review it: %s",
		appraiser.Name, employee.Name, formatPeriod(appraisal), i.link(appraisal))
	return i.send(appraiser, "Appraisal Submitted for Review", message)
}

func (i impl) AppraisalApproved(employee dbmodels.User, appraisal dbmodels.Appraisal) error {
	message := fmt.Sprintf("Dear %s,\r\n\r\nYour performance appraisal for the period %s has been approved by your appraiser.\r\n%s\r\n%s",
		employee.Name, formatPeriod(appraisal), comments(appraisal), i.link(appraisal))
	return i.send(employee, "Appraisal Approved", message)
}

func (i impl) AppraisalRejected(employee dbmodels.User, appraisal dbmodels.Appraisal) error {
	message := fmt.Sprintf("Dear %s,\r\n\r\nYour performance appraisal for the period %s has been returned by your appraiser.\r\n%s\r\n%s",
		employee.Name, formatPeriod(appraisal), comments(appraisal), i.link(appraisal))
	return i.send(employee, "Appraisal Rejected", message)
}

func (i impl) AppraisalCompleted(employee dbmodels.User, appraisal dbmodels.Appraisal) error {
	message := fmt.Sprintf("Dear %s,\r\n\r\nYour performance appraisal for the period %s has been completed.\r\n%s",
		employee.Name, formatPeriod(appraisal), i.link(appraisal))
	return i.send(employee, "Appraisal Completed", message)
}

func (i impl) send(to dbmodels.User, subject, message string) error {
	if i.sender == nil {
		return nil
	}
	if to.Email == "" {
		log.WithField("user_id", to.ID).Warn("уведомление не отправлено: не указан email")
		return nil
	}
	if err := i.sender.SendEMail(to.Email, subject, message); err != nil {
		return errors.Wrapf(err, "ошибка отправки уведомления \"%s\"", subject)
	}
	return nil
}

func (i impl) link(appraisal dbmodels.Appraisal) string {
	return fmt.Sprintf("%s/appraisals/%s", i.appURL, appraisal.ID)
}

func formatPeriod(appraisal dbmodels.Appraisal) string {
	return fmt.Sprintf("%s - %s", appraisal.PeriodStart.Format("02.01.2006"), appraisal.PeriodEnd.Format("02.01.2006"))
}

func comments(appraisal dbmodels.Appraisal) string {
	if appraisal.ManagerComments == "" {
		return ""
	}
	return "Comments: " + appraisal.ManagerComments + "\r\n"
}
