package memstore

import (
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
	"time"
)

type (
	appraisalRow           = dbmodels.Appraisal
	historyRow             = dbmodels.AppraisalHistory
	userRow                = dbmodels.User
	sectionRow             = dbmodels.SectionAvailability
	personalInfoRow        = dbmodels.PersonalInfo
	performancePlanningRow = dbmodels.PerformancePlanning
	midYearReviewRow       = dbmodels.MidYearReview
	endYearReviewRow       = dbmodels.EndYearReview
	annualAppraisalRow     = dbmodels.AnnualAppraisal
	finalSectionsRow       = dbmodels.FinalSections
)

// AddUser добавляет сотрудника, возвращает его ИД
func (s *Store) AddUser(rec dbmodels.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := s.users.insert("Create", &rec)
	return id
}

type appraisalStore struct {
	t *table[appraisalRow]
}

func (a appraisalStore) Create(rec dbmodels.Appraisal) (id string, err error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	if rec.Status.IsActive() {
		for _, existed := range a.t.rows {
			if existed.EmployeeID == rec.EmployeeID && existed.Status.IsActive() {
				return "", ErrUniqueViolation
			}
		}
	}
	return a.t.insert("Create", &rec)
}

func (a appraisalStore) GetByID(id string) (*dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.get("GetByID", id)
}

func (a appraisalStore) GetActiveByEmployee(employeeID string) (*dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.first("GetActiveByEmployee", func(rec appraisalRow) bool {
		return rec.EmployeeID == employeeID && rec.Status.IsActive()
	})
}

func (a appraisalStore) GetByEmployeePeriod(employeeID string, periodStart, periodEnd time.Time) (*dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.first("GetByEmployeePeriod", func(rec appraisalRow) bool {
		return rec.EmployeeID == employeeID &&
			sameDate(rec.PeriodStart, periodStart) &&
			sameDate(rec.PeriodEnd, periodEnd)
	})
}

func (a appraisalStore) GetLastByEmployee(employeeID string) (*dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.first("GetLastByEmployee", func(rec appraisalRow) bool {
		return rec.EmployeeID == employeeID
	})
}

func (a appraisalStore) ListByEmployee(employeeID string) ([]dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.find("ListByEmployee", func(rec appraisalRow) bool {
		return rec.EmployeeID == employeeID
	})
}

func (a appraisalStore) ListByAppraiser(appraiserID string, statuses []models.AppraisalStatus) ([]dbmodels.Appraisal, error) {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.find("ListByAppraiser", func(rec appraisalRow) bool {
		if rec.AppraiserID == nil || *rec.AppraiserID != appraiserID {
			return false
		}
		if len(statuses) == 0 {
			return true
		}
		for _, status := range statuses {
			if rec.Status == status {
				return true
			}
		}
		return false
	})
}

func (a appraisalStore) Update(id string, updMap map[string]interface{}) error {
	a.t.s.mu.Lock()
	defer a.t.s.mu.Unlock()
	return a.t.update("Update", id, updMap)
}

type historyStore struct {
	t *table[historyRow]
}

func (h historyStore) Create(rec dbmodels.AppraisalHistory) (id string, err error) {
	h.t.s.mu.Lock()
	defer h.t.s.mu.Unlock()
	return h.t.insert("Create", &rec)
}

func (h historyStore) List(appraisalID string) (list []dbmodels.AppraisalHistory, err error) {
	h.t.s.mu.Lock()
	defer h.t.s.mu.Unlock()
	list, err = h.t.find("List", func(rec historyRow) bool {
		return rec.AppraisalID == appraisalID
	})
	if err != nil {
		return nil, err
	}
	// история в хронологическом порядке
	for l, r := 0, len(list)-1; l < r; l, r = l+1, r-1 {
		list[l], list[r] = list[r], list[l]
	}
	return list, nil
}

type userStore struct {
	t *table[userRow]
}

func (u userStore) GetByID(id string) (*dbmodels.User, error) {
	u.t.s.mu.Lock()
	defer u.t.s.mu.Unlock()
	return u.t.get("GetByID", id)
}

func (u userStore) ListByManager(managerID string) ([]dbmodels.User, error) {
	u.t.s.mu.Lock()
	defer u.t.s.mu.Unlock()
	return u.t.find("ListByManager", func(rec userRow) bool {
		return rec.IsActive && rec.ManagerID != nil && *rec.ManagerID == managerID
	})
}

type sectionStore struct {
	t *table[sectionRow]
}

func (c sectionStore) Create(rec dbmodels.SectionAvailability) (id string, err error) {
	c.t.s.mu.Lock()
	defer c.t.s.mu.Unlock()
	return c.t.insert("Create", &rec)
}

func (c sectionStore) GetBySection(section models.StageName) (*dbmodels.SectionAvailability, error) {
	c.t.s.mu.Lock()
	defer c.t.s.mu.Unlock()
	return c.t.first("GetBySection", func(rec sectionRow) bool {
		return rec.SectionName == section
	})
}

func (c sectionStore) List() ([]dbmodels.SectionAvailability, error) {
	c.t.s.mu.Lock()
	defer c.t.s.mu.Unlock()
	list, err := c.t.find("List", func(rec sectionRow) bool { return true })
	if err != nil {
		return nil, err
	}
	for l, r := 0, len(list)-1; l < r; l, r = l+1, r-1 {
		list[l], list[r] = list[r], list[l]
	}
	return list, nil
}

func (c sectionStore) Update(id string, updMap map[string]interface{}) error {
	c.t.s.mu.Lock()
	defer c.t.s.mu.Unlock()
	return c.t.update("Update", id, updMap)
}

type stageStore[T any] struct {
	t *table[T]
}

func (st stageStore[T]) Create(rec *T) (id string, err error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.insert("Create", rec)
}

func (st stageStore[T]) GetByID(id string) (*T, error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.get("GetByID", id)
}

func (st stageStore[T]) ListByUser(userID string) ([]T, error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.find("ListByUser", func(rec T) bool {
		return stageRecord(rec).GetUserID() == userID
	})
}

func (st stageStore[T]) GetLastByUser(userID string) (*T, error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.first("GetLastByUser", func(rec T) bool {
		return stageRecord(rec).GetUserID() == userID
	})
}

func (st stageStore[T]) Update(id string, updMap map[string]interface{}) error {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.update("Update", id, updMap)
}

func (st stageStore[T]) DeleteByAppraisal(appraisalID string) (count int64, err error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.delete("DeleteByAppraisal", func(rec T) bool {
		return belongsTo(rec, appraisalID)
	})
}

func (st stageStore[T]) LinkUnassigned(userID, appraisalID string) (count int64, err error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	return st.t.updateWhere("LinkUnassigned", func(rec T) bool {
		r := stageRecord(rec)
		return r.GetUserID() == userID && r.GetAppraisalID() == nil
	}, map[string]interface{}{"AppraisalID": appraisalID})
}

func (st stageStore[T]) CountByAppraisal(appraisalID string) (count int64, err error) {
	st.t.s.mu.Lock()
	defer st.t.s.mu.Unlock()
	list, err := st.t.find("CountByAppraisal", func(rec T) bool {
		return belongsTo(rec, appraisalID)
	})
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func stageRecord(rec interface{}) dbmodels.StageRecord {
	return rec.(dbmodels.StageRecord)
}

func belongsTo(rec interface{}, appraisalID string) bool {
	id := stageRecord(rec).GetAppraisalID()
	return id != nil && *id == appraisalID
}

func sameDate(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}
