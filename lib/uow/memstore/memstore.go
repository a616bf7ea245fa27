// Package memstore хранилища в памяти с транзакциями для тестов обработчиков без БД.
package memstore

import (
	"reflect"
	"sort"
	"sync"
	"time"

	"appraisal-backend/lib/uow"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUniqueViolation повторяет поведение частичного уникального индекса по активной аттестации
var ErrUniqueViolation = errors.New("duplicate key value violates unique constraint \"uq_appraisals_active_employee\"")

type Store struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	now    time.Time
	faults map[string]error
	tables []snapshotter

	appraisals          *table[appraisalRow]
	history             *table[historyRow]
	users               *table[userRow]
	sections            *table[sectionRow]
	personalInfo        *table[personalInfoRow]
	performancePlanning *table[performancePlanningRow]
	midYearReview       *table[midYearReviewRow]
	endYearReview       *table[endYearReviewRow]
	annualAppraisal     *table[annualAppraisalRow]
	finalSections       *table[finalSectionsRow]
}

var _ uow.Provider = (*Store)(nil)

func New() *Store {
	s := &Store{
		now:    time.Now().UTC(),
		faults: map[string]error{},
	}
	s.appraisals = newTable[appraisalRow](s, "appraisals")
	s.history = newTable[historyRow](s, "appraisal_histories")
	s.users = newTable[userRow](s, "users")
	s.sections = newTable[sectionRow](s, "section_availabilities")
	s.personalInfo = newTable[personalInfoRow](s, "personal_infos")
	s.performancePlanning = newTable[performancePlanningRow](s, "performance_plannings")
	s.midYearReview = newTable[midYearReviewRow](s, "mid_year_reviews")
	s.endYearReview = newTable[endYearReviewRow](s, "end_year_reviews")
	s.annualAppraisal = newTable[annualAppraisalRow](s, "annual_appraisals")
	s.finalSections = newTable[finalSectionsRow](s, "final_sections")
	return s
}

// FailOn операция op ("<таблица>.<метод>", например "appraisals.Update") возвращает err, пока не вызван ClearFaults
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = map[string]error{}
}

func (s *Store) Stores() uow.Stores {
	return uow.Stores{
		Appraisals:          appraisalStore{t: s.appraisals},
		History:             historyStore{t: s.history},
		Users:               userStore{t: s.users},
		Sections:            sectionStore{t: s.sections},
		PersonalInfo:        stageStore[personalInfoRow]{t: s.personalInfo},
		PerformancePlanning: stageStore[performancePlanningRow]{t: s.performancePlanning},
		MidYearReview:       stageStore[midYearReviewRow]{t: s.midYearReview},
		EndYearReview:       stageStore[endYearReviewRow]{t: s.endYearReview},
		AnnualAppraisal:     stageStore[annualAppraisalRow]{t: s.annualAppraisal},
		FinalSections:       stageStore[finalSectionsRow]{t: s.finalSections},
	}
}

func (s *Store) Transaction(fn func(stores uow.Stores) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	restore := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()
	if err = fn(s.Stores()); err != nil {
		restore()
		return err
	}
	return nil
}

func (s *Store) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	restores := make([]func(), 0, len(s.tables))
	for _, t := range s.tables {
		restores = append(restores, t.snapshot())
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, r := range restores {
			r()
		}
	}
}

// tick строго возрастающее время, чтобы порядок "последней записи" не зависел от разрешения часов
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Millisecond)
	return s.now
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

type snapshotter interface {
	snapshot() func()
}

type table[T any] struct {
	s    *Store
	name string
	rows map[string]T
}

func newTable[T any](s *Store, name string) *table[T] {
	t := &table[T]{
		s:    s,
		name: name,
		rows: map[string]T{},
	}
	s.tables = append(s.tables, t)
	return t
}

func (t *table[T]) snapshot() func() {
	saved := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		saved[k] = v
	}
	return func() {
		t.rows = saved
	}
}

func (t *table[T]) insert(op string, rec *T) (string, error) {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return "", err
	}
	rv := reflect.ValueOf(rec).Elem()
	id := rv.FieldByName("ID")
	if id.String() == "" {
		id.SetString(uuid.New().String())
	}
	now := t.s.tick()
	rv.FieldByName("CreatedAt").Set(reflect.ValueOf(now))
	rv.FieldByName("UpdatedAt").Set(reflect.ValueOf(now))
	t.rows[id.String()] = *rec
	return id.String(), nil
}

func (t *table[T]) get(op, id string) (*T, error) {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return nil, err
	}
	rec, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// find записи по условию, новые первыми
func (t *table[T]) find(op string, match func(rec T) bool) ([]T, error) {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return nil, err
	}
	list := []T{}
	for _, rec := range t.rows {
		if match(rec) {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(a, b int) bool {
		return createdAt(list[a]).After(createdAt(list[b]))
	})
	return list, nil
}

func (t *table[T]) first(op string, match func(rec T) bool) (*T, error) {
	list, err := t.find(op, match)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (t *table[T]) update(op, id string, updMap map[string]interface{}) error {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return err
	}
	rec, ok := t.rows[id]
	if !ok {
		return nil
	}
	if err := applyUpdates(&rec, updMap); err != nil {
		return errors.Wrapf(err, "%s: ошибка обновления записи %s", t.name, id)
	}
	reflect.ValueOf(&rec).Elem().FieldByName("UpdatedAt").Set(reflect.ValueOf(t.s.tick()))
	t.rows[id] = rec
	return nil
}

func (t *table[T]) updateWhere(op string, match func(rec T) bool, updMap map[string]interface{}) (int64, error) {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return 0, err
	}
	var count int64
	for id, rec := range t.rows {
		if !match(rec) {
			continue
		}
		if err := applyUpdates(&rec, updMap); err != nil {
			return count, errors.Wrapf(err, "%s: ошибка обновления записи %s", t.name, id)
		}
		reflect.ValueOf(&rec).Elem().FieldByName("UpdatedAt").Set(reflect.ValueOf(t.s.tick()))
		t.rows[id] = rec
		count++
	}
	return count, nil
}

func (t *table[T]) delete(op string, match func(rec T) bool) (int64, error) {
	if err := t.s.fault(t.name + "." + op); err != nil {
		return 0, err
	}
	var count int64
	for id, rec := range t.rows {
		if match(rec) {
			delete(t.rows, id)
			count++
		}
	}
	return count, nil
}

func createdAt(rec interface{}) time.Time {
	return reflect.ValueOf(rec).FieldByName("CreatedAt").Interface().(time.Time)
}

// applyUpdates применяет карту "имя поля -> значение" так же, как gorm Updates с именами полей структуры
func applyUpdates(rec interface{}, updMap map[string]interface{}) error {
	rv := reflect.ValueOf(rec).Elem()
	for name, value := range updMap {
		field := rv.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return errors.Errorf("неизвестное поле %s", name)
		}
		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		val := reflect.ValueOf(value)
		switch {
		case val.Type().AssignableTo(field.Type()):
			field.Set(val)
		case val.Kind() == field.Kind() && val.Type().ConvertibleTo(field.Type()):
			field.Set(val.Convert(field.Type()))
		case field.Kind() == reflect.Pointer && val.Type().AssignableTo(field.Type().Elem()):
			ptr := reflect.New(field.Type().Elem())
			ptr.Elem().Set(val)
			field.Set(ptr)
		case val.Kind() == reflect.Pointer && val.Type().Elem().AssignableTo(field.Type()):
			if val.IsNil() {
				field.Set(reflect.Zero(field.Type()))
			} else {
				field.Set(val.Elem())
			}
		default:
			return errors.Errorf("поле %s: тип %s не приводится к %s", name, val.Type(), field.Type())
		}
	}
	return nil
}
