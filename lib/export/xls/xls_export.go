package xlsexport

import (
	dbmodels "appraisal-backend/models/db"
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportAppraisal(rec dbmodels.Appraisal) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	sheetSummary = "Аттестация"
	tableWidth   = 5
)

func (i impl) ExportAppraisal(rec dbmodels.Appraisal) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	if err := f.SetColWidth(sheet, "A", "E", 30); err != nil {
		return nil, errors.Wrap(err, "ошибка настройки ширины колонок в xlsx")
	}
	writers := []func(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error){
		writeSummary,
		writeEmployee,
		writePlanning,
		writeMidYear,
		writeEndYear,
		writeCompetencies,
		writeFinal,
	}
	row := 0
	var err error
	for _, write := range writers {
		row, err = write(f, sheet, rec, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования данных аттестации в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetSummary); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func writeSummary(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeHeader(f, sheet, row, []string{"Период", "Статус", "Решение руководителя", "Отправлена", "Завершена"})
	if err != nil {
		return row, err
	}
	row, err = writeRow(f, sheet, row,
		fmt.Sprintf("%s - %s", rec.PeriodStart.Format("02.01.2006"), rec.PeriodEnd.Format("02.01.2006")),
		string(rec.Status),
		string(rec.ManagerStatus),
		formatTime(rec.SubmittedAt),
		formatTime(rec.CompletedAt))
	if err != nil {
		return row, err
	}
	return row, applyDataCellStyle(f, sheet, 1, row, tableWidth, row)
}

func writeEmployee(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Сотрудник")
	if err != nil {
		return row, err
	}
	info := rec.EmployeeInfo
	pairs := [][2]string{
		{"ФИО", fmt.Sprintf("%s %s %s %s", info.Title, info.FirstName, info.OtherNames, info.Surname)},
		{"Должность", info.PresentJobTitle},
		{"Грейд", info.GradeSalary},
		{"Подразделение", info.Division},
		{"Дата назначения", info.DateOfAppointment},
		{"Оценивающий", fmt.Sprintf("%s %s %s (%s)", rec.AppraiserInfo.Title, rec.AppraiserInfo.FirstName, rec.AppraiserInfo.Surname, rec.AppraiserInfo.Position)},
	}
	start := row + 1
	for _, pair := range pairs {
		if row, err = writeRow(f, sheet, row, pair[0], pair[1]); err != nil {
			return row, err
		}
	}
	for _, training := range rec.TrainingReceived {
		if row, err = writeRow(f, sheet, row, "Обучение", training.Programme, training.Institution, training.Date); err != nil {
			return row, err
		}
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}

func writePlanning(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Планирование")
	if err != nil {
		return row, err
	}
	if row, err = writeHeader(f, sheet, row, []string{"Ключевая область", "Цели", "Ресурсы", "Вес"}); err != nil {
		return row, err
	}
	start := row + 1
	for _, kra := range rec.KeyResultAreas {
		if row, err = writeRow(f, sheet, row, kra.Area, kra.Targets, kra.ResourcesRequired, kra.Weight); err != nil {
			return row, err
		}
	}
	for _, kc := range rec.KeyCompetencies {
		if row, err = writeRow(f, sheet, row, "Компетенция", kc.Competency, kc.Description); err != nil {
			return row, err
		}
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}

func writeMidYear(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Промежуточная оценка")
	if err != nil {
		return row, err
	}
	if row, err = writeHeader(f, sheet, row, []string{"Тип", "Описание", "Прогресс", "Примечания"}); err != nil {
		return row, err
	}
	start := row + 1
	for _, item := range rec.MidYearReview.Targets {
		if row, err = writeRow(f, sheet, row, "Цель", item.Description, item.Progress, item.Remarks); err != nil {
			return row, err
		}
	}
	for _, item := range rec.MidYearReview.Competencies {
		if row, err = writeRow(f, sheet, row, "Компетенция", item.Description, item.Progress, item.Remarks); err != nil {
			return row, err
		}
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}

func writeEndYear(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Годовая оценка")
	if err != nil {
		return row, err
	}
	if row, err = writeHeader(f, sheet, row, []string{"Цель", "Оценка выполнения", "Вес", "Балл", "Комментарий"}); err != nil {
		return row, err
	}
	start := row + 1
	for _, target := range rec.EndOfYearReview.Targets {
		row, err = writeRow(f, sheet, row, target.Target, target.PerformanceAssessment, target.WeightOfTarget, target.Score, target.Comments)
		if err != nil {
			return row, err
		}
	}
	calc := rec.EndOfYearReview.Calculations
	if row, err = writeRow(f, sheet, row, "Итого", calc.TotalScore, "Средний", calc.AverageScore, calc.WeightedScore); err != nil {
		return row, err
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}

func writeCompetencies(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Компетенции")
	if err != nil {
		return row, err
	}
	if row, err = writeHeader(f, sheet, row, []string{"Группа", "Компетенция", "Балл", "Комментарий"}); err != nil {
		return row, err
	}
	start := row + 1
	for _, item := range rec.CoreCompetencies {
		if row, err = writeRow(f, sheet, row, "Основные", item.Name, item.Score, item.Comments); err != nil {
			return row, err
		}
	}
	for _, item := range rec.NonCoreCompetencies {
		if row, err = writeRow(f, sheet, row, "Дополнительные", item.Name, item.Score, item.Comments); err != nil {
			return row, err
		}
	}
	overall := rec.OverallAssessment
	row, err = writeRow(f, sheet, row, "Итог", overall.OverallTotal, overall.OverallScorePercentage, overall.OverallRating)
	if err != nil {
		return row, err
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}

func writeFinal(f *excelize.File, sheet string, rec dbmodels.Appraisal, row int) (int, error) {
	row, err := writeTitle(f, sheet, row, tableWidth, "Итоговый раздел")
	if err != nil {
		return row, err
	}
	pairs := [][2]string{
		{"Комментарий оценивающего", rec.AppraiserComments},
		{"Развитие карьеры", rec.CareerDevelopmentComments},
		{"Решение", string(rec.AssessmentDecision)},
		{"Комментарий сотрудника", rec.AppraiseeComments},
		{"Комментарий руководителя", rec.ManagerComments},
	}
	start := row + 1
	for _, pair := range pairs {
		if row, err = writeRow(f, sheet, row, pair[0], pair[1]); err != nil {
			return row, err
		}
	}
	return row, applyDataCellStyle(f, sheet, 1, start, tableWidth, row)
}
