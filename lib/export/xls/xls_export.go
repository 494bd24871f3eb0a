package xlsexport

import (
	"bytes"
	skillsgapapimodels "hr-onboarding-backend/models/api/skills-gap"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportSkillGaps(report skillsgapapimodels.Report) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const skillGapSheet = "Нехватка навыков"

var skillGapHeaders = []string{"Навык", "Сотрудников", "Требуется", "Нехватка", "Приоритет"}

func (i impl) ExportSkillGaps(report skillsgapapimodels.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, skillGapHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if report.IsEmpty() {
		if err = writeColumn(f, sheet, 1, row+1, "Нет данных о навыках сотрудников"); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	} else {
		_, err = writeSkillGapData(f, sheet, report.Entries, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, skillGapSheet)
	return f.WriteToBuffer()
}

func writeSkillGapData(f *excelize.File, sheet string, list []skillsgapapimodels.SkillGapEntry, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(skillGapHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{item.Skill, item.Available, item.Required, item.Gap, item.Priority.ToHuman()}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
