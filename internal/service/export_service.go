package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fyp-admin/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("当前学期暂无学生记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 按当前学期的入学年月筛选学生，导出为 .xlsx 名册
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出当前学期学生名册为 Excel
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportRoster ──────────────────────

func (s *exportService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 解析当前学期
	terms, err := s.repo.Term.ListCurrent(ctx)
	if err != nil {
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, "", err
	}
	if len(terms) == 0 {
		return nil, "", ErrNoCurrentTerm
	}
	if len(terms) > 1 {
		s.logger.Error("当前学期不变式被破坏", zap.Int("count", len(terms)))
		return nil, "", ErrCurrentTermConflict
	}
	term := terms[0]

	// 2. 查询该学期入学的学生
	students, err := s.repo.Student.ListByIntake(ctx, term.StartDate.Year(), int(term.StartDate.Month()))
	if err != nil {
		s.logger.Error("查询学生名册失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学生名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "C", 32)
	f.SetColWidth(sheetName, "D", "D", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 学生名册", term.Label))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "学号")
	f.SetCellValue(sheetName, "B2", "姓名")
	f.SetCellValue(sheetName, "C2", "邮箱")
	f.SetCellValue(sheetName, "D2", "入学年月")

	// 数据行
	row := 3
	for i := range students {
		st := &students[i]
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), st.MatricNo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), st.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), st.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("%d-%02d", st.IntakeYear, st.IntakeMonth))
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学生名册_%s.xlsx", term.Label)
	return buf, filename, nil
}
