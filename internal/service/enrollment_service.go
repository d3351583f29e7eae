package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/internal/repository"
)

// ── 批量导入模块业务错误 ──

var (
	ErrIngestBadFormat = errors.New("仅支持 CSV 或 XLSX 格式的上传文件")
	ErrIngestBadHeader = errors.New("表头必须依次为 Student ID, Full Name, Email, Password")
	ErrIngestParseFail = errors.New("无法解析上传文件")
)

// 导入表头的规范形态（小写、去首尾空白、内部空白折叠为单个空格）
var expectedHeader = []string{"student id", "full name", "email", "password"}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// 密码最低长度
const minPasswordLen = 8

// IngestRow 上传文件解析后的单行数据
// Row 为原始文件中的物理行号（表头为第 1 行，数据行从 2 起，空行也占号）
type IngestRow struct {
	Row      int
	MatricNo string
	FullName string
	Email    string
	Password string
}

// EnrollmentService 批量导入业务接口
//
// 语义要点：
//   - 结构性前置条件（当前学期存在、表头合法）任一失败则整批中止，零行处理
//   - 数据行彼此独立：单行失败不影响其他行，也不回滚已接受的行（行级原子，非批级原子）
//   - 中途超时已提交的行保持不变；重传同一文件时已入库的行会被查重捕获
type EnrollmentService interface {
	// ParseUpload 按文件扩展名解析 CSV / XLSX，校验表头并返回数据行
	ParseUpload(filename string, reader io.Reader) ([]IngestRow, error)
	// Ingest 逐行校验、查重、写入，返回汇总结果与按行号排序的消息列表
	Ingest(ctx context.Context, rows []IngestRow, uploaderID string) (*dto.IngestOutcomeResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── ParseUpload ──────────────────────

func (s *enrollmentService) ParseUpload(filename string, reader io.Reader) ([]IngestRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return s.parseCSV(reader)
	case ".xlsx":
		return s.parseXLSX(reader)
	default:
		return nil, ErrIngestBadFormat
	}
}

func (s *enrollmentService) parseCSV(reader io.Reader) ([]IngestRow, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1 // 列数不齐的行交由逐行校验处理

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestParseFail, err)
	}
	if len(records) == 0 {
		return nil, ErrIngestBadHeader
	}

	if !headerMatches(records[0]) {
		return nil, ErrIngestBadHeader
	}

	return buildRows(records[1:]), nil
}

func (s *enrollmentService) parseXLSX(reader io.Reader) ([]IngestRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestParseFail, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestParseFail, err)
	}
	if len(records) == 0 {
		return nil, ErrIngestBadHeader
	}

	if !headerMatches(records[0]) {
		return nil, ErrIngestBadHeader
	}

	return buildRows(records[1:]), nil
}

// headerMatches 校验表头：去空白、折叠内部空白、小写、剔除空列后
// 必须与期望的 4 列完全一致（顺序不可变，不允许缺列或多列）
func headerMatches(header []string) bool {
	var normalized []string
	for _, cell := range header {
		c := strings.ToLower(strings.Join(strings.Fields(cell), " "))
		if c == "" {
			continue
		}
		normalized = append(normalized, c)
	}

	if len(normalized) != len(expectedHeader) {
		return false
	}
	for i, want := range expectedHeader {
		if normalized[i] != want {
			return false
		}
	}
	return true
}

// buildRows 将数据行转为 IngestRow；全空行静默跳过但保留行号计数
func buildRows(records [][]string) []IngestRow {
	var rows []IngestRow
	for i, record := range records {
		row := IngestRow{Row: i + 2} // 第 1 行为表头

		if len(record) > 0 {
			row.MatricNo = strings.TrimSpace(record[0])
		}
		if len(record) > 1 {
			row.FullName = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			row.Email = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			row.Password = strings.TrimSpace(record[3])
		}

		if row.MatricNo == "" && row.FullName == "" && row.Email == "" && row.Password == "" {
			continue
		}

		rows = append(rows, row)
	}
	return rows
}

// ────────────────────── Ingest ──────────────────────

// rowBucket 单行处理的归属桶
type rowBucket int

const (
	bucketAccepted rowBucket = iota
	bucketDuplicate
	bucketRejected
)

// rowResult 单行处理结果，聚合为 IngestOutcomeResponse
type rowResult struct {
	bucket  rowBucket
	message string
}

func (s *enrollmentService) Ingest(ctx context.Context, rows []IngestRow, uploaderID string) (*dto.IngestOutcomeResponse, error) {
	// 前置条件：必须存在唯一的当前学期
	terms, err := s.repo.Term.ListCurrent(ctx)
	if err != nil {
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}
	if len(terms) == 0 {
		return nil, ErrNoCurrentTerm
	}
	if len(terms) > 1 {
		s.logger.Error("当前学期不变式被破坏", zap.Int("count", len(terms)))
		return nil, ErrCurrentTermConflict
	}
	term := terms[0]

	// 入学年月取自当前学期开始日期，而非上传文件
	intakeYear := term.StartDate.Year()
	intakeMonth := int(term.StartDate.Month())

	outcome := &dto.IngestOutcomeResponse{Messages: []string{}}
	seenEmails := make(map[string]bool, len(rows))

	for _, row := range rows {
		res := s.processRow(ctx, row, seenEmails, intakeYear, intakeMonth, uploaderID)

		switch res.bucket {
		case bucketAccepted:
			outcome.Accepted++
		case bucketDuplicate:
			outcome.Duplicate++
		case bucketRejected:
			outcome.Rejected++
		}
		outcome.Messages = append(outcome.Messages, res.message)
	}

	s.logger.Info("批量导入完成",
		zap.Int("accepted", outcome.Accepted),
		zap.Int("duplicate", outcome.Duplicate),
		zap.Int("rejected", outcome.Rejected),
		zap.String("uploader", uploaderID))

	return outcome, nil
}

// processRow 处理单行：校验 → 批内查重 → 库内查重 → 哈希 → 写入。
// 每行独立提交，任何失败只影响本行。
func (s *enrollmentService) processRow(
	ctx context.Context,
	row IngestRow,
	seenEmails map[string]bool,
	intakeYear, intakeMonth int,
	uploaderID string,
) rowResult {
	// 必填字段
	if row.MatricNo == "" || row.FullName == "" || row.Email == "" || row.Password == "" {
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：必填字段为空", row.Row)}
	}

	// 邮箱格式
	if !emailPattern.MatchString(row.Email) {
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：邮箱格式无效（%s）", row.Row, row.Email)}
	}

	// 密码强度
	if len(row.Password) < minPasswordLen {
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：密码长度不足 %d 位", row.Row, minPasswordLen)}
	}

	// 批内查重（按邮箱）
	emailKey := strings.ToLower(row.Email)
	if seenEmails[emailKey] {
		return rowResult{bucketDuplicate, fmt.Sprintf("第 %d 行：邮箱在本次上传中重复（%s）", row.Row, row.Email)}
	}
	seenEmails[emailKey] = true

	// 库内查重（学号或邮箱任一命中即视为重复）
	exists, err := s.repo.Student.ExistsByMatricNoOrEmail(ctx, row.MatricNo, row.Email)
	if err != nil {
		s.logger.Error("学生查重失败", zap.Int("row", row.Row), zap.Error(err))
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：查重失败（%v）", row.Row, err)}
	}
	if exists {
		return rowResult{bucketDuplicate, fmt.Sprintf("第 %d 行：学号或邮箱已存在（%s），跳过", row.Row, row.MatricNo)}
	}

	// 密码不可逆哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Int("row", row.Row), zap.Error(err))
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：密码哈希失败", row.Row)}
	}

	student := &model.Student{
		MatricNo:     row.MatricNo,
		FullName:     row.FullName,
		Email:        row.Email,
		PasswordHash: string(hash),
		IntakeYear:   intakeYear,
		IntakeMonth:  intakeMonth,
	}
	student.CreatedBy = &uploaderID
	student.UpdatedBy = &uploaderID

	// 行级原子写入；失败（如并发重复插入竞态）计为 rejected，批次继续
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("学生写入失败", zap.Int("row", row.Row), zap.Error(err))
		return rowResult{bucketRejected, fmt.Sprintf("第 %d 行：写入失败（%v）", row.Row, err)}
	}

	return rowResult{bucketAccepted, fmt.Sprintf("第 %d 行：导入成功（%s）", row.Row, row.MatricNo)}
}
