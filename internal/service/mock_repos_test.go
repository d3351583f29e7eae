package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/internal/repository"
)

// ── Mock TermRepository ──

type mockTermRepo struct {
	terms   map[string]*model.Term
	seq     int
	failOps map[string]error // 操作名 → 注入错误
}

func newMockTermRepo() *mockTermRepo {
	return &mockTermRepo{
		terms:   make(map[string]*model.Term),
		failOps: make(map[string]error),
	}
}

func (m *mockTermRepo) Create(_ context.Context, term *model.Term) error {
	if err := m.failOps["Create"]; err != nil {
		return err
	}
	if term.TermID == "" {
		m.seq++
		term.TermID = fmt.Sprintf("term-%03d", m.seq)
	}
	m.terms[term.TermID] = term
	return nil
}

func (m *mockTermRepo) GetByID(_ context.Context, id string) (*model.Term, error) {
	if t, ok := m.terms[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermRepo) ListCurrent(_ context.Context) ([]model.Term, error) {
	if err := m.failOps["ListCurrent"]; err != nil {
		return nil, err
	}
	var result []model.Term
	for _, t := range m.terms {
		if t.IsCurrent {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTermRepo) List(_ context.Context) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTermRepo) DemoteCurrent(_ context.Context) error {
	if err := m.failOps["DemoteCurrent"]; err != nil {
		return err
	}
	for _, t := range m.terms {
		t.IsCurrent = false
	}
	return nil
}

func (m *mockTermRepo) Delete(_ context.Context, id string) error {
	delete(m.terms, id)
	return nil
}

// currentCount 返回 is_current = true 的行数（测试断言用）
func (m *mockTermRepo) currentCount() int {
	n := 0
	for _, t := range m.terms {
		if t.IsCurrent {
			n++
		}
	}
	return n
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student // key: matric_no
	seq      int
	failOps  map[string]error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students: make(map[string]*model.Student),
		failOps:  make(map[string]error),
	}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if err := m.failOps["Create"]; err != nil {
		return err
	}
	// 唯一约束模拟：学号或邮箱已占用则报错（并发竞态场景）
	for _, s := range m.students {
		if s.MatricNo == student.MatricNo || strings.EqualFold(s.Email, student.Email) {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("stu-%03d", m.seq)
	}
	m.students[student.MatricNo] = student
	return nil
}

func (m *mockStudentRepo) GetByMatricNo(_ context.Context, matricNo string) (*model.Student, error) {
	if s, ok := m.students[matricNo]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ExistsByMatricNoOrEmail(_ context.Context, matricNo, email string) (bool, error) {
	if err := m.failOps["ExistsByMatricNoOrEmail"]; err != nil {
		return false, err
	}
	for _, s := range m.students {
		if s.MatricNo == matricNo || strings.EqualFold(s.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) List(_ context.Context, filters *repository.StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var all []model.Student
	for _, s := range m.students {
		if filters != nil {
			if filters.IntakeYear > 0 && s.IntakeYear != filters.IntakeYear {
				continue
			}
			if filters.IntakeMonth > 0 && s.IntakeMonth != filters.IntakeMonth {
				continue
			}
			if filters.Keyword != "" &&
				!strings.Contains(s.FullName, filters.Keyword) &&
				!strings.Contains(s.MatricNo, filters.Keyword) &&
				!strings.Contains(s.Email, filters.Keyword) {
				continue
			}
		}
		all = append(all, *s)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStudentRepo) ListByIntake(_ context.Context, year, month int) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.IntakeYear == year && s.IntakeMonth == month {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// ── Mock LecturerRepository ──

type mockLecturerRepo struct {
	lecturers map[string]*model.Lecturer
	seq       int
}

func newMockLecturerRepo() *mockLecturerRepo {
	return &mockLecturerRepo{lecturers: make(map[string]*model.Lecturer)}
}

func (m *mockLecturerRepo) Create(_ context.Context, lecturer *model.Lecturer) error {
	if lecturer.LecturerID == "" {
		m.seq++
		lecturer.LecturerID = fmt.Sprintf("lec-%03d", m.seq)
	}
	m.lecturers[lecturer.LecturerID] = lecturer
	return nil
}

func (m *mockLecturerRepo) GetByID(_ context.Context, id string) (*model.Lecturer, error) {
	if l, ok := m.lecturers[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLecturerRepo) GetByEmail(_ context.Context, email string) (*model.Lecturer, error) {
	for _, l := range m.lecturers {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLecturerRepo) List(_ context.Context, offset, limit int) ([]model.Lecturer, int64, error) {
	var all []model.Lecturer
	for _, l := range m.lecturers {
		all = append(all, *l)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockLecturerRepo) Update(_ context.Context, lecturer *model.Lecturer) error {
	m.lecturers[lecturer.LecturerID] = lecturer
	return nil
}

func (m *mockLecturerRepo) Delete(_ context.Context, id string) error {
	delete(m.lecturers, id)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	seq           int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{announcements: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		m.seq++
		a.AnnouncementID = fmt.Sprintf("ann-%03d", m.seq)
	}
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context, offset, limit int) ([]model.Announcement, int64, error) {
	var all []model.Announcement
	for _, a := range m.announcements {
		all = append(all, *a)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.announcements, id)
	return nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock RubricRepository ──

type mockRubricRepo struct {
	rubrics map[string][]model.Rubric    // deliverable_id → rubrics
	bands   map[string][]model.ScoreBand // rubric_id → bands（按 band_order 升序存放）
	failOps map[string]error
}

func newMockRubricRepo() *mockRubricRepo {
	return &mockRubricRepo{
		rubrics: make(map[string][]model.Rubric),
		bands:   make(map[string][]model.ScoreBand),
		failOps: make(map[string]error),
	}
}

func (m *mockRubricRepo) ListByDeliverable(_ context.Context, deliverableID string) ([]model.Rubric, error) {
	if err := m.failOps["ListByDeliverable"]; err != nil {
		return nil, err
	}
	return m.rubrics[deliverableID], nil
}

func (m *mockRubricRepo) ListScoreBands(_ context.Context, rubricID string) ([]model.ScoreBand, error) {
	if err := m.failOps["ListScoreBands"]; err != nil {
		return nil, err
	}
	return m.bands[rubricID], nil
}

// ── Mock ScoreRepository ──

type mockScoreRepo struct {
	scores map[string][]model.Score // submission_id → scores
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{scores: make(map[string][]model.Score)}
}

func (m *mockScoreRepo) ListBySubmission(_ context.Context, submissionID string) ([]model.Score, error) {
	return m.scores[submissionID], nil
}

// ── 测试用聚合构造 ──

type mockRepos struct {
	term         *mockTermRepo
	student      *mockStudentRepo
	user         *mockUserRepo
	lecturer     *mockLecturerRepo
	announcement *mockAnnouncementRepo
	submission   *mockSubmissionRepo
	rubric       *mockRubricRepo
	score        *mockScoreRepo
}

// newMockRepository 构造全 mock 的 Repository 聚合。
// db 为空时 BeginTx 返回 nil 事务，Service 层按无事务降级执行。
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		term:         newMockTermRepo(),
		student:      newMockStudentRepo(),
		user:         newMockUserRepo(),
		lecturer:     newMockLecturerRepo(),
		announcement: newMockAnnouncementRepo(),
		submission:   newMockSubmissionRepo(),
		rubric:       newMockRubricRepo(),
		score:        newMockScoreRepo(),
	}
	repo := &repository.Repository{
		User:         m.user,
		Term:         m.term,
		Student:      m.student,
		Lecturer:     m.lecturer,
		Announcement: m.announcement,
		Submission:   m.submission,
		Rubric:       m.rubric,
		Score:        m.score,
	}
	return repo, m
}
