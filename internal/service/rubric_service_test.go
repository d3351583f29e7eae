package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"fyp-admin/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestRubricService() (RubricService, *mockRepos) {
	repo, m := newMockRepository()
	svc := NewRubricService(repo, zap.NewNop())
	return svc, m
}

// seedRubricTree 写入一个交付物（权重 0.3）+ 2 准则 × 5 等级带 + 1 个提交
func seedRubricTree(m *mockRepos) {
	deliverable := &model.Deliverable{
		DeliverableID: "del-001",
		Name:          "期末报告",
		Weightage:     0.3,
	}
	m.submission.submissions["sub-001"] = &model.Submission{
		SubmissionID:  "sub-001",
		StudentID:     "stu-001",
		DeliverableID: "del-001",
		Deliverable:   deliverable,
	}

	labels := []string{"0-2", "3-4", "5-6", "7-8", "9-10"}
	for r := 1; r <= 2; r++ {
		rubricID := fmt.Sprintf("rub-%03d", r)
		m.rubric.rubrics["del-001"] = append(m.rubric.rubrics["del-001"], model.Rubric{
			RubricID:      rubricID,
			DeliverableID: "del-001",
			Criteria:      fmt.Sprintf("准则%d", r),
			Component:     "报告",
			MaxScore:      10,
		})
		for i, label := range labels {
			m.rubric.bands[rubricID] = append(m.rubric.bands[rubricID], model.ScoreBand{
				ScoreBandID: fmt.Sprintf("band-%d-%d", r, i),
				RubricID:    rubricID,
				RangeLabel:  label,
				Description: fmt.Sprintf("等级描述 %s", label),
				BandOrder:   i + 1,
			})
		}
	}
}

// ── LoadTree 测试 ──

func TestRubricService_LoadTree_Success(t *testing.T) {
	svc, m := setupTestRubricService()
	seedRubricTree(m)

	tree, err := svc.LoadTree(context.Background(), "sub-001")
	if err != nil {
		t.Fatalf("LoadTree 应成功: %v", err)
	}
	if tree.DeliverableWeightage != 0.3 {
		t.Errorf("期望权重 0.3，实际=%v", tree.DeliverableWeightage)
	}
	if len(tree.Rubrics) != 2 {
		t.Fatalf("期望 2 条准则，实际=%d", len(tree.Rubrics))
	}
	for _, rubric := range tree.Rubrics {
		if len(rubric.ScoreRanges) != 5 {
			t.Errorf("准则 %s 期望 5 个等级带，实际=%d", rubric.ID, len(rubric.ScoreRanges))
		}
		if len(rubric.BandOrder) != 5 {
			t.Fatalf("准则 %s 期望 5 个有序标签，实际=%d", rubric.ID, len(rubric.BandOrder))
		}
		// 等级带按 band_order 从低到高
		want := []string{"0-2", "3-4", "5-6", "7-8", "9-10"}
		for i, label := range want {
			if rubric.BandOrder[i] != label {
				t.Errorf("准则 %s 位置 %d 期望标签 %s，实际=%s", rubric.ID, i, label, rubric.BandOrder[i])
			}
		}
	}
}

func TestRubricService_LoadTree_SubmissionNotFound(t *testing.T) {
	svc, _ := setupTestRubricService()

	_, err := svc.LoadTree(context.Background(), "nonexistent")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("期望 ErrSubmissionNotFound，实际: %v", err)
	}
}

func TestRubricService_LoadTree_DeliverableMissing(t *testing.T) {
	svc, m := setupTestRubricService()
	m.submission.submissions["sub-002"] = &model.Submission{
		SubmissionID:  "sub-002",
		StudentID:     "stu-001",
		DeliverableID: "del-gone",
	}

	_, err := svc.LoadTree(context.Background(), "sub-002")
	if !errors.Is(err, ErrDeliverableNotLinked) {
		t.Errorf("期望 ErrDeliverableNotLinked，实际: %v", err)
	}
}

func TestRubricService_LoadTree_StoreFault(t *testing.T) {
	svc, m := setupTestRubricService()
	seedRubricTree(m)
	m.rubric.failOps["ListScoreBands"] = errors.New("connection reset")

	_, err := svc.LoadTree(context.Background(), "sub-001")
	if !errors.Is(err, ErrRubricTreeLoadFailure) {
		t.Errorf("期望 ErrRubricTreeLoadFailure，实际: %v", err)
	}
}

// ── WeightedScore 测试 ──

func TestRubricService_WeightedScore_Success(t *testing.T) {
	svc, m := setupTestRubricService()
	seedRubricTree(m)
	m.score.scores["sub-001"] = []model.Score{
		{ScoreID: "sc-1", SubmissionID: "sub-001", RubricID: "rub-001", Awarded: 8},
		{ScoreID: "sc-2", SubmissionID: "sub-001", RubricID: "rub-002", Awarded: 6},
	}

	result, err := svc.WeightedScore(context.Background(), "sub-001")
	if err != nil {
		t.Fatalf("WeightedScore 应成功: %v", err)
	}
	if result.RawTotal != 14 {
		t.Errorf("期望原始分 14，实际=%v", result.RawTotal)
	}
	if result.MaxTotal != 20 {
		t.Errorf("期望满分 20，实际=%v", result.MaxTotal)
	}
	if result.DeliverableScore != 0.7 {
		t.Errorf("期望归一化得分 0.7，实际=%v", result.DeliverableScore)
	}
	// 0.7 × 0.3
	if diff := result.WeightedScore - 0.21; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("期望加权得分 0.21，实际=%v", result.WeightedScore)
	}
}

// 部分评分：未评准则不计入分母
func TestRubricService_WeightedScore_PartialScores(t *testing.T) {
	svc, m := setupTestRubricService()
	seedRubricTree(m)
	m.score.scores["sub-001"] = []model.Score{
		{ScoreID: "sc-1", SubmissionID: "sub-001", RubricID: "rub-001", Awarded: 5},
	}

	result, err := svc.WeightedScore(context.Background(), "sub-001")
	if err != nil {
		t.Fatalf("WeightedScore 应成功: %v", err)
	}
	if result.MaxTotal != 10 {
		t.Errorf("只评 1 条准则时分母应为 10，实际=%v", result.MaxTotal)
	}
	if result.DeliverableScore != 0.5 {
		t.Errorf("期望归一化得分 0.5，实际=%v", result.DeliverableScore)
	}
}

// 无任何评分时各项均为 0，不出现除零
func TestRubricService_WeightedScore_NoScores(t *testing.T) {
	svc, m := setupTestRubricService()
	seedRubricTree(m)

	result, err := svc.WeightedScore(context.Background(), "sub-001")
	if err != nil {
		t.Fatalf("WeightedScore 应成功: %v", err)
	}
	if result.RawTotal != 0 || result.DeliverableScore != 0 || result.WeightedScore != 0 {
		t.Errorf("无评分时各项应为 0，实际=%+v", result)
	}
}

func TestRubricService_WeightedScore_NotFound(t *testing.T) {
	svc, _ := setupTestRubricService()

	_, err := svc.WeightedScore(context.Background(), "nonexistent")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("期望 ErrSubmissionNotFound，实际: %v", err)
	}
}
