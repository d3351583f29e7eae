package dto

// ── 评估模块 DTO ──

// RubricView 单条评分准则视图（含有序等级带）
type RubricView struct {
	ID          string            `json:"id"`
	Criteria    string            `json:"criteria"`
	Component   string            `json:"component"`
	MaxScore    int               `json:"max_score"`
	BandOrder   []string          `json:"band_order"`   // 等级带标签，从低到高
	ScoreRanges map[string]string `json:"score_ranges"` // 标签 → 描述
}

// RubricTreeResponse 评分准则树响应
// 任何失败都返回空 rubrics、零权重加 message 的统一形态（HTTP 200）
type RubricTreeResponse struct {
	Rubrics              []RubricView `json:"rubrics"`
	DeliverableWeightage float64      `json:"deliverable_weightage"`
	Message              string       `json:"message,omitempty"`
}

// WeightedScoreResponse 加权得分响应
type WeightedScoreResponse struct {
	SubmissionID         string  `json:"submission_id"`
	RawTotal             float64 `json:"raw_total"`             // 已评准则原始分之和
	MaxTotal             float64 `json:"max_total"`             // 对应准则满分之和
	DeliverableScore     float64 `json:"deliverable_score"`     // 归一化得分（0..1）
	DeliverableWeightage float64 `json:"deliverable_weightage"`
	WeightedScore        float64 `json:"weighted_score"` // 归一化得分 × 权重
}
