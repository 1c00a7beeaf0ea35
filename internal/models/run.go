package models

import "time"

// RunRecord is one scored (dataset, model, explainer, metric) evaluation.
// The run list is append-only; the only deletion is the bulk clear.
type RunRecord struct {
	ID        string    `json:"run_id"`
	DatasetID string    `json:"dataset_id"`
	ModelID   string    `json:"model_id"`
	Explainer string    `json:"explainer"`
	Metric    string    `json:"metric"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardRow aggregates the runs sharing one (explainer, metric) pair.
// Rows are derived from the run list on every request, never stored.
type LeaderboardRow struct {
	Explainer string    `json:"explainer"`
	Metric    string    `json:"metric"`
	Count     int       `json:"count"`
	AvgScore  float64   `json:"avg_score"`
	BestScore float64   `json:"best_score"`
	LastRunAt time.Time `json:"last_run_at"`
}

type BestRunInfo struct {
	RunID     string  `json:"run_id"`
	Explainer string  `json:"explainer"`
	Metric    string  `json:"metric"`
	Score     float64 `json:"score"`
}

type LatestRunInfo struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RunSummary totals the run list. BestRun and LatestRun are null while the
// list is empty.
type RunSummary struct {
	TotalRuns        int            `json:"total_runs"`
	UniqueExplainers int            `json:"unique_explainers"`
	UniqueMetrics    int            `json:"unique_metrics"`
	BestRun          *BestRunInfo   `json:"best_run"`
	LatestRun        *LatestRunInfo `json:"latest_run"`
}

type ReportMetadata struct {
	ScoringMode string `json:"scoring_mode"`
	StoreMode   string `json:"store_mode"`
}

// RunReport is the exportable snapshot: summary, leaderboard and the full
// run list as of GeneratedAt.
type RunReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Summary     RunSummary       `json:"summary"`
	Leaderboard []LeaderboardRow `json:"leaderboard"`
	Runs        []RunRecord      `json:"runs"`
	Metadata    ReportMetadata   `json:"metadata"`
}
