package services

import (
	"fmt"
	"sort"
	"time"

	"explainstudio/internal/catalog"
	"explainstudio/internal/evaluation"
	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
)

const scoringMode = "metric_execution_mvp"

// RunService scores (dataset, model, explainer, metric) combinations and
// derives the leaderboard, summary and report views from the run list.
type RunService struct {
	datasetRepo *repositories.DatasetRepository
	modelRepo   *repositories.ModelRepository
	runRepo     *repositories.RunRepository
	catalog     *catalog.Catalog
}

func NewRunService(
	datasetRepo *repositories.DatasetRepository,
	modelRepo *repositories.ModelRepository,
	runRepo *repositories.RunRepository,
	cat *catalog.Catalog,
) *RunService {
	return &RunService{
		datasetRepo: datasetRepo,
		modelRepo:   modelRepo,
		runRepo:     runRepo,
		catalog:     cat,
	}
}

type CreateRunRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	ModelID   string `json:"model_id" binding:"required"`
	Explainer string `json:"explainer" binding:"required"`
	Metric    string `json:"metric" binding:"required"`
}

type RunResults struct {
	Metric       string  `json:"metric"`
	Value        float64 `json:"value"`
	Explainer    string  `json:"explainer"`
	TargetColumn string  `json:"target_column"`
	DatasetRows  int     `json:"dataset_rows"`
	ScoringMode  string  `json:"scoring_mode"`
}

type RunResult struct {
	RunID   string           `json:"run_id"`
	Status  string           `json:"status"`
	Config  CreateRunRequest `json:"config"`
	Results RunResults       `json:"results"`
}

// Create validates the combination, scores it and appends a run record.
// Nothing is appended when any validation fails.
func (s *RunService) Create(req CreateRunRequest) (RunResult, error) {
	dataset, err := s.datasetRepo.GetByID(req.DatasetID)
	if err != nil {
		return RunResult{}, fmt.Errorf("dataset %s: %w", req.DatasetID, err)
	}
	model, err := s.modelRepo.GetByID(req.ModelID)
	if err != nil {
		return RunResult{}, fmt.Errorf("model %s: %w", req.ModelID, err)
	}
	if model.DatasetID != req.DatasetID {
		return RunResult{}, fmt.Errorf("%w: model %s was not trained on dataset %s", ErrInvalidInput, req.ModelID, req.DatasetID)
	}

	if !s.catalog.SupportsExplainer(model.TaskType, req.Explainer) {
		return RunResult{}, fmt.Errorf("%w: explainer %q does not support task type %q", ErrNotCompatible, req.Explainer, model.TaskType)
	}
	if !s.catalog.SupportsMetric(model.TaskType, req.Metric) {
		return RunResult{}, fmt.Errorf("%w: metric %q does not support task type %q", ErrNotCompatible, req.Metric, model.TaskType)
	}

	if model.Estimator == nil || len(model.FeatureColumns) == 0 {
		return RunResult{}, fmt.Errorf("%w: model %s has no fitted estimator", ErrInvalidInput, req.ModelID)
	}

	X, err := dataset.Frame.NumericMatrix(model.FeatureColumns)
	if err != nil {
		return RunResult{}, fmt.Errorf("building feature matrix: %w", err)
	}

	score := evaluation.Score(model.Estimator, model.TaskType, X, req.Explainer, req.Metric)

	record := s.runRepo.Append(models.RunRecord{
		DatasetID: req.DatasetID,
		ModelID:   req.ModelID,
		Explainer: req.Explainer,
		Metric:    req.Metric,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	})

	return RunResult{
		RunID:  record.ID,
		Status: "completed",
		Config: req,
		Results: RunResults{
			Metric:       req.Metric,
			Value:        score,
			Explainer:    req.Explainer,
			TargetColumn: model.TargetColumn,
			DatasetRows:  dataset.Rows,
			ScoringMode:  scoringMode,
		},
	}, nil
}

// List returns the runs in creation order.
func (s *RunService) List() []models.RunRecord {
	return s.runRepo.List()
}

// Clear empties the run list and reports how many records were dropped.
func (s *RunService) Clear() int {
	return s.runRepo.Clear()
}

// Summary totals the current run list.
func (s *RunService) Summary() models.RunSummary {
	return summarize(s.runRepo.List())
}

// Leaderboard groups the current run list by (explainer, metric).
func (s *RunService) Leaderboard() []models.LeaderboardRow {
	return leaderboard(s.runRepo.List())
}

// Report snapshots the run list once and derives every view from that
// snapshot.
func (s *RunService) Report() models.RunReport {
	runs := s.runRepo.List()
	return models.RunReport{
		GeneratedAt: time.Now().UTC(),
		Summary:     summarize(runs),
		Leaderboard: leaderboard(runs),
		Runs:        runs,
		Metadata: models.ReportMetadata{
			ScoringMode: scoringMode,
			StoreMode:   "in_memory",
		},
	}
}

func summarize(runs []models.RunRecord) models.RunSummary {
	summary := models.RunSummary{TotalRuns: len(runs)}
	if len(runs) == 0 {
		return summary
	}

	explainers := make(map[string]struct{})
	metrics := make(map[string]struct{})
	best := runs[0]
	latest := runs[0]
	for _, run := range runs {
		explainers[run.Explainer] = struct{}{}
		metrics[run.Metric] = struct{}{}
		if run.Score > best.Score {
			best = run
		}
		if run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}

	summary.UniqueExplainers = len(explainers)
	summary.UniqueMetrics = len(metrics)
	summary.BestRun = &models.BestRunInfo{
		RunID:     best.ID,
		Explainer: best.Explainer,
		Metric:    best.Metric,
		Score:     best.Score,
	}
	summary.LatestRun = &models.LatestRunInfo{
		RunID:     latest.ID,
		CreatedAt: latest.CreatedAt,
	}
	return summary
}

// leaderboard groups runs by (explainer, metric) and sorts the rows by
// average score descending, ties broken by explainer then metric key so the
// order is deterministic for identical input.
func leaderboard(runs []models.RunRecord) []models.LeaderboardRow {
	type group struct {
		count int
		sum   float64
		best  float64
		last  time.Time
	}
	groups := make(map[[2]string]*group)
	var keys [][2]string

	for _, run := range runs {
		key := [2]string{run.Explainer, run.Metric}
		g, ok := groups[key]
		if !ok {
			g = &group{best: run.Score, last: run.CreatedAt}
			groups[key] = g
			keys = append(keys, key)
		}
		g.count++
		g.sum += run.Score
		if run.Score > g.best {
			g.best = run.Score
		}
		if run.CreatedAt.After(g.last) {
			g.last = run.CreatedAt
		}
	}

	rows := make([]models.LeaderboardRow, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		rows = append(rows, models.LeaderboardRow{
			Explainer: key[0],
			Metric:    key[1],
			Count:     g.count,
			AvgScore:  g.sum / float64(g.count),
			BestScore: g.best,
			LastRunAt: g.last,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AvgScore != rows[j].AvgScore {
			return rows[i].AvgScore > rows[j].AvgScore
		}
		if rows[i].Explainer != rows[j].Explainer {
			return rows[i].Explainer < rows[j].Explainer
		}
		return rows[i].Metric < rows[j].Metric
	})
	return rows
}
