// Package catalog holds the static explainer/metric compatibility table.
// The table ships inside the binary; there is no registry to query and no
// mutation path. Compatibility is keyed by the model's task type.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"explainstudio/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one explainer or metric and the task types it applies to.
type Entry struct {
	Key         string            `yaml:"key" json:"key"`
	Label       string            `yaml:"label" json:"label"`
	Description string            `yaml:"description" json:"description"`
	TaskTypes   []models.TaskType `yaml:"task_types" json:"task_types"`
}

func (e Entry) supports(task models.TaskType) bool {
	for _, t := range e.TaskTypes {
		if t == task {
			return true
		}
	}
	return false
}

type Catalog struct {
	Explainers []Entry `yaml:"explainers" json:"explainers"`
	Metrics    []Entry `yaml:"metrics" json:"metrics"`
}

// Load parses the embedded table. Called once at startup.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse embedded yaml: %w", err)
	}
	if len(c.Explainers) == 0 || len(c.Metrics) == 0 {
		return nil, fmt.Errorf("catalog: embedded yaml has %d explainers and %d metrics", len(c.Explainers), len(c.Metrics))
	}
	return &c, nil
}

// ExplainersFor returns the explainer entries applicable to task, in
// catalog order.
func (c *Catalog) ExplainersFor(task models.TaskType) []Entry {
	return filterByTask(c.Explainers, task)
}

// MetricsFor returns the metric entries applicable to task, in catalog
// order.
func (c *Catalog) MetricsFor(task models.TaskType) []Entry {
	return filterByTask(c.Metrics, task)
}

// SupportsExplainer reports whether key names an explainer applicable to
// task. Unknown keys are simply unsupported.
func (c *Catalog) SupportsExplainer(task models.TaskType, key string) bool {
	return supportsKey(c.Explainers, task, key)
}

// SupportsMetric reports whether key names a metric applicable to task.
func (c *Catalog) SupportsMetric(task models.TaskType, key string) bool {
	return supportsKey(c.Metrics, task, key)
}

func filterByTask(entries []Entry, task models.TaskType) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.supports(task) {
			out = append(out, e)
		}
	}
	return out
}

func supportsKey(entries []Entry, task models.TaskType, key string) bool {
	for _, e := range entries {
		if e.Key == key {
			return e.supports(task)
		}
	}
	return false
}
