package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
	"gopkg.in/yaml.v3"
)

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadPlanFile reads a plan document. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func loadPlanFile(path string) (*domain.ProjectPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return decodePlan(data, isYAMLPath(path))
}

func decodePlan(data []byte, asYAML bool) (*domain.ProjectPlan, error) {
	var plan domain.ProjectPlan
	if asYAML {
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing plan YAML: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&plan); err != nil {
			return nil, fmt.Errorf("parsing plan JSON: %w", err)
		}
	}
	if len(plan.BudgetBreakdown) == 0 && len(plan.MaterialQuantities) == 0 {
		return nil, fmt.Errorf("plan document has no budget or materials")
	}
	return &plan, nil
}

// savePlanFile writes p as JSON or YAML depending on the extension.
func savePlanFile(path string, p *domain.ProjectPlan) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
