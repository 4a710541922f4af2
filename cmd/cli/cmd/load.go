// Package cmd - initiative file loading
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"portfolio-regret/core/types"
	"portfolio-regret/internal/errors"
)

// initiativeRecord is the on-disk shape of one initiative
type initiativeRecord struct {
	ID         string  `json:"id" yaml:"id"`
	Cost       float64 `json:"cost" yaml:"cost"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Best       float64 `json:"r_best" yaml:"r_best"`
	Median     float64 `json:"r_median" yaml:"r_median"`
	Worst      float64 `json:"r_worst" yaml:"r_worst"`
}

// loadInitiatives reads a JSON or YAML initiatives file (by extension)
func loadInitiatives(path string) ([]types.Initiative, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing("failed to read initiatives file", err)
	}

	var records []initiativeRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, errors.Parsing("failed to parse initiatives file", err)
	}

	seen := make(map[string]bool, len(records))
	initiatives := make([]types.Initiative, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, errors.Input("initiative with empty id")
		}
		if seen[r.ID] {
			return nil, errors.Inputf("duplicate initiative id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Cost < 0 {
			return nil, errors.Inputf("initiative %q has negative cost %v", r.ID, r.Cost)
		}
		initiatives = append(initiatives, types.Initiative{
			ID:         r.ID,
			Cost:       decimal.NewFromFloat(r.Cost),
			Confidence: r.Confidence,
			Best:       decimal.NewFromFloat(r.Best),
			Median:     decimal.NewFromFloat(r.Median),
			Worst:      decimal.NewFromFloat(r.Worst),
		})
	}
	return initiatives, nil
}
