package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AnalysisConfig carries the engine's tuning knobs. They are passed into the
// analysis usecase explicitly instead of being read as ambient globals, so
// tests can exercise boundary values.
type AnalysisConfig struct {
	// A transcript below both thresholds is not worth a judge call.
	MinCharThreshold int
	MinWordThreshold int

	// Answer segments shorter than this are scored zero without a call.
	MinAnswerLength int

	// Blend weights for the final score. Per-question evidence dominates;
	// the split has no documented derivation, so it stays configurable.
	HolisticWeight float64
	QuestionWeight float64

	HolisticModel string
	QuestionModel string

	// The holistic call gets a materially shorter timeout than the overall
	// request so the per-question calls still have room to run.
	HolisticTimeout time.Duration
	QuestionTimeout time.Duration

	HolisticTemperature float32
	QuestionTemperature float32

	// Now is injectable so re-analysis can be made deterministic in tests.
	Now func() time.Time
}

var (
	analysisConfig *AnalysisConfig
	analysisOnce   sync.Once
)

func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		MinCharThreshold:    40,
		MinWordThreshold:    6,
		MinAnswerLength:     10,
		HolisticWeight:      0.3,
		QuestionWeight:      0.7,
		HolisticModel:       "gemini-2.5-flash",
		QuestionModel:       "gemini-2.5-flash",
		HolisticTimeout:     60 * time.Second,
		QuestionTimeout:     45 * time.Second,
		HolisticTemperature: 0.4,
		QuestionTemperature: 0.3,
		Now:                 time.Now,
	}
}

func LoadAnalysisConfig() *AnalysisConfig {
	analysisOnce.Do(func() {
		cfg := DefaultAnalysisConfig()
		if model := os.Getenv("ANALYSIS_HOLISTIC_MODEL"); model != "" {
			cfg.HolisticModel = model
		}
		if model := os.Getenv("ANALYSIS_QUESTION_MODEL"); model != "" {
			cfg.QuestionModel = model
		}
		if raw := os.Getenv("ANALYSIS_HOLISTIC_WEIGHT"); raw != "" {
			if weight, err := strconv.ParseFloat(raw, 64); err == nil && weight >= 0 && weight <= 1 {
				cfg.HolisticWeight = weight
				cfg.QuestionWeight = 1 - weight
			}
		}
		analysisConfig = cfg
	})
	return analysisConfig
}
