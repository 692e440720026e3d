// Package scoring implements the rubric scoring engine: per-type raw score
// extraction, normalization to 0-100, weighted composite aggregation and
// auto-fail evaluation. Everything in this package is pure and safe to call
// from any goroutine.
package scoring

import (
	"encoding/json"
	"math"
	"strings"
)

// CriterionScore is the computed result for a single criterion answer.
type CriterionScore struct {
	CriterionID       string
	IsNA              bool
	Raw               float64
	Normalized        float64
	Weighted          float64
	Malformed         bool
	AutoFailTriggered bool
}

type rawScoreFunc func(value any, cfg CriterionConfig, maxScore float64) (float64, bool)

// rawScoreFuncs dispatches raw-score computation by criterion type. A table
// keeps each rule independently testable and avoids type switches spread
// across the engine.
var rawScoreFuncs = map[CriterionType]rawScoreFunc{
	TypeScale:       scaleRaw,
	TypePassFail:    passFailRaw,
	TypeChecklist:   checklistRaw,
	TypeText:        textRaw,
	TypeDropdown:    dropdownRaw,
	TypeMultiSelect: multiSelectRaw,
	TypeRatingStars: ratingStarsRaw,
	TypePercentage:  percentageRaw,
}

// ComputeRawScore converts a type-shaped answer value into a raw score on
// [0,maxScore]. The second return is true when the value was malformed or
// mismatched for the type; malformed values degrade to 0 instead of failing
// the evaluation.
func ComputeRawScore(typ CriterionType, value any, cfg CriterionConfig, maxScore float64) (float64, bool) {
	fn, ok := rawScoreFuncs[typ]
	if !ok {
		return 0, true
	}
	return fn(value, cfg, maxScore)
}

// NormalizeScore maps a raw score onto the 0-100 scale.
func NormalizeScore(raw, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return (raw / maxScore) * 100
}

// WeightedScore is the criterion's contribution to the composite.
func WeightedScore(normalized, weight float64) float64 {
	return normalized * (weight / 100)
}

// EvaluateAutoFail reports whether the criterion's normalized score trips its
// configured auto-fail threshold.
func EvaluateAutoFail(c Criterion, normalized float64) bool {
	return c.Config.AutoFail && normalized < c.Config.AutoFailThreshold
}

// ScoreCriterion computes the full per-criterion result for one answer.
func ScoreCriterion(c Criterion, value any, isNA bool) CriterionScore {
	s := CriterionScore{CriterionID: c.ID, IsNA: isNA}
	if isNA {
		return s
	}
	s.Raw, s.Malformed = ComputeRawScore(c.Type, value, c.Config, c.MaxScore)
	s.Normalized = NormalizeScore(s.Raw, c.MaxScore)
	s.Weighted = WeightedScore(s.Normalized, c.Weight)
	s.AutoFailTriggered = EvaluateAutoFail(c, s.Normalized)
	return s
}

// ComputeComposite aggregates per-criterion scores into a 0-100 percentage.
// Criteria marked N/A are excluded from both numerator and denominator so an
// N/A answer never depresses the composite. The result is rounded to the
// nearest whole percent.
func ComputeComposite(scores []CriterionScore, criteria []Criterion) float64 {
	weights := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		weights[c.ID] = c.Weight
	}

	var sumWeighted, sumWeight float64
	for _, s := range scores {
		if s.IsNA {
			continue
		}
		w, ok := weights[s.CriterionID]
		if !ok {
			continue
		}
		sumWeighted += s.Weighted
		sumWeight += w
	}

	if sumWeight <= 0 {
		return 0
	}
	return math.Round(sumWeighted / sumWeight * 100)
}

// AnyAutoFail reports whether any computed score carries the auto-fail
// trigger. The override is evaluated after all scores are computed so that a
// late failing criterion is never masked by earlier passing ones.
func AnyAutoFail(scores []CriterionScore) bool {
	for _, s := range scores {
		if s.AutoFailTriggered {
			return true
		}
	}
	return false
}

// PassStatus applies the template pass threshold and the auto-fail override.
func PassStatus(composite, threshold float64, autoFailTriggered bool) bool {
	if autoFailTriggered {
		return false
	}
	return composite >= threshold
}

func scaleRaw(value any, cfg CriterionConfig, maxScore float64) (float64, bool) {
	v, ok := asFloat(value)
	if !ok {
		return 0, true
	}
	span := cfg.MaxValue - cfg.MinValue
	if span <= 0 {
		// Zero or inverted range is undefined; degrade rather than divide.
		return 0, false
	}
	if v < cfg.MinValue {
		v = cfg.MinValue
	}
	if v > cfg.MaxValue {
		v = cfg.MaxValue
	}
	return (v - cfg.MinValue) / span * maxScore, false
}

func passFailRaw(value any, cfg CriterionConfig, _ float64) (float64, bool) {
	pass, ok := asBool(value)
	if !ok {
		return 0, true
	}
	if pass {
		return cfg.PassValue, false
	}
	return cfg.FailValue, false
}

func checklistRaw(value any, cfg CriterionConfig, maxScore float64) (float64, bool) {
	checked, ok := asStringSet(value)
	if !ok {
		return 0, true
	}
	total := len(cfg.ChecklistItems)
	if total == 0 {
		return 0, false
	}

	var sum float64
	allChecked := true
	for _, item := range cfg.ChecklistItems {
		if checked[strings.ToLower(item.Label)] {
			sum += item.Points
		} else {
			allChecked = false
		}
	}

	switch cfg.ChecklistMode {
	case ChecklistAverage:
		// Unchecked items count as zero but still dilute the average.
		return sum / float64(total), false
	case ChecklistAllRequired:
		if allChecked {
			return maxScore, false
		}
		return 0, false
	default: // ChecklistSum
		return sum, false
	}
}

func textRaw(value any, _ CriterionConfig, _ float64) (float64, bool) {
	// Narrative-only: contributes zero to the numeric composite.
	if _, ok := value.(string); !ok && value != nil {
		return 0, true
	}
	return 0, false
}

func dropdownRaw(value any, cfg CriterionConfig, _ float64) (float64, bool) {
	label, ok := value.(string)
	if !ok {
		return 0, true
	}
	for _, opt := range cfg.Options {
		if strings.EqualFold(opt.Label, label) {
			return opt.Score, false
		}
	}
	return 0, false
}

func multiSelectRaw(value any, cfg CriterionConfig, _ float64) (float64, bool) {
	selected, ok := asStringSet(value)
	if !ok {
		return 0, true
	}
	if len(selected) == 0 {
		return 0, false
	}

	var sum float64
	var matched int
	for _, opt := range cfg.Options {
		if selected[strings.ToLower(opt.Label)] {
			sum += opt.Score
			matched++
		}
	}

	if cfg.MultiSelectMode == SelectAverage {
		if matched == 0 {
			return 0, false
		}
		return sum / float64(matched), false
	}
	return sum, false
}

func ratingStarsRaw(value any, cfg CriterionConfig, maxScore float64) (float64, bool) {
	stars, ok := asFloat(value)
	if !ok {
		return 0, true
	}
	if cfg.MaxStars <= 0 {
		return 0, false
	}
	if cfg.AllowHalfStars {
		stars = math.Round(stars*2) / 2
	} else {
		stars = math.Round(stars)
	}
	if stars < 0 {
		stars = 0
	}
	if stars > cfg.MaxStars {
		stars = cfg.MaxStars
	}
	return (stars / cfg.MaxStars) * maxScore, false
}

func percentageRaw(value any, _ CriterionConfig, maxScore float64) (float64, bool) {
	v, ok := asFloat(value)
	if !ok {
		return 0, true
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return (v / 100) * maxScore, false
}

// asFloat accepts the numeric shapes a decoded JSON payload can carry.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asBool accepts a JSON bool or the "pass"/"fail" strings some providers emit.
func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "pass", "true", "yes":
			return true, true
		case "fail", "false", "no":
			return false, true
		}
	}
	return false, false
}

// asStringSet lowercases a JSON string array into a membership set.
func asStringSet(value any) (map[string]bool, bool) {
	set := make(map[string]bool)
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			set[strings.ToLower(s)] = true
		}
		return set, true
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			set[strings.ToLower(s)] = true
		}
		return set, true
	case nil:
		return set, true
	default:
		return nil, false
	}
}
