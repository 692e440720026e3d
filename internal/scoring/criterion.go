package scoring

// CriterionType identifies the answer shape of a rubric criterion.
type CriterionType string

const (
	TypeScale       CriterionType = "scale"
	TypePassFail    CriterionType = "pass_fail"
	TypeChecklist   CriterionType = "checklist"
	TypeText        CriterionType = "text"
	TypeDropdown    CriterionType = "dropdown"
	TypeMultiSelect CriterionType = "multi_select"
	TypeRatingStars CriterionType = "rating_stars"
	TypePercentage  CriterionType = "percentage"
)

// Valid reports whether t is one of the eight supported criterion types.
func (t CriterionType) Valid() bool {
	switch t {
	case TypeScale, TypePassFail, TypeChecklist, TypeText,
		TypeDropdown, TypeMultiSelect, TypeRatingStars, TypePercentage:
		return true
	}
	return false
}

// ChecklistMode selects how checked checklist items aggregate.
type ChecklistMode string

const (
	ChecklistSum         ChecklistMode = "sum"
	ChecklistAverage     ChecklistMode = "average"
	ChecklistAllRequired ChecklistMode = "all_required"
)

// SelectMode selects how multi-select option scores aggregate.
type SelectMode string

const (
	SelectSum     SelectMode = "sum"
	SelectAverage SelectMode = "average"
)

type ChecklistItem struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

// Option is one selectable answer for dropdown and multi-select criteria.
type Option struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// CriterionConfig carries the type-specific configuration. Only the fields
// relevant to the criterion's type are populated; the rest stay zero.
type CriterionConfig struct {
	MinValue          float64         `json:"min_value,omitempty"`
	MaxValue          float64         `json:"max_value,omitempty"`
	PassValue         float64         `json:"pass_value,omitempty"`
	FailValue         float64         `json:"fail_value,omitempty"`
	ChecklistItems    []ChecklistItem `json:"checklist_items,omitempty"`
	ChecklistMode     ChecklistMode   `json:"checklist_mode,omitempty"`
	Options           []Option        `json:"options,omitempty"`
	MultiSelectMode   SelectMode      `json:"multi_select_mode,omitempty"`
	MaxStars          float64         `json:"max_stars,omitempty"`
	AllowHalfStars    bool            `json:"allow_half_stars,omitempty"`
	AutoFail          bool            `json:"auto_fail,omitempty"`
	AutoFailThreshold float64         `json:"auto_fail_threshold,omitempty"`
}

// Criterion is one rubric item, immutable for the lifetime of an evaluation.
type Criterion struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     CriterionType   `json:"criteria_type"`
	Config   CriterionConfig `json:"config"`
	Weight   float64         `json:"weight"`
	MaxScore float64         `json:"max_score"`
	GroupID  string          `json:"group_id,omitempty"`
}

// CriteriaGroup is a named partition of criteria used for presentation and
// sub-aggregation. It does not alter the global weighted-sum invariant.
type CriteriaGroup struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// ScoringMethod is a template-level aggregation strategy.
type ScoringMethod string

const (
	MethodWeighted      ScoringMethod = "weighted"
	MethodSimpleAverage ScoringMethod = "simple_average"
	MethodPassFail      ScoringMethod = "pass_fail"
	MethodPoints        ScoringMethod = "points"
	MethodCustomFormula ScoringMethod = "custom_formula"
)

// TemplateSnapshot is the frozen, owned copy of a template captured at
// session-creation time. Later edits to the live template never touch it.
type TemplateSnapshot struct {
	TemplateID      string          `json:"template_id"`
	TemplateVersion int             `json:"template_version"`
	Name            string          `json:"name"`
	ScoringMethod   ScoringMethod   `json:"scoring_method"`
	PassThreshold   float64         `json:"pass_threshold"`
	Criteria        []Criterion     `json:"criteria"`
	Groups          []CriteriaGroup `json:"groups,omitempty"`
}

// CriterionByID returns the snapshot criterion with the given ID, or false.
func (s *TemplateSnapshot) CriterionByID(id string) (Criterion, bool) {
	for _, c := range s.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}
