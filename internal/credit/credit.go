// Package credit holds the CRediT (Contributor Roles Taxonomy) catalog.
// Source: https://credit.niso.org/
package credit

// RoleCategory groups roles for display purposes.
type RoleCategory string

const (
	CategoryConceptualization RoleCategory = "conceptualization"
	CategoryExecution         RoleCategory = "execution"
	CategoryWriting           RoleCategory = "writing"
	CategorySupport           RoleCategory = "support"
)

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    RoleCategory `json:"category,omitempty"`
}

var roles = []Role{
	{
		ID:          "conceptualization",
		Name:        "Conceptualization",
		Description: "Ideas; formulation or evolution of overarching research goals and aims.",
		Category:    CategoryConceptualization,
	},
	{
		ID:          "data_curation",
		Name:        "Data Curation",
		Description: "Management activities to annotate (produce metadata), scrub data and maintain research data for initial use and later re-use.",
		Category:    CategoryExecution,
	},
	{
		ID:          "formal_analysis",
		Name:        "Formal Analysis",
		Description: "Application of statistical, mathematical, computational, or other formal techniques to analyze or synthesize study data.",
		Category:    CategoryExecution,
	},
	{
		ID:          "funding_acquisition",
		Name:        "Funding Acquisition",
		Description: "Acquisition of the financial support for the project leading to this publication.",
		Category:    CategorySupport,
	},
	{
		ID:          "investigation",
		Name:        "Investigation",
		Description: "Conducting a research and investigation process, specifically performing the experiments, or data/evidence collection.",
		Category:    CategoryExecution,
	},
	{
		ID:          "methodology",
		Name:        "Methodology",
		Description: "Development or design of methodology; creation of models.",
		Category:    CategoryConceptualization,
	},
	{
		ID:          "project_administration",
		Name:        "Project Administration",
		Description: "Management and coordination responsibility for the research activity planning and execution.",
		Category:    CategorySupport,
	},
	{
		ID:          "resources",
		Name:        "Resources",
		Description: "Provision of study materials, reagents, materials, patients, laboratory samples, animals, instrumentation, computing resources, or other analysis tools.",
		Category:    CategorySupport,
	},
	{
		ID:          "software",
		Name:        "Software",
		Description: "Programming, software development; designing computer programs; implementation of the computer code and supporting algorithms; testing of existing code components.",
		Category:    CategoryExecution,
	},
	{
		ID:          "supervision",
		Name:        "Supervision",
		Description: "Oversight and leadership responsibility for the research activity planning and execution, including mentorship external to the core team.",
		Category:    CategorySupport,
	},
	{
		ID:          "validation",
		Name:        "Validation",
		Description: "Verification, whether as a part of the activity or separate, of the overall replication/reproducibility of results/experiments and other research outputs.",
		Category:    CategoryExecution,
	},
	{
		ID:          "visualization",
		Name:        "Visualization",
		Description: "Preparation, creation and/or presentation of the published work, specifically visualization/data presentation.",
		Category:    CategoryWriting,
	},
	{
		ID:          "writing_original_draft",
		Name:        "Writing - Original Draft",
		Description: "Preparation, creation and/or presentation of the published work, specifically writing the initial draft (including substantive translation).",
		Category:    CategoryWriting,
	},
	{
		ID:          "writing_review_editing",
		Name:        "Writing - Review & Editing",
		Description: "Preparation, creation and/or presentation of the published work by those from the original research group, specifically critical review, commentary or revision – including pre- or post-publication stages.",
		Category:    CategoryWriting,
	},
}

var rolesByID = func() map[string]Role {
	m := make(map[string]Role, len(roles))
	for _, r := range roles {
		m[r.ID] = r
	}
	return m
}()

// Roles returns the full catalog in a fixed order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Lookup returns the role for the given id.
func Lookup(id string) (Role, bool) {
	r, ok := rolesByID[id]
	return r, ok
}

// IsValid reports whether id is a known CRediT role id.
func IsValid(id string) bool {
	_, ok := rolesByID[id]
	return ok
}

// InvalidIDs returns the ids in the list that are not in the catalog.
func InvalidIDs(ids []string) []string {
	var invalid []string
	for _, id := range ids {
		if !IsValid(id) {
			invalid = append(invalid, id)
		}
	}
	return invalid
}

// DisplayNames maps role ids to their display names, keeping unknown ids
// as-is so older records still render.
func DisplayNames(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if r, ok := rolesByID[id]; ok {
			names[i] = r.Name
		} else {
			names[i] = id
		}
	}
	return names
}
