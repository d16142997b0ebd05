package reconcile

import (
	"github.com/jonathan/career-platform/internal/types"
)

// Selection maps a field key to whether the user wants the proposed value
// applied. The default state pre-selects only fields whose proposal is
// non-empty and differs from the stored value; users toggle freely before
// applying.
type Selection map[Field]bool

// Suggestion is one row of the review panel: a field with a usable proposal,
// its default checkbox state, and the set diff for list fields.
type Suggestion struct {
	Field    Field `json:"field"`
	Selected bool  `json:"selected"`
	Diff     *Diff `json:"diff,omitempty"`
}

// Reconciler drives diffing and patch building over a configured field set.
type Reconciler struct {
	fields []FieldSpec
}

// NewSeekerReconciler returns the job-seeker variant.
func NewSeekerReconciler() *Reconciler {
	return &Reconciler{fields: baseFields()}
}

// NewRecruiterReconciler returns the recruiter variant, which additionally
// reconciles the opaque education and experience arrays.
func NewRecruiterReconciler() *Reconciler {
	return &Reconciler{fields: recruiterFields()}
}

// ForRole picks the reconciler variant for a role. Recruiters get the
// extended field set; everyone else gets the base set.
func ForRole(role types.Role) *Reconciler {
	if role == types.RoleRecruiter {
		return NewRecruiterReconciler()
	}
	return NewSeekerReconciler()
}

// Fields returns the keys this variant reconciles, in display order.
func (rc *Reconciler) Fields() []Field {
	keys := make([]Field, 0, len(rc.fields))
	for _, spec := range rc.fields {
		keys = append(keys, spec.Key)
	}
	return keys
}

// DefaultSelection computes the initial checkbox state: a field is selected
// iff its proposal is non-empty and differs from the stored value.
func (rc *Reconciler) DefaultSelection(r *types.ParsedResume, p *types.Profile) Selection {
	sel := make(Selection, len(rc.fields))
	for _, spec := range rc.fields {
		sel[spec.Key] = spec.HasProposed(r, p) && spec.Differs(r, p)
	}
	return sel
}

// Suggestions returns one entry per field that has a usable proposal,
// carrying the default selection and, for list fields, the added/removed/
// unchanged summary.
func (rc *Reconciler) Suggestions(r *types.ParsedResume, p *types.Profile) []Suggestion {
	out := make([]Suggestion, 0, len(rc.fields))
	for _, spec := range rc.fields {
		if !spec.HasProposed(r, p) {
			continue
		}
		s := Suggestion{
			Field:    spec.Key,
			Selected: spec.Differs(r, p),
		}
		if spec.ListDiff != nil {
			diff := spec.ListDiff(r, p)
			s.Diff = &diff
		}
		out = append(out, s)
	}
	return out
}

// BuildPatch builds the merge patch from the selected fields. Fields whose
// proposal is empty contribute nothing even when selected.
func (rc *Reconciler) BuildPatch(r *types.ParsedResume, p *types.Profile, sel Selection) *types.ProfilePatch {
	patch := &types.ProfilePatch{}
	for _, spec := range rc.fields {
		if !sel[spec.Key] || !spec.HasProposed(r, p) {
			continue
		}
		spec.Apply(patch, r, p)
	}
	return patch
}
