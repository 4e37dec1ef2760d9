package issue

import "testing"

func TestTitle(t *testing.T) {
	t.Parallel()

	spec := ToolSpec{Name: "Sienna Data Model", Schema: "sienna_data_model.yaml"}

	tests := []struct {
		variant Variant
		want    string
	}{
		{VariantTemplate, "Sienna Data Model - fill out data schema sheet"},
		{VariantInline, "Fill out data schema sheet: Sienna Data Model"},
		{"", "Sienna Data Model - fill out data schema sheet"},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			t.Parallel()
			if got := Title(spec, tt.variant); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
			// Same input, same title.
			if Title(spec, tt.variant) != Title(ToolSpec{Name: spec.Name, Schema: spec.Schema}, tt.variant) {
				t.Error("Title() is not deterministic")
			}
		})
	}
}

func TestVariant_Valid(t *testing.T) {
	t.Parallel()

	if !VariantTemplate.Valid() || !VariantInline.Valid() {
		t.Error("known variants should be valid")
	}
	if Variant("markdown").Valid() {
		t.Error("unknown variant should be invalid")
	}
}

func TestReport_Count(t *testing.T) {
	t.Parallel()

	r := Report{Results: []Result{
		{Outcome: OutcomeCreated},
		{Outcome: OutcomeSkipped},
		{Outcome: OutcomeCreated},
	}}

	if got := r.Count(OutcomeCreated); got != 2 {
		t.Errorf("Count(created) = %d, want 2", got)
	}
	if got := r.Count(OutcomeFailed); got != 0 {
		t.Errorf("Count(failed) = %d, want 0", got)
	}
}
