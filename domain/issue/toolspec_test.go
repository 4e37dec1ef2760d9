package issue

import "testing"

func TestToolSpec_DerivedNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		schema     string
		wantBranch string
		wantSlug   string
	}{
		{
			name:       "yaml suffix",
			schema:     "sienna_data_model.yaml",
			wantBranch: "sienna_data_model",
			wantSlug:   "sienna-data-model",
		},
		{
			name:       "no suffix passes through",
			schema:     "cim_entso_e.yml",
			wantBranch: "cim_entso_e.yml",
			wantSlug:   "cim-entso-e.yml",
		},
		{
			name:       "only the trailing suffix is removed",
			schema:     "a.yaml_b.yaml",
			wantBranch: "a.yaml_b",
			wantSlug:   "a.yaml-b",
		},
		{
			name:       "empty",
			schema:     "",
			wantBranch: "",
			wantSlug:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := ToolSpec{Name: "X", Schema: tt.schema}
			if got := spec.BranchName(); got != tt.wantBranch {
				t.Errorf("BranchName() = %q, want %q", got, tt.wantBranch)
			}
			if got := spec.ToolSlug(); got != tt.wantSlug {
				t.Errorf("ToolSlug() = %q, want %q", got, tt.wantSlug)
			}
		})
	}
}

func TestToolSlug(t *testing.T) {
	t.Parallel()

	if got := ToolSlug("sienna_data_model"); got != "sienna-data-model" {
		t.Errorf("ToolSlug() = %q, want sienna-data-model", got)
	}
	if got := BranchName("sienna_data_model.yaml"); got != "sienna_data_model" {
		t.Errorf("BranchName() = %q, want sienna_data_model", got)
	}
}

func TestToolSpec_SchemaURL(t *testing.T) {
	t.Parallel()

	spec := ToolSpec{Name: "GenX Data Model", Schema: "genx_data_model.yaml"}

	if got := spec.SchemaPath(); got != "data_schemas/genx_data_model.yaml" {
		t.Errorf("SchemaPath() = %q", got)
	}

	want := "https://github.com/G-PST/data-schema-excercise/blob/main/data_schemas/genx_data_model.yaml"
	for _, base := range []string{
		"https://github.com/G-PST/data-schema-excercise",
		"https://github.com/G-PST/data-schema-excercise/",
	} {
		if got := spec.SchemaURL(base); got != want {
			t.Errorf("SchemaURL(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestToolSpec_Matches(t *testing.T) {
	t.Parallel()

	spec := ToolSpec{Name: "PyPSA Data Model", Schema: "pypsa_data_model.yaml"}

	for _, key := range []string{"PyPSA Data Model", "pypsa_data_model.yaml", "pypsa_data_model"} {
		if !spec.Matches(key) {
			t.Errorf("Matches(%q) = false, want true", key)
		}
	}
	if spec.Matches("pypsa data model") {
		t.Error("Matches should be case-sensitive")
	}
}
