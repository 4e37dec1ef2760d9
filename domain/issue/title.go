package issue

import "fmt"

// Variant selects how issue bodies and titles are produced.
type Variant string

const (
	// VariantTemplate renders bodies from an external Markdown template.
	VariantTemplate Variant = "template"
	// VariantInline renders bodies from the built-in inline layout.
	VariantInline Variant = "inline"
)

// Valid returns true if the variant is known.
func (v Variant) Valid() bool {
	switch v {
	case VariantTemplate, VariantInline:
		return true
	default:
		return false
	}
}

// Title returns the tracking issue title for a tool. The title is the
// idempotency key: an open issue with exactly this title means the tool
// is already tracked.
func Title(spec ToolSpec, variant Variant) string {
	if variant == VariantInline {
		return fmt.Sprintf("Fill out data schema sheet: %s", spec.Name)
	}
	return fmt.Sprintf("%s - fill out data schema sheet", spec.Name)
}
