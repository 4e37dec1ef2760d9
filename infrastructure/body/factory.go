package body

import (
	"fmt"

	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// NewRenderer builds the renderer selected by cfg. The template variant
// reads its template file here, once, so a missing file fails the run
// before anything is created.
func NewRenderer(cfg *config.SyncConfig) (Renderer, error) {
	switch v := cfg.Variant(); v {
	case issue.VariantTemplate:
		content, err := LoadTemplate(cfg.Body.TemplatePath)
		if err != nil {
			return nil, err
		}
		return NewTemplateRenderer(content, cfg.BaseURL), nil
	case issue.VariantInline:
		return &InlineRenderer{
			BaseURL:         cfg.BaseURL,
			InstructionsURL: cfg.InstructionsLink(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", issue.ErrRender, v)
	}
}
