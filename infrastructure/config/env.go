package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/schemaissues/domain/config"
)

// envPattern matches $$, ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envPattern = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// envExpander expands environment references in configuration text.
type envExpander struct {
	// strict fails if a plain ${VAR} reference is not set.
	strict bool
	// lookup resolves variables; os.LookupEnv when nil.
	lookup func(string) (string, bool)
}

// Expand expands environment references in input.
// Supported forms:
//   - ${VAR} - the value of VAR, empty when unset (an error in strict mode)
//   - ${VAR:-default} - VAR, or default when unset or empty
//   - ${VAR:?message} - VAR, or an error carrying message when unset or empty
//   - $$ - a literal dollar sign
func (e *envExpander) Expand(input string) (string, error) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	result := envPattern.ReplaceAllStringFunc(input, func(match string) string {
		if match == "$$" {
			return "$"
		}
		sub := envPattern.FindStringSubmatch(match)
		name, op, arg := sub[1], sub[2], sub[3]
		value, ok := lookup(name)

		switch op {
		case "-":
			if !ok || value == "" {
				return arg
			}
		case "?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
		default:
			if !ok && e.strict {
				missing = append(missing, name)
			}
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return result, nil
}
