package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Repo adds the target repository.
func Repo(repo string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("repo", repo)
	}
}

// Tool adds the tool name and schema filename.
func Tool(spec issue.ToolSpec) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", spec.Name).Str("schema", spec.Schema)
	}
}

// Title adds an issue title field.
func Title(title string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("title", title)
	}
}

// Label adds a label name field.
func Label(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("label", name)
	}
}

// Outcome adds the per-tool outcome.
func Outcome(o issue.Outcome) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("outcome", string(o))
	}
}

// Backend adds the collaborator backend name.
func Backend(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("backend", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Count adds a named integer field.
func Count(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Component adds a component name field.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// DryRun marks an event as coming from a dry run.
func DryRun(enabled bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("dry_run", enabled)
	}
}
