package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// Logging returns middleware that logs every collaborator call at debug
// level and failures at warn level.
func Logging(logger *bolt.Logger) Middleware {
	return func(next issue.Collaborator) issue.Collaborator {
		if logger == nil {
			logger = logging.Get()
		}
		return &logged{next: next, logger: logger}
	}
}

type logged struct {
	next   issue.Collaborator
	logger *bolt.Logger
}

func (l *logged) CreateLabel(ctx context.Context, label issue.Label) error {
	start := time.Now()
	err := l.next.CreateLabel(ctx, label)
	l.log(OpCreateLabel, err, time.Since(start), logging.Label(label.Name))
	return err
}

func (l *logged) ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error) {
	start := time.Now()
	titles, err := l.next.ListOpenIssueTitles(ctx, limit)
	l.log("list_issues", err, time.Since(start),
		logging.Count("limit", limit),
		logging.Count("count", len(titles)),
	)
	return titles, err
}

func (l *logged) CreateIssue(ctx context.Context, req issue.NewIssue) (string, error) {
	start := time.Now()
	url, err := l.next.CreateIssue(ctx, req)
	l.log(OpCreateIssue, err, time.Since(start), logging.Title(req.Title), logging.Str("url", url))
	return url, err
}

func (l *logged) log(op string, err error, d time.Duration, fields ...logging.Field) {
	var entry *logging.LogEvent
	if err != nil {
		entry = logging.NewEvent(l.logger.Warn()).Add(logging.ErrorField(err))
	} else {
		entry = logging.NewEvent(l.logger.Debug())
	}
	entry.Add(logging.Component("collaborator"), logging.Operation(op), logging.Duration(d)).Add(fields...)
	if err != nil {
		entry.Msg("collaborator call failed")
		return
	}
	entry.Msg("collaborator call finished")
}
