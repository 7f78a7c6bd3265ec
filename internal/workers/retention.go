package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/store"
)

// RetentionJanitor deletes sessions older than TTL. A TTL of zero disables
// it and sessions live until the client deletes them.
type RetentionJanitor struct {
	Store    *store.SessionStore
	TTL      time.Duration
	Interval time.Duration
	Logger   *logrus.Logger
}

func (j *RetentionJanitor) Start(ctx context.Context) {
	if j.TTL <= 0 {
		return
	}
	if j.Interval <= 0 {
		j.Interval = time.Hour
	}
	if j.Logger == nil {
		j.Logger = logrus.New()
	}

	go j.run(ctx)
}

func (j *RetentionJanitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *RetentionJanitor) sweep() {
	ids, err := j.Store.List()
	if err != nil {
		j.Logger.WithError(err).Warn("retention sweep failed to list sessions")
		return
	}

	cutoff := time.Now().UTC().Add(-j.TTL)
	removed := 0
	for _, id := range ids {
		sess, err := j.Store.Get(id)
		if err != nil {
			continue
		}
		if sess.CreatedAt.Before(cutoff) {
			if j.Store.Delete(id) {
				removed++
			}
		}
	}

	if removed > 0 {
		j.Logger.WithField("removed", removed).Info("expired sessions removed")
	}
}
