package syncer

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/logging"
	"github.com/dmitrijs2005/oktasync/internal/mapper"
	"github.com/dmitrijs2005/oktasync/internal/models"
	"github.com/dmitrijs2005/oktasync/internal/okta"
	"github.com/dmitrijs2005/oktasync/internal/storage"
)

// Retry bounds: one initial attempt plus N retries.
const (
	upsertMaxRetries = 2 // 3 attempts per record
	fetchMaxRetries  = 3 // 4 attempts per page
)

// Source yields pages of the remote user collection. An empty cursor starts
// from the beginning; an empty NextCursor ends the walk.
type Source interface {
	ListUsersPage(ctx context.Context, cursor string) (*okta.Page, error)
}

// Engine walks the remote collection once and reconciles it into the store.
type Engine struct {
	source      Source
	repo        storage.Repository
	log         logging.Logger
	concurrency int
	progress    func(Progress)

	// backoff bases, shortened in tests
	upsertBackoff time.Duration
	fetchBackoff  time.Duration
}

// New returns an Engine with the given upsert concurrency; non-positive
// values derive the bound from available parallelism.
func New(source Source, repo storage.Repository, log logging.Logger, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency()
	}
	return &Engine{
		source:        source,
		repo:          repo,
		log:           log,
		concurrency:   concurrency,
		upsertBackoff: 250 * time.Millisecond,
		fetchBackoff:  500 * time.Millisecond,
	}
}

// WithProgress registers a callback invoked after each page is dispatched.
func (e *Engine) WithProgress(fn func(Progress)) *Engine {
	e.progress = fn
	return e
}

// DefaultConcurrency bounds the worker pool at min(8, 2*GOMAXPROCS).
func DefaultConcurrency() int {
	n := 2 * runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Run executes one full sync pass. It returns a complete Summary on success,
// a partial Summary together with the context error on cancellation, and a
// nil Summary on a fatal remote failure.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString()}
	log := e.log.With("run_id", sum.RunID)

	log.Info(ctx, "sync started", "concurrency", e.concurrency)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	cursor := ""
	for {
		page, err := e.fetchPage(ctx, cursor)
		if err != nil {
			_ = g.Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				sum.Duration = time.Since(start)
				return sum, err
			}
			log.Error(ctx, "page fetch failed", "cursor", cursor, "error", err)
			return nil, err
		}

		mu.Lock()
		sum.Pages++
		sum.Seen += len(page.Users)
		mu.Unlock()

		for _, raw := range page.Users {
			rec, err := mapper.Map(raw)
			if err != nil {
				log.Warn(ctx, "record skipped", "id", raw.ID, "reason", err.Error())
				mu.Lock()
				sum.Processed++
				sum.Skipped++
				sum.Skips = append(sum.Skips, RecordError{ID: raw.ID, Reason: err.Error()})
				mu.Unlock()
				continue
			}

			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				applied, err := e.upsertWithRetry(gctx, rec)

				mu.Lock()
				sum.Processed++
				switch {
				case err != nil:
					sum.Failed++
					sum.Failures = append(sum.Failures, RecordError{ID: rec.User.ID, Reason: err.Error()})
				case applied:
					sum.Upserted++
				default:
					sum.Unchanged++
				}
				mu.Unlock()

				if err != nil {
					log.Error(ctx, "record upsert failed", "id", rec.User.ID, "error", err)
				}
				return nil
			})
		}

		if e.progress != nil {
			mu.Lock()
			p := Progress{Pages: sum.Pages, Seen: sum.Seen, Processed: sum.Processed}
			mu.Unlock()
			e.progress(p)
		}

		if page.NextCursor == "" || ctx.Err() != nil {
			break
		}
		cursor = page.NextCursor
	}

	_ = g.Wait()
	sum.Duration = time.Since(start)

	if ctx.Err() != nil {
		log.Warn(ctx, "sync cancelled", "processed", sum.Processed)
		return sum, ctx.Err()
	}

	log.Info(ctx, "sync finished",
		"pages", sum.Pages, "upserted", sum.Upserted, "unchanged", sum.Unchanged,
		"skipped", sum.Skipped, "failed", sum.Failed, "duration", sum.Duration)
	return sum, nil
}

// fetchPage retrieves one page, retrying transient failures with exponential
// backoff and honoring rate-limit delays. Fatal errors pass through.
func (e *Engine) fetchPage(ctx context.Context, cursor string) (*okta.Page, error) {
	var page *okta.Page

	b := retry.WithMaxRetries(fetchMaxRetries, retry.NewExponential(e.fetchBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		p, err := e.source.ListUsersPage(ctx, cursor)
		if err != nil {
			var rl *okta.RateLimitError
			if errors.As(err, &rl) {
				select {
				case <-time.After(rl.RetryAfter):
				case <-ctx.Done():
					return ctx.Err()
				}
				return retry.RetryableError(err)
			}
			if errors.Is(err, common.ErrTransient) {
				return retry.RetryableError(err)
			}
			return err
		}
		page = p
		return nil
	})
	return page, err
}

// upsertWithRetry applies one record, retrying store failures a bounded
// number of times. Errors here are record-scoped and never abort the run.
func (e *Engine) upsertWithRetry(ctx context.Context, rec *models.UserRecord) (bool, error) {
	var applied bool

	b := retry.WithMaxRetries(upsertMaxRetries, retry.NewExponential(e.upsertBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		a, err := e.repo.Upsert(ctx, rec)
		if err != nil {
			return retry.RetryableError(err)
		}
		applied = a
		return nil
	})
	return applied, err
}
