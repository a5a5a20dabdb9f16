package account

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/matchboard/matchboard/logger"
	"github.com/matchboard/matchboard/store"
	"github.com/matchboard/matchboard/ttlcache"
)

// CachedAccount wraps an Account so that identical logical requests resolve
// to the same cache record. The decorator is immutable: WithBypass returns a
// new instance sharing the inner client and stores.
//
// Profile, answer, submission, and question records are cached forever
// (until manually cleared). Filter statistics are a volatile aggregate and
// go through the TTL cache instead.
type CachedAccount struct {
	inner    Account
	store    store.Store
	ttl      *ttlcache.Cache
	statsTTL time.Duration
	bypass   bool
}

// NewCachedAccount wraps inner with persistent caching.
func NewCachedAccount(inner Account, st store.Store, ttl *ttlcache.Cache, statsTTL time.Duration) *CachedAccount {
	return &CachedAccount{
		inner:    inner,
		store:    st,
		ttl:      ttl,
		statsTTL: statsTTL,
	}
}

// WithBypass returns a decorator over the same inner client and stores with
// the bypass flag set. With bypass on, every call performs a live fetch and
// overwrites the cache record.
func (a *CachedAccount) WithBypass(bypass bool) *CachedAccount {
	clone := *a
	clone.bypass = bypass
	return &clone
}

// Bypass reports whether this instance skips cache reads.
func (a *CachedAccount) Bypass() bool { return a.bypass }

func (a *CachedAccount) AccountID() string {
	return a.inner.AccountID()
}

func (a *CachedAccount) UserProfile(ctx context.Context, userID string) (ProfilePayload, error) {
	return cachedFetch(ctx, a, store.BucketProfiles, userID, func(ctx context.Context) (ProfilePayload, error) {
		return a.inner.UserProfile(ctx, userID)
	})
}

// answersKey builds the deterministic cache key for an answers request.
// Cursor components are appended only when present, in a fixed order, so
// identical requests always share a record.
func answersKey(userID string, filter Filter, page PageOpt) string {
	key := fmt.Sprintf("%s|filter=%s", userID, filter)
	if page.Before != "" {
		key += "|before=" + page.Before
	}
	if page.After != "" {
		key += "|after=" + page.After
	}
	return key
}

func (a *CachedAccount) Answers(ctx context.Context, userID string, filter Filter, page PageOpt) (AnswersPage, error) {
	key := answersKey(userID, filter, page)
	return cachedFetch(ctx, a, store.BucketAnswers, key, func(ctx context.Context) (AnswersPage, error) {
		return a.inner.Answers(ctx, userID, filter, page)
	})
}

func (a *CachedAccount) SubmitAnswer(ctx context.Context, questionID int64) (Payload, error) {
	key := fmt.Sprintf("%s|qid=%d", a.inner.AccountID(), questionID)
	return cachedFetch(ctx, a, store.BucketAnsweredQuestions, key, func(ctx context.Context) (Payload, error) {
		return a.inner.SubmitAnswer(ctx, questionID)
	})
}

// HideAnswer mutates remote state and is never served from cache.
func (a *CachedAccount) HideAnswer(ctx context.Context, answer AnswerPayload) (Payload, error) {
	return a.inner.HideAnswer(ctx, answer)
}

// SkipQuestion mutates remote state and is never served from cache.
func (a *CachedAccount) SkipQuestion(ctx context.Context, questionID int64) (Payload, error) {
	return a.inner.SkipQuestion(ctx, questionID)
}

func (a *CachedAccount) Question(ctx context.Context, questionID int64) (QuestionPayload, error) {
	key := strconv.FormatInt(questionID, 10)
	return cachedFetch(ctx, a, store.BucketQuestions, key, func(ctx context.Context) (QuestionPayload, error) {
		return a.inner.Question(ctx, questionID)
	})
}

// QuestionFilterStats caches through the TTL layer: the stats are a derived
// aggregate volatile enough to need expiry rather than permanent caching.
func (a *CachedAccount) QuestionFilterStats(ctx context.Context, targetID string) (FilterStats, error) {
	key := fmt.Sprintf("profile_questions_%s_%s", a.AccountID(), targetID)

	if !a.bypass {
		var cached FilterStats
		if ok, err := a.ttl.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	stats, err := a.inner.QuestionFilterStats(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := a.ttl.Set(ctx, key, stats, a.statsTTL); err != nil {
		logger.Log.Warn("filter stats cache write failed", zap.String("key", key), zap.Error(err))
	}
	return stats, nil
}

// cachedFetch is the shared read-through path: consult the store unless
// bypassing, otherwise fetch live and write through. A store read error
// degrades to a cache miss; a write error is logged without failing the
// request that produced the value.
func cachedFetch[T any](ctx context.Context, a *CachedAccount, bucket, key string, fetch func(context.Context) (T, error)) (T, error) {
	if !a.bypass {
		var cached T
		ok, err := a.store.Get(ctx, bucket, key, &cached)
		if err != nil {
			logger.Log.Debug("cache read failed, treating as miss",
				zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	if err := a.store.Put(ctx, bucket, key, value); err != nil {
		logger.Log.Warn("cache write failed",
			zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
	}
	return value, nil
}
