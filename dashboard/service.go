// Package dashboard is the façade the UI layer consumes. It owns the
// session lifecycle, derives domain views from raw payloads, and implements
// multi-page aggregation and rate-limited batch workflows on top of the
// account client.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matchboard/matchboard/account"
	"github.com/matchboard/matchboard/logger"
	"github.com/matchboard/matchboard/store"
	"github.com/matchboard/matchboard/ttlcache"
)

// SessionCacheKey is the TTL-cache key the current platform session lives
// under.
const SessionCacheKey = "user_session"

// LoginFunc performs a platform login. Swappable for tests.
type LoginFunc func(ctx context.Context, baseURL, username, password string) (account.Session, error)

// Options configures a Service.
type Options struct {
	BaseURL    string
	SessionTTL time.Duration
	StatsTTL   time.Duration
	Pacer      Pacer
}

// Service drives a personal platform account through the caching layer.
// The store and TTL cache are process-wide singletons created at startup
// and injected here; nothing locks them, and overlapping flows race with
// last-write-wins semantics. That is acceptable for the dominant pattern of
// one user driving one dashboard sequentially.
type Service struct {
	acct  account.Account
	store store.Store
	ttl   *ttlcache.Cache
	opts  Options

	login      LoginFunc
	newAccount func(account.Session) account.Account
}

// New builds a Service. When a live session is cached, calls go through an
// authenticated, cached account client; otherwise the logged-out null
// object serves empty data until RefreshSession succeeds.
func New(st store.Store, ttl *ttlcache.Cache, opts Options) *Service {
	if opts.Pacer == nil {
		opts.Pacer = FixedDelayPacer{Delay: 500 * time.Millisecond}
	}

	s := &Service{
		store: st,
		ttl:   ttl,
		opts:  opts,
		login: account.Login,
	}
	s.newAccount = func(sess account.Session) account.Account {
		return account.NewRemoteAccount(sess, opts.BaseURL)
	}

	var sess account.Session
	if ok, err := ttl.Get(context.Background(), SessionCacheKey, &sess); err == nil && ok {
		s.acct = s.wrap(sess)
		logger.Log.Info("resumed cached session", zap.String("account_id", sess.AccountID))
	} else {
		s.acct = account.NewNoopAccount()
	}
	return s
}

// SetLoginFunc replaces the login call. Intended for tests.
func (s *Service) SetLoginFunc(fn LoginFunc) { s.login = fn }

// SetAccountFactory replaces how authenticated clients are built from a
// session. Intended for tests.
func (s *Service) SetAccountFactory(fn func(account.Session) account.Account) { s.newAccount = fn }

func (s *Service) wrap(sess account.Session) account.Account {
	return account.NewCachedAccount(s.newAccount(sess), s.store, s.ttl, s.opts.StatsTTL)
}

// LoggedIn reports whether the service currently holds an authenticated
// account.
func (s *Service) LoggedIn() bool {
	_, noop := s.acct.(*account.NoopAccount)
	return !noop
}

// CurrentSession returns the cached session, if one is still live.
func (s *Service) CurrentSession(ctx context.Context) (account.Session, bool) {
	var sess account.Session
	ok, err := s.ttl.Get(ctx, SessionCacheKey, &sess)
	if err != nil || !ok {
		return account.Session{}, false
	}
	return sess, true
}

// RefreshSession logs in, caches the session with the configured TTL, and
// swaps the internal account reference. On failure the previous state is
// left untouched and the error (AuthError for rejected credentials)
// propagates.
func (s *Service) RefreshSession(ctx context.Context, username, password string) (account.Session, error) {
	sess, err := s.login(ctx, s.opts.BaseURL, username, password)
	if err != nil {
		return account.Session{}, err
	}

	if err := s.ttl.Set(ctx, SessionCacheKey, sess, s.opts.SessionTTL); err != nil {
		logger.Log.Warn("session cache write failed", zap.Error(err))
	}
	s.acct = s.wrap(sess)
	logger.Log.Info("session refreshed", zap.String("account_id", sess.AccountID))
	return sess, nil
}

// WithCacheBypass returns a Service whose fetches skip cache reads and
// overwrite cache records. On a logged-out service this is a no-op: the
// null object has nothing to bypass.
func (s *Service) WithCacheBypass(bypass bool) *Service {
	cached, ok := s.acct.(*account.CachedAccount)
	if !ok {
		return s
	}
	clone := *s
	clone.acct = cached.WithBypass(bypass)
	return &clone
}

// MyProfile fetches the logged-in account's own profile. The UI uses this
// as the session validity probe: a transport failure here means the cached
// credentials are stale and RefreshSession should run.
func (s *Service) MyProfile(ctx context.Context) (Profile, error) {
	return s.GetProfile(ctx, s.acct.AccountID())
}

// GetProfile fetches one profile and derives its view.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	payload, err := s.acct.UserProfile(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return NewProfile(payload), nil
}

// GetProfiles fetches profiles strictly sequentially, pacing between
// requests. Input order is preserved; empty payloads (the logged-out
// sentinel) are dropped.
func (s *Service) GetProfiles(ctx context.Context, userIDs []string) ([]Profile, error) {
	profiles := make([]Profile, 0, len(userIDs))
	for i, userID := range userIDs {
		if i > 0 {
			if err := s.opts.Pacer.Pace(ctx); err != nil {
				return nil, err
			}
		}

		payload, err := s.acct.UserProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if payload.IsEmpty() {
			continue
		}
		profiles = append(profiles, NewProfile(payload))
	}
	return profiles, nil
}

// PublicAnswers aggregates every public answer of the target across all
// pages.
func (s *Service) PublicAnswers(ctx context.Context, targetID string) (AnswerSet, error) {
	return s.collectAnswers(ctx, targetID, account.FilterPublic)
}

// FindOuts aggregates the questions the target answered but the account has
// not.
func (s *Service) FindOuts(ctx context.Context, targetID string) (AnswerSet, error) {
	return s.collectAnswers(ctx, targetID, account.FilterFindOut)
}

// collectAnswers walks the paginated answers listing, following the after
// cursor until the platform reports the end or stops handing out cursors.
// An empty first page terminates immediately: inconsistent pagination
// metadata on empty results must not loop forever.
func (s *Service) collectAnswers(ctx context.Context, userID string, filter account.Filter) (AnswerSet, error) {
	set := AnswerSet{Answers: []Answer{}}
	page := account.PageOpt{}

	for {
		resp, err := s.acct.Answers(ctx, userID, filter, page)
		if err != nil {
			return AnswerSet{}, err
		}

		for _, raw := range resp.Data {
			set.Answers = append(set.Answers, NewAnswer(raw))
		}
		if len(set.Answers) == 0 {
			return set, nil
		}

		set.Paging = resp.Paging
		after := resp.Paging.Cursors.After
		if after == "" || resp.Paging.End {
			return set, nil
		}
		page = account.PageOpt{After: after}
	}
}

// SubmitAnswer answers a single question with the default answer.
func (s *Service) SubmitAnswer(ctx context.Context, questionID int64) (account.Payload, error) {
	return s.acct.SubmitAnswer(ctx, questionID)
}

// AutoAnswerMissing answers every question the target has answered but the
// account has not, pacing between submissions. A failed submission aborts
// the remaining batch; already-submitted answers stay submitted, and the
// returned count reports how many completed.
func (s *Service) AutoAnswerMissing(ctx context.Context, targetID string) (int, error) {
	findOuts, err := s.FindOuts(ctx, targetID)
	if err != nil {
		return 0, err
	}

	answered := 0
	for i, ans := range findOuts.Answers {
		if i > 0 {
			if err := s.opts.Pacer.Pace(ctx); err != nil {
				return answered, err
			}
		}
		if _, err := s.acct.SubmitAnswer(ctx, ans.Question.ID); err != nil {
			return answered, err
		}
		answered++
	}

	logger.Log.Info("auto-answer finished",
		zap.String("target_id", targetID), zap.Int("answered", answered))
	return answered, nil
}

// HideAllPublicAnswers re-submits every public answer of the account
// privately, pacing between submissions. Same abort semantics as
// AutoAnswerMissing.
func (s *Service) HideAllPublicAnswers(ctx context.Context) (int, error) {
	mine, err := s.collectAnswers(ctx, s.acct.AccountID(), account.FilterPublic)
	if err != nil {
		return 0, err
	}

	hidden := 0
	for i, ans := range mine.Answers {
		if i > 0 {
			if err := s.opts.Pacer.Pace(ctx); err != nil {
				return hidden, err
			}
		}
		if _, err := s.acct.HideAnswer(ctx, ans.Payload); err != nil {
			return hidden, err
		}
		hidden++
	}
	return hidden, nil
}

// QuestionFilterStats returns per-filter question counts against the
// target, letting the UI decide whether auto-answer needs to run before a
// full comparison view makes sense.
func (s *Service) QuestionFilterStats(ctx context.Context, targetID string) (account.FilterStats, error) {
	return s.acct.QuestionFilterStats(ctx, targetID)
}

// GetQuestion fetches a single question.
func (s *Service) GetQuestion(ctx context.Context, questionID int64) (account.QuestionPayload, error) {
	return s.acct.Question(ctx, questionID)
}

// SkipQuestion skips a question without answering it.
func (s *Service) SkipQuestion(ctx context.Context, questionID int64) (account.Payload, error) {
	return s.acct.SkipQuestion(ctx, questionID)
}
