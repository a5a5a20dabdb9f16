package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchboard/matchboard/account"
	"github.com/matchboard/matchboard/store"
	"github.com/matchboard/matchboard/ttlcache"
)

// scriptedAccount serves canned pages keyed by the after cursor and records
// every write operation it receives.
type scriptedAccount struct {
	id       string
	profiles map[string]account.ProfilePayload
	pages    map[string]account.AnswersPage

	answersCalls int
	submitted    []int64
	hidden       []int64
	skipped      []int64
	submitErr    map[int64]error
}

func (a *scriptedAccount) AccountID() string { return a.id }

func (a *scriptedAccount) UserProfile(_ context.Context, userID string) (account.ProfilePayload, error) {
	return a.profiles[userID], nil
}

func (a *scriptedAccount) Answers(_ context.Context, _ string, _ account.Filter, page account.PageOpt) (account.AnswersPage, error) {
	a.answersCalls++
	return a.pages[page.After], nil
}

func (a *scriptedAccount) SubmitAnswer(_ context.Context, questionID int64) (account.Payload, error) {
	if err := a.submitErr[questionID]; err != nil {
		return nil, err
	}
	a.submitted = append(a.submitted, questionID)
	return account.Payload{}, nil
}

func (a *scriptedAccount) HideAnswer(_ context.Context, answer account.AnswerPayload) (account.Payload, error) {
	a.hidden = append(a.hidden, answer.Question.ID)
	return account.Payload{}, nil
}

func (a *scriptedAccount) SkipQuestion(_ context.Context, questionID int64) (account.Payload, error) {
	a.skipped = append(a.skipped, questionID)
	return account.Payload{}, nil
}

func (a *scriptedAccount) Question(_ context.Context, questionID int64) (account.QuestionPayload, error) {
	return account.QuestionPayload{ID: questionID}, nil
}

func (a *scriptedAccount) QuestionFilterStats(context.Context, string) (account.FilterStats, error) {
	return account.FilterStats{}, nil
}

// failingStore rejects every operation, simulating an unavailable backend.
type failingStore struct{}

func (failingStore) Put(_ context.Context, bucket, id string, _ any) error {
	return &store.StorageError{Op: "put", Bucket: bucket, ID: id, Err: errors.New("backend down")}
}

func (failingStore) Get(_ context.Context, bucket, id string, _ any) (bool, error) {
	return false, &store.StorageError{Op: "get", Bucket: bucket, ID: id, Err: errors.New("backend down")}
}

func (failingStore) Delete(_ context.Context, bucket, id string) error {
	return &store.StorageError{Op: "delete", Bucket: bucket, ID: id, Err: errors.New("backend down")}
}

type countPacer struct{ calls int }

func (p *countPacer) Pace(context.Context) error {
	p.calls++
	return nil
}

func answerFor(qid int64) account.AnswerPayload {
	return account.AnswerPayload{Question: account.QuestionPayload{ID: qid}}
}

func profileFor(userID string) account.ProfilePayload {
	return account.ProfilePayload{User: account.ProfileUser{UserID: userID}}
}

func newTestService(acct account.Account, pacer Pacer) *Service {
	mem := store.NewMemoryStore()
	svc := New(mem, ttlcache.New(mem), Options{
		BaseURL:    "http://platform.test",
		SessionTTL: time.Hour,
		StatsTTL:   time.Hour,
		Pacer:      pacer,
	})
	svc.acct = acct
	return svc
}

func TestPublicAnswersAggregatesAllPages(t *testing.T) {
	acct := &scriptedAccount{pages: map[string]account.AnswersPage{
		"": {
			Data:   []account.AnswerPayload{answerFor(1), answerFor(2)},
			Paging: account.Paging{Cursors: account.PageCursors{After: "p2"}},
		},
		"p2": {
			Data:   []account.AnswerPayload{answerFor(3), answerFor(4)},
			Paging: account.Paging{Cursors: account.PageCursors{After: "p3"}},
		},
		"p3": {
			Data:   []account.AnswerPayload{answerFor(5)},
			Paging: account.Paging{Cursors: account.PageCursors{After: "p4"}, End: true},
		},
	}}
	svc := newTestService(acct, &countPacer{})

	set, err := svc.PublicAnswers(context.Background(), "42")
	if err != nil {
		t.Fatalf("PublicAnswers failed: %v", err)
	}
	if len(set.Answers) != 5 {
		t.Fatalf("aggregated %d answers, want 5", len(set.Answers))
	}
	for i, want := range []int64{1, 2, 3, 4, 5} {
		if set.Answers[i].Question.ID != want {
			t.Errorf("answer %d has question %d, want %d", i, set.Answers[i].Question.ID, want)
		}
	}
	if !set.Paging.End {
		t.Error("final paging metadata lost")
	}
	if acct.answersCalls != 3 {
		t.Errorf("walked %d pages, want 3", acct.answersCalls)
	}
}

func TestCollectAnswersStopsWithoutCursor(t *testing.T) {
	acct := &scriptedAccount{pages: map[string]account.AnswersPage{
		"": {Data: []account.AnswerPayload{answerFor(1)}},
	}}
	svc := newTestService(acct, &countPacer{})

	set, err := svc.PublicAnswers(context.Background(), "42")
	if err != nil {
		t.Fatalf("PublicAnswers failed: %v", err)
	}
	if len(set.Answers) != 1 {
		t.Errorf("got %d answers, want 1", len(set.Answers))
	}
	if acct.answersCalls != 1 {
		t.Errorf("kept fetching after the cursor ran out: %d calls", acct.answersCalls)
	}
}

func TestCollectAnswersEmptyFirstPage(t *testing.T) {
	// An empty page can still carry a cursor. Following it would loop.
	acct := &scriptedAccount{pages: map[string]account.AnswersPage{
		"": {Paging: account.Paging{Cursors: account.PageCursors{After: "p2"}}},
	}}
	svc := newTestService(acct, &countPacer{})

	set, err := svc.FindOuts(context.Background(), "42")
	if err != nil {
		t.Fatalf("FindOuts failed: %v", err)
	}
	if len(set.Answers) != 0 {
		t.Errorf("got %d answers, want 0", len(set.Answers))
	}
	if set.Answers == nil {
		t.Error("empty result is nil, want empty slice")
	}
	if acct.answersCalls != 1 {
		t.Errorf("followed a cursor off an empty page: %d calls", acct.answersCalls)
	}
}

func TestGetProfilesOrderPacingAndDrops(t *testing.T) {
	acct := &scriptedAccount{profiles: map[string]account.ProfilePayload{
		"a": profileFor("a"),
		"c": profileFor("c"),
		// "b" is absent: the logged-out sentinel payload comes back empty.
	}}
	pacer := &countPacer{}
	svc := newTestService(acct, pacer)

	profiles, err := svc.GetProfiles(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}
	if len(profiles) != 2 || profiles[0].UserID != "a" || profiles[1].UserID != "c" {
		t.Errorf("unexpected result set: %+v", profiles)
	}
	if pacer.calls != 2 {
		t.Errorf("paced %d times for 3 requests, want 2", pacer.calls)
	}
}

func TestAutoAnswerAbortsOnFailure(t *testing.T) {
	acct := &scriptedAccount{
		pages: map[string]account.AnswersPage{
			"": {Data: []account.AnswerPayload{answerFor(1), answerFor(2), answerFor(3)}},
		},
		submitErr: map[int64]error{2: errors.New("submission rejected")},
	}
	svc := newTestService(acct, &countPacer{})

	answered, err := svc.AutoAnswerMissing(context.Background(), "42")
	if err == nil {
		t.Fatal("expected the batch to abort")
	}
	if answered != 1 {
		t.Errorf("reported %d answered, want 1", answered)
	}
	// Question 3 was never attempted.
	if len(acct.submitted) != 1 || acct.submitted[0] != 1 {
		t.Errorf("submitted %v, want [1]", acct.submitted)
	}
}

func TestHideAllPublicAnswers(t *testing.T) {
	acct := &scriptedAccount{
		id: "me",
		pages: map[string]account.AnswersPage{
			"": {Data: []account.AnswerPayload{answerFor(7), answerFor(8)}},
		},
	}
	pacer := &countPacer{}
	svc := newTestService(acct, pacer)

	hidden, err := svc.HideAllPublicAnswers(context.Background())
	if err != nil {
		t.Fatalf("HideAllPublicAnswers failed: %v", err)
	}
	if hidden != 2 {
		t.Errorf("hid %d answers, want 2", hidden)
	}
	if len(acct.hidden) != 2 || acct.hidden[0] != 7 || acct.hidden[1] != 8 {
		t.Errorf("hidden %v, want [7 8]", acct.hidden)
	}
	if pacer.calls != 1 {
		t.Errorf("paced %d times for 2 submissions, want 1", pacer.calls)
	}
}

func TestRefreshSessionSwapsAccount(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := New(mem, ttlcache.New(mem), Options{
		BaseURL:    "http://platform.test",
		SessionTTL: time.Hour,
		Pacer:      &countPacer{},
	})
	if svc.LoggedIn() {
		t.Fatal("fresh service with empty cache reports logged in")
	}

	acct := &scriptedAccount{id: "me-123"}
	svc.SetLoginFunc(func(_ context.Context, _, username, _ string) (account.Session, error) {
		if username != "alice" {
			t.Errorf("username = %q", username)
		}
		return account.Session{Token: "tok", AccountID: "me-123"}, nil
	})
	svc.SetAccountFactory(func(account.Session) account.Account { return acct })

	sess, err := svc.RefreshSession(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("RefreshSession failed: %v", err)
	}
	if sess.AccountID != "me-123" {
		t.Errorf("session account id = %q", sess.AccountID)
	}
	if !svc.LoggedIn() {
		t.Error("service still logged out after refresh")
	}

	cached, ok := svc.CurrentSession(context.Background())
	if !ok {
		t.Fatal("refreshed session not cached")
	}
	if cached.Token != "tok" {
		t.Errorf("cached token = %q", cached.Token)
	}
}

func TestRefreshSessionFailureKeepsState(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := New(mem, ttlcache.New(mem), Options{SessionTTL: time.Hour, Pacer: &countPacer{}})
	svc.SetLoginFunc(func(context.Context, string, string, string) (account.Session, error) {
		return account.Session{}, &account.AuthError{Status: 104, Reason: "INVALID_CREDENTIALS"}
	})

	_, err := svc.RefreshSession(context.Background(), "alice", "wrong")
	if !account.IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if svc.LoggedIn() {
		t.Error("failed login flipped the service to logged in")
	}
	if _, ok := svc.CurrentSession(context.Background()); ok {
		t.Error("failed login left a cached session")
	}
}

func TestNewResumesCachedSession(t *testing.T) {
	mem := store.NewMemoryStore()
	ttl := ttlcache.New(mem)
	sess := account.Session{Token: "tok", AccountID: "me"}
	if err := ttl.Set(context.Background(), SessionCacheKey, sess, time.Hour); err != nil {
		t.Fatalf("seeding session failed: %v", err)
	}

	svc := New(mem, ttl, Options{SessionTTL: time.Hour, Pacer: &countPacer{}})
	if !svc.LoggedIn() {
		t.Error("cached session was not resumed")
	}
}

func TestStorageFailureDegradations(t *testing.T) {
	// A broken store at startup means no resumable session: the service
	// starts logged out instead of failing construction.
	svc := New(failingStore{}, ttlcache.New(failingStore{}), Options{
		SessionTTL: time.Hour,
		Pacer:      &countPacer{},
	})
	if svc.LoggedIn() {
		t.Error("service resumed a session from a broken store")
	}

	// A failed session-cache write is logged, not fatal: the refreshed
	// account is still installed.
	acct := &scriptedAccount{id: "me"}
	svc.SetLoginFunc(func(context.Context, string, string, string) (account.Session, error) {
		return account.Session{Token: "tok", AccountID: "me"}, nil
	})
	svc.SetAccountFactory(func(account.Session) account.Account { return acct })

	sess, err := svc.RefreshSession(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("RefreshSession failed on a broken store: %v", err)
	}
	if sess.AccountID != "me" {
		t.Errorf("session account id = %q", sess.AccountID)
	}
	if !svc.LoggedIn() {
		t.Error("refreshed account not installed after a failed cache write")
	}
}

func TestWithCacheBypassLoggedOut(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := New(mem, ttlcache.New(mem), Options{SessionTTL: time.Hour, Pacer: &countPacer{}})

	if svc.WithCacheBypass(true) != svc {
		t.Error("bypass on a logged-out service should be a no-op")
	}
}
