// Package account implements the client for a personal account on the
// remote matchmaking platform: the authenticated HTTP client, the
// logged-out null object, and the caching decorator that sits in front of
// both.
package account

import "context"

// Session is the credential set produced by a successful login.
type Session struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Cookie    string `json:"cookie"`
}

// Account is a personal account on the remote platform. All operations
// except those on the null object assume a prior successful login.
type Account interface {
	// AccountID returns the id of the logged-in account, or "" when logged out.
	AccountID() string

	UserProfile(ctx context.Context, userID string) (ProfilePayload, error)

	Answers(ctx context.Context, userID string, filter Filter, page PageOpt) (AnswersPage, error)

	// SubmitAnswer answers a question with the default public answer.
	SubmitAnswer(ctx context.Context, questionID int64) (Payload, error)

	// HideAnswer re-submits an existing answer privately, preserving its
	// choice, accepted answers, note and importance.
	HideAnswer(ctx context.Context, answer AnswerPayload) (Payload, error)

	SkipQuestion(ctx context.Context, questionID int64) (Payload, error)

	Question(ctx context.Context, questionID int64) (QuestionPayload, error)

	// QuestionFilterStats returns per-filter question counts between the
	// logged-in account and targetID.
	QuestionFilterStats(ctx context.Context, targetID string) (FilterStats, error)
}
