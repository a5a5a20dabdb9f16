package account

import "context"

// NoopAccount is the logged-out state. Every operation returns an empty
// payload without touching the network and never fails, so the dashboard
// degrades to empty data instead of erroring before a login.
type NoopAccount struct{}

func NewNoopAccount() *NoopAccount { return &NoopAccount{} }

func (*NoopAccount) AccountID() string { return "" }

func (*NoopAccount) UserProfile(context.Context, string) (ProfilePayload, error) {
	return ProfilePayload{}, nil
}

func (*NoopAccount) Answers(context.Context, string, Filter, PageOpt) (AnswersPage, error) {
	return AnswersPage{}, nil
}

func (*NoopAccount) SubmitAnswer(context.Context, int64) (Payload, error) {
	return Payload{}, nil
}

func (*NoopAccount) HideAnswer(context.Context, AnswerPayload) (Payload, error) {
	return Payload{}, nil
}

func (*NoopAccount) SkipQuestion(context.Context, int64) (Payload, error) {
	return Payload{}, nil
}

func (*NoopAccount) Question(context.Context, int64) (QuestionPayload, error) {
	return QuestionPayload{}, nil
}

func (*NoopAccount) QuestionFilterStats(context.Context, string) (FilterStats, error) {
	return FilterStats{}, nil
}
