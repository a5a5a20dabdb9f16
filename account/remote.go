package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

const (
	platformHeader = "X-Platform"
	platformValue  = "DESKTOP"
)

// importanceNames maps the platform's numeric importance codes to the named
// values the submission endpoint expects.
var importanceNames = map[int]string{
	1: "VERY",
	3: "SOMEWHAT",
	4: "LITTLE",
	5: "IRRELEVANT",
}

// RemoteAccount performs the authenticated HTTP calls for one session. It is
// stateless beyond the session credentials; caching is layered on top by
// CachedAccount.
type RemoteAccount struct {
	session Session
	baseURL string
	client  *http.Client
}

// NewRemoteAccount builds an authenticated client carrying the session's
// bearer token and the platform-identifying header on every request.
func NewRemoteAccount(session Session, baseURL string) *RemoteAccount {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.Token,
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(context.Background(), src)
	client.Transport = &platformTransport{next: client.Transport}

	return &RemoteAccount{
		session: session,
		baseURL: baseURL,
		client:  client,
	}
}

// platformTransport stamps the platform-identifying header onto every
// outgoing request.
type platformTransport struct {
	next http.RoundTripper
}

func (t *platformTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set(platformHeader, platformValue)
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(clone)
}

func (a *RemoteAccount) AccountID() string {
	return a.session.AccountID
}

func (a *RemoteAccount) UserProfile(ctx context.Context, userID string) (ProfilePayload, error) {
	var out ProfilePayload
	err := a.get(ctx, "/1/profile/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (a *RemoteAccount) Answers(ctx context.Context, userID string, filter Filter, page PageOpt) (AnswersPage, error) {
	params := url.Values{}
	params.Set("filter", string(filter))
	if page.Before != "" {
		params.Set("before", page.Before)
	}
	if page.After != "" {
		params.Set("after", page.After)
	}

	var out AnswersPage
	err := a.get(ctx, "/1/profile/"+url.PathEscape(userID)+"/answers", params, &out)
	return out, err
}

// answerSubmission is the body posted to answer, hide, or re-answer a
// question.
type answerSubmission struct {
	QuestionID           int64  `json:"qid"`
	Answer               int    `json:"answer"`
	MatchAnswers         []int  `json:"match_answers"`
	Importance           string `json:"importance"`
	Public               bool   `json:"public"`
	Note                 string `json:"note"`
	Source               string `json:"source"`
	GetFormattedResponse bool   `json:"get_formatted_response"`
	TargetUserID         string `json:"target_userid"`
}

func (a *RemoteAccount) SubmitAnswer(ctx context.Context, questionID int64) (Payload, error) {
	body := answerSubmission{
		QuestionID:           questionID,
		Answer:               1,
		MatchAnswers:         []int{1},
		Importance:           importanceNames[3],
		Public:               true,
		Source:               "profile",
		GetFormattedResponse: true,
		TargetUserID:         a.AccountID(),
	}

	var out Payload
	err := a.post(ctx, fmt.Sprintf("/1/questions/%d", questionID), body, &out)
	return out, err
}

func (a *RemoteAccount) HideAnswer(ctx context.Context, answer AnswerPayload) (Payload, error) {
	importance, ok := importanceNames[answer.Target.Importance]
	if !ok {
		importance = importanceNames[3]
	}

	body := answerSubmission{
		QuestionID:           answer.Question.ID,
		Answer:               answer.Target.Answer,
		MatchAnswers:         answer.Target.Accepts,
		Importance:           importance,
		Public:               false,
		Note:                 answer.Target.Note,
		Source:               "profile",
		GetFormattedResponse: true,
		TargetUserID:         a.AccountID(),
	}

	var out Payload
	err := a.post(ctx, fmt.Sprintf("/1/questions/%d", answer.Question.ID), body, &out)
	return out, err
}

func (a *RemoteAccount) SkipQuestion(ctx context.Context, questionID int64) (Payload, error) {
	body := map[string]any{"skip": true, "source": "profile"}

	var out Payload
	err := a.post(ctx, fmt.Sprintf("/1/questions/%d", questionID), body, &out)
	return out, err
}

func (a *RemoteAccount) Question(ctx context.Context, questionID int64) (QuestionPayload, error) {
	var out QuestionPayload
	err := a.get(ctx, fmt.Sprintf("/1/questions/%d", questionID), nil, &out)
	return out, err
}

// statsQuery is the structured query sent to the match-statistics endpoint.
type statsQuery struct {
	Operation string `json:"operation"`
	ViewerID  string `json:"viewer_id"`
	TargetID  string `json:"target_id"`
}

type statsResponse struct {
	Match struct {
		QuestionFilters []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"questionFilters"`
	} `json:"match"`
}

func (a *RemoteAccount) QuestionFilterStats(ctx context.Context, targetID string) (FilterStats, error) {
	body := statsQuery{
		Operation: "matchProfileQuestions",
		ViewerID:  a.AccountID(),
		TargetID:  targetID,
	}

	var resp statsResponse
	if err := a.post(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}

	stats := FilterStats{}
	for _, f := range resp.Match.QuestionFilters {
		stats[Filter(f.ID)] = f.Count
	}
	return stats, nil
}

func (a *RemoteAccount) get(ctx context.Context, path string, params url.Values, dest any) error {
	u := a.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	return a.do(req, path, dest)
}

func (a *RemoteAccount) post(ctx context.Context, path string, body, dest any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, path, dest)
}

func (a *RemoteAccount) do(req *http.Request, path string, dest any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return &TransportError{Op: req.Method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &TransportError{
			Op:  req.Method + " " + path,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &TransportError{Op: req.Method + " " + path, Err: err}
	}
	return nil
}
