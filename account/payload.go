package account

// Payload is a raw response body whose shape the dashboard does not model.
type Payload map[string]any

// ProfilePayload is the raw profile response. Derived Profile views are
// built from it on read; the payload itself is what gets cached.
type ProfilePayload struct {
	User   ProfileUser   `json:"user"`
	Extras ProfileExtras `json:"extras"`
}

// IsEmpty reports whether this is the empty payload the logged-out account
// returns for every profile fetch.
func (p ProfilePayload) IsEmpty() bool {
	return p.User.UserID == ""
}

type ProfileUser struct {
	UserID   string          `json:"userid"`
	UserInfo ProfileUserInfo `json:"userinfo"`
	Location ProfileLocation `json:"location"`
	Photos   []PhotoPayload  `json:"photos"`
}

type ProfileUserInfo struct {
	Age         int    `json:"age"`
	DisplayName string `json:"displayname"`
}

type ProfileLocation struct {
	Formatted FormattedLocation `json:"formatted"`
}

// FormattedLocation carries the locality name and the raw distance in
// miles as reported by the platform.
type FormattedLocation struct {
	Standard string  `json:"standard"`
	Distance float64 `json:"distance"`
}

type PhotoPayload struct {
	Full string `json:"full"`
}

type ProfileExtras struct {
	LastOnlineString string `json:"lastOnlineString"`
}

// QuestionPayload is a compatibility question with its answer choices.
type QuestionPayload struct {
	ID      int64    `json:"id"`
	Genre   string   `json:"genre"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// AnswerPayload is one respondent's answer to a question.
type AnswerPayload struct {
	Question QuestionPayload `json:"question"`
	Target   AnswerTarget    `json:"target"`
}

// AnswerTarget holds the respondent's side of an answer: their choice, the
// choices they accept from a match, an optional note, and the importance
// code they assigned.
type AnswerTarget struct {
	Answer     int    `json:"answer"`
	Accepts    []int  `json:"accepts"`
	Note       string `json:"note"`
	Importance int    `json:"importance"`
}

// AnswersPage is one page of a paginated answers listing.
type AnswersPage struct {
	Data   []AnswerPayload `json:"data"`
	Paging Paging          `json:"paging"`
}

// Paging is the pagination metadata returned with each answers page.
type Paging struct {
	Cursors PageCursors `json:"cursors"`
	End     bool        `json:"end"`
}

// PageCursors are opaque tokens marking page boundaries.
type PageCursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// PageOpt selects a page by cursor. The zero value means the first page.
type PageOpt struct {
	Before string
	After  string
}
