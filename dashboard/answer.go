package dashboard

import "github.com/matchboard/matchboard/account"

// acceptFallback is shown when an accepted-answer index cannot be mapped to
// a choice text.
const acceptFallback = "I want something"

// Answer is the derived view over a raw answer payload: the question, the
// respondent's chosen answer, the set of answers they accept from a match,
// and their free-text note.
type Answer struct {
	Payload  account.AnswerPayload  `json:"payload"`
	Question account.QuestionPayload `json:"question"`
	Choice   int                    `json:"choice"`
	Accepts  []int                  `json:"accepts"`
	Note     string                 `json:"note"`
}

func NewAnswer(p account.AnswerPayload) Answer {
	return Answer{
		Payload:  p,
		Question: p.Question,
		Choice:   p.Target.Answer,
		Accepts:  p.Target.Accepts,
		Note:     p.Target.Note,
	}
}

// AnswerChoice returns the text of the respondent's chosen answer, or ""
// when the index does not map to a choice.
func (a Answer) AnswerChoice() string {
	if a.Choice < 0 || a.Choice >= len(a.Question.Answers) {
		return ""
	}
	return a.Question.Answers[a.Choice]
}

// AcceptChoices returns the texts of the answers the respondent accepts
// from a match, degrading to a placeholder when index mapping fails.
func (a Answer) AcceptChoices() []string {
	choices := make([]string, 0, len(a.Accepts))
	for _, idx := range a.Accepts {
		if idx < 0 || idx >= len(a.Question.Answers) {
			return []string{acceptFallback}
		}
		choices = append(choices, a.Question.Answers[idx])
	}
	return choices
}

// AnswerSet is the aggregation of a full paginated answers listing plus the
// final page's paging metadata.
type AnswerSet struct {
	Answers []Answer       `json:"answers"`
	Paging  account.Paging `json:"paging"`
}
