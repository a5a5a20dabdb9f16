package dashboard

import (
	"testing"

	"github.com/matchboard/matchboard/account"
)

func TestNewProfileDerivation(t *testing.T) {
	raw := account.ProfilePayload{
		User: account.ProfileUser{
			UserID: "42",
			UserInfo: account.ProfileUserInfo{
				Age:         29,
				DisplayName: "Dana",
			},
			Location: account.ProfileLocation{
				Formatted: account.FormattedLocation{
					Standard: "Springfield",
					Distance: 10,
				},
			},
			Photos: []account.PhotoPayload{
				{Full: "https://cdn.platform.invalid/images/50x0/806x756/0/abc123.webp?v=2"},
			},
		},
		Extras: account.ProfileExtras{LastOnlineString: "Online now"},
	}

	p := NewProfile(raw)
	if p.UserID != "42" || p.DisplayName != "Dana" || p.Age != 29 {
		t.Errorf("identity fields not derived: %+v", p)
	}
	if p.LastLogin != "Online now" {
		t.Errorf("last login = %q", p.LastLogin)
	}
	// 10 miles rounds to 16 km.
	if p.Distance != "Springfield, 16 km" {
		t.Errorf("distance = %q", p.Distance)
	}
	if p.Payload().User.UserID != "42" {
		t.Error("raw payload not retained")
	}

	if len(p.Photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(p.Photos))
	}
	photo := p.Photos[0]
	if photo.ID != "abc123" {
		t.Errorf("photo id = %q, want abc123", photo.ID)
	}
	if photo.CardURL() != photoCDN+"/"+photoCardSize+"/0/abc123.webp?v=2" {
		t.Errorf("card url = %q", photo.CardURL())
	}
	if photo.OriginalURL() != photoCDN+"/"+photoFullSize+"/0/abc123.webp?v=2" {
		t.Errorf("original url = %q", photo.OriginalURL())
	}
}

func TestAnswerChoiceMapping(t *testing.T) {
	raw := account.AnswerPayload{
		Question: account.QuestionPayload{
			ID:      7,
			Text:    "Pick one",
			Answers: []string{"Yes", "No", "Maybe"},
		},
		Target: account.AnswerTarget{
			Answer:  1,
			Accepts: []int{0, 2},
			Note:    "depends",
		},
	}

	a := NewAnswer(raw)
	if a.AnswerChoice() != "No" {
		t.Errorf("choice = %q, want No", a.AnswerChoice())
	}
	accepts := a.AcceptChoices()
	if len(accepts) != 2 || accepts[0] != "Yes" || accepts[1] != "Maybe" {
		t.Errorf("accepts = %v", accepts)
	}
	if a.Note != "depends" {
		t.Errorf("note = %q", a.Note)
	}
}

func TestAnswerChoiceOutOfRange(t *testing.T) {
	raw := account.AnswerPayload{
		Question: account.QuestionPayload{Answers: []string{"Yes", "No"}},
		Target:   account.AnswerTarget{Answer: 5, Accepts: []int{0, 9}},
	}

	a := NewAnswer(raw)
	if a.AnswerChoice() != "" {
		t.Errorf("out-of-range choice = %q, want empty", a.AnswerChoice())
	}
	accepts := a.AcceptChoices()
	if len(accepts) != 1 || accepts[0] != acceptFallback {
		t.Errorf("accepts = %v, want fallback placeholder", accepts)
	}
}
