package account

// Filter selects which category of question-answers to retrieve. Values are
// the remote platform's wire identifiers.
type Filter string

const (
	// FilterPublic selects all public answers, across every category.
	FilterPublic    Filter = "1"
	FilterPrivate   Filter = "2"
	FilterImportant Filter = "4"
	FilterExplain   Filter = "8"
	FilterAgree     Filter = "9"
	FilterDisagree  Filter = "10"
	// FilterFindOut selects questions the account has not answered yet.
	FilterFindOut Filter = "11"
)

// FilterStats maps a filter to the number of questions it matches.
type FilterStats map[Filter]int
