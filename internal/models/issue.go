package models

// Issue is a topic a news item is filed under.
type Issue struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Issues is the fixed, ordered list of permitted issue names. It is the single
// source of truth: news-item validation, the issues endpoint and news search
// all read from this one list.
var Issues = []string{
	"Free Speech",
	"Immigration",
	"Terrorism",
	"Social Security and Medicare",
	"Abortion",
	"Student Loans",
	"Gun Control",
	"Unemployment",
	"Climate Change",
	"Homelessness",
	"Racism",
	"Tax Reform",
	"Net Neutrality",
	"Religious Freedom",
	"Border Security",
	"Minimum Wage",
	"Equal Pay",
}

// ValidIssue reports whether name is one of the permitted issue names.
func ValidIssue(name string) bool {
	for _, issue := range Issues {
		if issue == name {
			return true
		}
	}
	return false
}
