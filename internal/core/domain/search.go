package domain

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern turns free text into a case-insensitive LIKE pattern that
// matches names containing every whitespace separated term, in order.
//
//	"stra ins" → "%stra%ins%"
func SearchPattern(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return "%"
	}
	for i, t := range terms {
		terms[i] = likeEscaper.Replace(t)
	}
	return "%" + strings.Join(terms, "%") + "%"
}
