package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE pattern that matches it
// anywhere. Wildcards typed by the user are matched literally.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
}
