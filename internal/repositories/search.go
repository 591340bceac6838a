package repositories

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern turns free text into a lower-cased LIKE pattern matching it
// literally. Queries using it must declare ESCAPE '!'.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
