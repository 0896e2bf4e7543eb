package server

import "regexp"

// Document ids look like pr-9x3k or bg-41ab: a short prefix, a dash, and a
// base36 hash.
var idPattern = regexp.MustCompile(`^[a-z]{2}-[0-9a-z]{1,16}$`)

func validateID(id string) bool {
	if id == "" || len(id) > 32 {
		return false
	}
	return idPattern.MatchString(id)
}

const maxCategoryNameLength = 64

func validateCategoryName(name string) bool {
	return name != "" && len(name) <= maxCategoryNameLength
}
