package services

import (
	"regexp"
	"strings"

	"github.com/localnerve/configdb/internal/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// validateSlug checks a shortname slug: lowercase letters, digits, hyphens.
func validateSlug(slug string) error {
	if slug == "" {
		return types.BadRequest("shortname is required")
	}
	if !slugPattern.MatchString(slug) {
		return types.BadRequest("shortname must contain only lowercase letters, digits, and hyphens")
	}
	return nil
}

// validateLabel checks a version label. Labels may not contain ':' because it
// is the scope key separator.
func validateLabel(label string) error {
	if label == "" {
		return types.BadRequest("version is required")
	}
	if strings.ContainsAny(label, ": \t\n") {
		return types.BadRequest("version must not contain ':' or whitespace")
	}
	return nil
}
