package service

import (
	"strings"

	"github.com/gosimple/slug"
)

// collapse trims and squeezes internal whitespace, preserving the
// first-seen casing as the stored display form.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// foldKey is the case- and whitespace-insensitive lookup key for
// name-keyed dimensions.
func foldKey(name string) string {
	return slug.Make(name)
}
