package database

import (
	"fmt"

	"github.com/gosimple/slug"
)

// JobSlug builds the URL slug for a posting from its company and
// title. Korean titles transliterate; collisions are broken by the
// caller appending the row id.
func JobSlug(company, title string) string {
	return slug.Make(company + " " + title)
}

// UniqueJobSlug appends the row id to keep slugs unique across
// repostings of the same title.
func UniqueJobSlug(company, title string, id uint) string {
	return fmt.Sprintf("%s-%d", JobSlug(company, title), id)
}
