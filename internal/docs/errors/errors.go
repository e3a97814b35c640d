// Package errors provides sentinel errors for long-form document loading.
// They are carried as causes of classified docs errors so callers can match
// them with errors.Is.
package errors

import "errors"

var (
	// ErrDocsDirWalkFailed indicates traversal of the documents directory failed.
	ErrDocsDirWalkFailed = errors.New("documents directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")

	// ErrInvalidFrontmatter indicates a document header could not be split or decoded.
	ErrInvalidFrontmatter = errors.New("invalid document frontmatter")

	// ErrSlugCollision indicates two source files map to the same slug.
	ErrSlugCollision = errors.New("document slug collision")
)
