// Package usecase implements the business logic for the folders feature.
package usecase

import "errors"

// ErrFolderNotFound is returned when a folder is absent or not owned by the
// caller.
var ErrFolderNotFound = errors.New("folder not found")
