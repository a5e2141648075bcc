package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every Find* method when the document does not
// exist, so callers never have to know about gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("document not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
