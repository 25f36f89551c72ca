package firestore

import "errors"

var (
	// ErrQuery возвращается при ошибке чтения из Firestore
	ErrQuery = errors.New("firestore.repository: query failed")

	// ErrWrite возвращается при ошибке записи в Firestore
	ErrWrite = errors.New("firestore.repository: write failed")

	// ErrDecode возвращается, когда документ не удаётся разобрать
	ErrDecode = errors.New("firestore.repository: failed to decode document")
)
