package domain

import "errors"

var (
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
	ErrInvalidPatternLibrary   = errors.New("invalid pattern library")
	ErrNoInputFiles            = errors.New("no input files found")
	ErrDocumentTypeMismatch    = errors.New("front and back document types differ")
)
