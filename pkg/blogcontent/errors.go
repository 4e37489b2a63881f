package blogcontent

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrBlogNotFound indicates a blog was not found
	ErrBlogNotFound = errors.New("blog not found")

	// ErrCategoryNotFound indicates a category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAssetNotFound indicates a stored asset was not found
	ErrAssetNotFound = errors.New("asset not found")
)

// ValidationCode classifies a client-input validation failure.
type ValidationCode string

const (
	CodeMissingField        ValidationCode = "missing_field"
	CodeInvalidFormat       ValidationCode = "invalid_format"
	CodeInvalidReference    ValidationCode = "invalid_reference"
	CodeMissingSectionAsset ValidationCode = "missing_section_asset"
)

// ValidationError represents a rejected create/update payload. Fields
// pinpoints the offending input fields where feasible.
type ValidationError struct {
	Code   ValidationCode
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation failed (%s)", e.Code)
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingFields(fields ...string) *ValidationError {
	return &ValidationError{Code: CodeMissingField, Fields: fields}
}

func invalidFormat(field string, err error) *ValidationError {
	return &ValidationError{Code: CodeInvalidFormat, Fields: []string{field}, Err: err}
}

func invalidReference(field string) *ValidationError {
	return &ValidationError{Code: CodeInvalidReference, Fields: []string{field}}
}

func missingSectionAsset(field string) *ValidationError {
	return &ValidationError{Code: CodeMissingSectionAsset, Fields: []string{field}}
}

// UploadError represents a failed asset upload or transformation. Asset
// names the request input that was being processed (e.g. "mainImage",
// "section_images[2]").
type UploadError struct {
	Asset string
	Op    string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("asset operation %s failed for %s: %v", e.Op, e.Asset, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
