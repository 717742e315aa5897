package service

import "errors"

// Common service errors
var (
	// ErrQuoteNotFound is returned when no quote matches the public id
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrLineItemNotFound is returned when a quote has no product at the requested sort order
	ErrLineItemNotFound = errors.New("line item not found")

	// ErrInvalidApprovalStatus is returned for a status outside the approval enum
	ErrInvalidApprovalStatus = errors.New("invalid approval status")

	// ErrTemplateNotFound is returned when a template is not found by id or key
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateKeyExists is returned when creating a template with a taken key
	ErrTemplateKeyExists = errors.New("template key already exists")

	// ErrNoUpdatableFields is returned when a partial update carries no recognized fields
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
)
