package domain_test

import (
	"testing"

	"github.com/adar-commits/quotes/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApprovalStatus_IsValid(t *testing.T) {
	valid := []domain.ApprovalStatus{
		domain.ApprovalStatusApproved,
		domain.ApprovalStatusAlternative,
		domain.ApprovalStatusRejected,
	}
	for _, status := range valid {
		assert.True(t, status.IsValid(), "status %q should be valid", status)
	}

	invalid := []domain.ApprovalStatus{"", "maybe", "APPROVED", "Approved", "approved "}
	for _, status := range invalid {
		assert.False(t, status.IsValid(), "status %q should be invalid", status)
	}
}
