package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostStatus_IsValid(t *testing.T) {
	for _, s := range AllPostStatuses() {
		assert.True(t, s.IsValid(), "status %q phải hợp lệ", s)
	}

	invalid := []PostStatus{"", "new", "APPROVED", "Pending", "Deleted"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "status %q phải bị từ chối", s)
	}
}

func TestPostPatch_IsEmpty(t *testing.T) {
	assert.True(t, PostPatch{}.IsEmpty())

	status := StatusApproved
	assert.False(t, PostPatch{Status: &status}.IsEmpty())

	draft := "bản nháp"
	assert.False(t, PostPatch{Draft: &draft}.IsEmpty())

	assert.False(t, PostPatch{AnalysisResult: map[string]interface{}{"score": 1}}.IsEmpty())
}
