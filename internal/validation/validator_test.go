package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pngalemo/portfolio/internal/apperr"
)

type sample struct {
	Title string   `json:"title" validate:"required"`
	Tags  []string `json:"tags" validate:"dive,required"`
	Score int      `json:"score" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "ok", Tags: []string{"go"}}))
}

func TestStruct_ReportsJSONNames(t *testing.T) {
	err := Struct(sample{Tags: []string{"go", ""}, Score: -1})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "tags[1] is required")
	assert.Contains(t, err.Error(), "score must be at least 0")
}

func TestStructFor_AppendsSubject(t *testing.T) {
	err := StructFor(sample{Tags: nil}, "Experience entries")
	require.Error(t, err)
	assert.Equal(t, "title is required for Experience entries", err.Error())
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
