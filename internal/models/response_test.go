package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	testData := map[string]string{"key": "value"}

	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusCreated, testData, "Resource Created")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusCreated, response.Code)
	assert.Equal(t, testData, response.Data)
	assert.Equal(t, "Resource Created", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	testData := map[string]string{"status": "all good"}

	response := NewOKResponse(testData)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, testData, response.Data)
}

func TestNewListResponse(t *testing.T) {
	items := []string{"item1", "item2"}

	response := NewListResponse(items, len(items))

	data, ok := response.Data.(ListData)
	assert.True(t, ok)
	assert.Equal(t, items, data.List)
	assert.Equal(t, 2, data.LimitCount)
}

func TestNewEntryResponse(t *testing.T) {
	entry := map[string]string{"id": "1"}

	response := NewEntryResponse(entry)

	data, ok := response.Data.(EntryData)
	assert.True(t, ok)
	assert.Equal(t, entry, data.Entry)
}
