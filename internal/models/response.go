package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ListData wraps a list result.
type ListData struct {
	List       interface{} `json:"list"`
	LimitCount int         `json:"limitCount"`
}

// EntryData wraps a single result.
type EntryData struct {
	Entry interface{} `json:"entry"`
}

func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewListResponse wraps list with its element count.
func NewListResponse(list interface{}, count int) ResponseModel {
	return NewOKResponse(ListData{List: list, LimitCount: count})
}

func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}
