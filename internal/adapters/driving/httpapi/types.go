package httpapi

import "time"

type askRequest struct {
	SessionID string `form:"session_id"`
	Text      string `form:"text,optional"`
}

type askVoiceRequest struct {
	SessionID string `form:"session_id"`
	Stream    bool   `form:"stream,optional"`
}

type ttsRequest struct {
	Text string `form:"text"`
}

type historyRequest struct {
	SessionID string `path:"session_id"`
}

type staticRequest struct {
	Name string `path:"name"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type ingestResponse struct {
	Status         string `json:"status"`
	IngestedChunks int    `json:"ingested_chunks"`
}

type textResponse struct {
	Text string `json:"text"`
}

type exportResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

type askVoiceResponse struct {
	UserText string `json:"user_text"`
	RespText string `json:"resp_text"`
	AudioURL string `json:"audio_url"`
}

type historyEntry struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}
