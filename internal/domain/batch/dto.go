package batch

import "time"

// Action types accepted by the reconciliation endpoint
const (
	ActionSelect   = "select"
	ActionFavorite = "favorite"
	ActionComment  = "comment"
	ActionApprove  = "approve"
	ActionDownload = "download"
)

// Action is one queued client action replayed against the server
type Action struct {
	ClientActionID string                 `json:"clientActionId" validate:"required,max=128"`
	ActionType     string                 `json:"actionType" validate:"required,action_type"`
	PhotoID        *string                `json:"photoId"`
	ProjectID      *string                `json:"projectId"`
	Payload        map[string]interface{} `json:"payload"`
	Timestamp      *time.Time             `json:"timestamp"`
}

// Request is the payload for POST /actions/batch
type Request struct {
	Actions []Action `json:"actions" validate:"required,min=1,dive"`
}

// Failure records why one action was rejected
type Failure struct {
	ClientActionID string `json:"clientActionId"`
	Reason         string `json:"reason"`
}

// Metadata summarizes a processed batch
type Metadata struct {
	ProcessedCount int `json:"processed_count"`
	TotalCount     int `json:"total_count"`
}

// Response is returned by POST /actions/batch. Accepted lists the
// clientActionIds that committed. Failures never fail the request; the
// batch always answers 200.
type Response struct {
	Accepted []string  `json:"accepted"`
	Failed   []Failure `json:"failed"`
	Metadata Metadata  `json:"metadata"`
}
