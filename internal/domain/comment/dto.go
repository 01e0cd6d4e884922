package comment

// CreateCommentRequest is the payload for creating a comment
type CreateCommentRequest struct {
	Body       string  `json:"body" validate:"required,max=5000"`
	ParentID   *string `json:"parentId"`
	AuthorName *string `json:"authorName" validate:"omitempty,max=200"`
}

// Thread is a comment with its replies nested under it
type Thread struct {
	Comment
	Replies []*Thread `json:"replies"`
}
