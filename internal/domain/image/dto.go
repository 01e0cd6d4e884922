package image

// UpdateImageRequest is the payload for partial image updates
type UpdateImageRequest struct {
	IsSelected *bool     `json:"isSelected"`
	IsFavorite *bool     `json:"isFavorite"`
	Rating     *int      `json:"rating" validate:"omitempty,min=0,max=5"`
	CategoryID *string   `json:"categoryId"`
	Tags       *[]string `json:"tags" validate:"omitempty,dive,min=1,max=100"`
}

// ListFilter narrows image listings. Category accepts a category id or
// the sentinels "all" and "uncategorized".
type ListFilter struct {
	Category string
	Offset   int
	Limit    int
}

// Detail is an image with its storage URLs, versions and tag names
type Detail struct {
	Image
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Versions     []*Version `json:"versions"`
	Tags         []string   `json:"tags"`
}
