package stats

import "time"

// CategoryStats is the per-category breakdown within a project
type CategoryStats struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ImageCount    int    `db:"image_count" json:"imageCount"`
	SelectedCount int    `db:"selected_count" json:"selectedCount"`
}

// ProjectStats aggregates a single project's review progress
type ProjectStats struct {
	ProjectID        string           `json:"projectId"`
	TotalImages      int              `json:"totalImages"`
	SelectedImages   int              `json:"selectedImages"`
	FavoriteImages   int              `json:"favoriteImages"`
	TotalComments    int              `json:"totalComments"`
	StorageUsedBytes int64            `json:"storageUsedBytes"`
	Categories       []*CategoryStats `json:"categories"`
}

// RecentProject is a dashboard line item
type RecentProject struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Status      string    `db:"status" json:"status"`
	ClientName  string    `db:"client_name" json:"clientName"`
	TotalImages int       `db:"total_images" json:"totalImages"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Dashboard aggregates a studio's activity
type Dashboard struct {
	TotalProjects    int              `json:"totalProjects"`
	ActiveProjects   int              `json:"activeProjects"`
	TotalImages      int              `json:"totalImages"`
	TotalClients     int              `json:"totalClients"`
	TotalComments    int              `json:"totalComments"`
	StorageUsedBytes int64            `json:"storageUsedBytes"`
	RecentProjects   []*RecentProject `json:"recentProjects"`
}
