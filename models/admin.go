package models

// AdminStats backs the admin dashboard.
type AdminStats struct {
	TotalPayment  float64 `json:"totalPayment"`
	TotalGuides   int64   `json:"totalGuides"`
	TotalPackages int64   `json:"totalPackages"`
	TotalClients  int64   `json:"totalClients"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalStories  int64   `json:"totalStories"`
}
