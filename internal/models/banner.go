package models

type Banner struct {
	Base
	Title     string `json:"title,omitempty"`
	Subtitle  string `json:"subtitle,omitempty"`
	ImageURL  string `gorm:"not null" json:"imageUrl"`
	TargetURL string `json:"targetUrl,omitempty"`
	Position  int    `gorm:"not null;index" json:"position"`
	Active    bool   `gorm:"not null" json:"active"`
}
