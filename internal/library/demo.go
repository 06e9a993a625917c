package library

import "github.com/playsv/playsv/internal/models"

// DemoCatalog returns the fixed catalog rendered when the server cannot be
// reached. A fresh slice is returned each call so callers can mutate freely.
func DemoCatalog() []models.Video {
	return []models.Video{
		{
			ID:        1,
			Title:     "Big Buck Bunny",
			Filename:  "big_buck_bunny.mp4",
			Duration:  "9:56",
			Thumbnail: "/placeholder.jpg",
		},
		{
			ID:        2,
			Title:     "Elephants Dream",
			Filename:  "elephants_dream.mp4",
			Duration:  "10:53",
			Thumbnail: "/placeholder.jpg",
		},
		{
			ID:        3,
			Title:     "Sintel",
			Filename:  "sintel.mp4",
			Duration:  "14:48",
			Thumbnail: "/placeholder.jpg",
		},
		{
			ID:        4,
			Title:     "Tears of Steel",
			Filename:  "tears_of_steel.mp4",
			Duration:  "12:14",
			Thumbnail: "/placeholder.jpg",
		},
	}
}
