package models

type Testimonial struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
}

// ClampedRating keeps the star count inside 0..5.
func (t Testimonial) ClampedRating() int {
	switch {
	case t.Rating < 0:
		return 0
	case t.Rating > 5:
		return 5
	default:
		return t.Rating
	}
}
