package posts

// Post is a single blog post as returned by the remote resource.
// Immutable once received.
type Post struct {
	UserID int    `json:"userId" validate:"gte=0"`
	ID     int    `json:"id" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body"`
}

// Posts is an ordered collection of posts, in the order returned by the
// remote resource.
type Posts []Post

// IDs returns the post ids in collection order.
func (ps Posts) IDs() []int {
	ids := make([]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

// WithIDBelow returns a predicate keeping posts whose id is strictly
// below limit.
func WithIDBelow(limit int) func(Post) bool {
	return func(p Post) bool {
		return p.ID < limit
	}
}
