package stubapi

import (
	"fmt"

	"github.com/feedkit/feedkit/posts"
)

// SeedPosts returns the fixture collection served by the stub. Ids run from
// 1 to 12 so an id-below-10 filter visibly trims the tail.
func SeedPosts() posts.Posts {
	seeded := make(posts.Posts, 0, 12)
	for i := 1; i <= 12; i++ {
		seeded = append(seeded, posts.Post{
			UserID: (i-1)/6 + 1,
			ID:     i,
			Title:  fmt.Sprintf("post %d title", i),
			Body:   fmt.Sprintf("body of post %d", i),
		})
	}
	return seeded
}
