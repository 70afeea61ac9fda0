// Package posts fetches blog posts from a remote JSON API and exposes the
// result as a single-emission stream producer.
//
// FetchPosts returns an inert producer: no network activity happens until a
// subscriber attaches, and each subscription issues its own independent GET.
// The raw payload is validated against the Post shape before emission, so a
// body that decodes but does not look like a post collection is surfaced on
// the error channel rather than delivered.
//
//	svc := posts.NewService(client, log)
//	svc.FetchPostsBelow(10).Subscribe(ctx, stream.Subscriber[posts.Posts]{
//	    OnValue: render,
//	    OnError: func(err error) { log.Error("fetch failed", logger.ErrorFields("fetch", err)) },
//	})
package posts
