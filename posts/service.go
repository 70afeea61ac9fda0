package posts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedkit/feedkit/httpclient"
	"github.com/feedkit/feedkit/logger"
	"github.com/feedkit/feedkit/stream"
	"github.com/feedkit/feedkit/validation"
)

// postsPath is the resource path appended to the client's base URL.
const postsPath = "posts"

// Service fetches posts through an injected HTTP client.
type Service struct {
	client *httpclient.Client
	log    *logger.Logger
}

// NewService creates a posts service. A nil log falls back to the global
// logger.
func NewService(client *httpclient.Client, log *logger.Logger) *Service {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		client: client,
		log:    log.WithComponent("posts"),
	}
}

// FetchPosts returns an inert producer for the full post collection.
// Each subscription performs exactly one GET against the remote resource;
// there is no caching across activations.
func (s *Service) FetchPosts() *stream.Producer[Posts] {
	return stream.Defer(func(ctx context.Context) (Posts, error) {
		fetchID := uuid.NewString()
		log := s.log.WithFields(logger.Fields(logger.FieldFetchID, fetchID))
		start := time.Now()

		log.Debug("fetching posts")
		result, err := httpclient.Get[Posts](s.client, ctx, postsPath)
		if err != nil {
			log.Error("fetch failed", logger.Fields(
				logger.FieldError, err.Error(),
				logger.FieldStatus, httpclient.StatusCode(err),
			))
			return nil, err
		}

		if err := validation.Validate(result); err != nil {
			// A payload that decodes but does not match the Post shape
			// travels the same channel as an unparseable body.
			err = httpclient.NewDecodeError(err)
			log.Error("fetch returned malformed posts", logger.ErrorFields("fetch", err))
			return nil, err
		}

		log.Info("posts fetched", logger.Fields(
			logger.FieldCount, len(result),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return result, nil
	})
}

// FetchPostsBelow is FetchPosts piped through an id filter: only posts with
// id strictly below limit are delivered, in their original order.
func (s *Service) FetchPostsBelow(limit int) *stream.Producer[Posts] {
	return stream.Pipe(s.FetchPosts(), stream.Filter[Posts](WithIDBelow(limit)))
}
