package fetcher

import (
	"context"
	"net/url"

	"github.com/rohmanhakim/page-loader/pkg/failure"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchUrl url.URL,
	) (FetchResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ Fetcher = (*HttpFetcher)(nil)
