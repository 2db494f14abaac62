package mirror

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/page-loader/internal/config"
	"github.com/rohmanhakim/page-loader/internal/fetcher"
	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/internal/naming"
	"github.com/rohmanhakim/page-loader/internal/rewriter"
	"github.com/rohmanhakim/page-loader/internal/storage"
	"github.com/rohmanhakim/page-loader/pkg/failure"
)

/*
 Mirror is the sole control-plane authority of a run.

 A run visits exactly one page:
 1. fetch the page
 2. create the resource directory, named after the page URL
 3. rewrite local references to point into that directory
 4. save the rewritten page
 5. fetch and save every referenced resource, one after another

 Failure policy:
 - Steps 1 to 4 are fatal. Nothing is retried.
 - A resource that cannot be fetched or saved is skipped; the run goes on.
 - Pipeline stages detect and classify failures but never decide
   between abort and skip. Only Mirror does.

 Metadata emission is observational only and MUST NOT influence
 control flow.

 Resources are processed sequentially in ascending URL order so that
 repeated runs produce the same log.
*/

type Mirror struct {
	metadataSink    metadata.MetadataSink
	mirrorFinalizer metadata.MirrorFinalizer
	fetcher         fetcher.Fetcher
	rewriter        rewriter.MarkupRewriter
	storage         storage.Storage
}

func NewMirror(cfg config.Config, recorder *metadata.Recorder) Mirror {
	httpFetcher := fetcher.NewHttpFetcher(
		recorder,
		&http.Client{Timeout: cfg.Timeout()},
		cfg.UserAgent(),
	)
	localStorage := storage.NewLocalStorage(recorder, cfg.HashAlgo())
	return Mirror{
		metadataSink:    recorder,
		mirrorFinalizer: recorder,
		fetcher:         &httpFetcher,
		rewriter:        rewriter.NewMarkupRewriter(recorder),
		storage:         &localStorage,
	}
}

// NewMirrorWithDeps creates a Mirror with injected dependencies for testing.
// This constructor allows tests to provide doubles for the network and the
// filesystem to verify control flow without relying on real infrastructure.
func NewMirrorWithDeps(
	mirrorFinalizer metadata.MirrorFinalizer,
	metadataSink metadata.MetadataSink,
	pageFetcher fetcher.Fetcher,
	fileStorage storage.Storage,
) Mirror {
	return Mirror{
		metadataSink:    metadataSink,
		mirrorFinalizer: mirrorFinalizer,
		fetcher:         pageFetcher,
		rewriter:        rewriter.NewMarkupRewriter(metadataSink),
		storage:         fileStorage,
	}
}

// Run mirrors the page at rootURL into outputDir, which must already exist.
// The returned error, when not nil, is always a *MirrorError.
func (m *Mirror) Run(
	ctx context.Context,
	rootURL url.URL,
	outputDir string,
) (MirrorResult, failure.ClassifiedError) {
	startTime := time.Now()

	page, err := m.fetcher.Fetch(ctx, rootURL)
	if err != nil {
		return MirrorResult{}, &MirrorError{Stage: StageFetchPage, Err: err}
	}

	resourceDirName := naming.DirectoryNameFor(rootURL)
	if _, err := m.storage.CreateDirectory(outputDir, resourceDirName); err != nil {
		return MirrorResult{}, &MirrorError{Stage: StageCreateDirectory, Err: err}
	}

	rewritten, err := m.rewriter.Rewrite(page.Body(), rootURL, resourceDirName, naming.NewRegistry())
	if err != nil {
		return MirrorResult{}, &MirrorError{Stage: StageRewritePage, Err: err}
	}

	indexPagePath := filepath.Join(outputDir, naming.FilenameFor(rootURL))
	if err := m.storage.WriteFile(indexPagePath, rewritten.HTML()); err != nil {
		return MirrorResult{}, &MirrorError{Stage: StageWritePage, Err: err}
	}

	resources := rewritten.Resources()
	saved := 0
	for _, source := range resources.SortedURLs() {
		target := filepath.Join(outputDir, filepath.FromSlash(resources[source]))
		if m.mirrorResource(ctx, source, target) {
			saved++
		}
	}
	skipped := len(resources) - saved

	m.mirrorFinalizer.RecordFinalMirrorStats(
		len(resources),
		saved,
		skipped,
		time.Since(startTime),
	)

	return MirrorResult{
		indexPagePath:    indexPagePath,
		savedResources:   saved,
		skippedResources: skipped,
	}, nil
}

// mirrorResource fetches one resource and saves it to target.
// Failures were already recorded by the stage that observed them;
// the resource is skipped either way.
func (m *Mirror) mirrorResource(ctx context.Context, source string, target string) bool {
	sourceURL, parseErr := url.Parse(source)
	if parseErr != nil {
		m.metadataSink.RecordError(
			time.Now(),
			"mirror",
			"Mirror.mirrorResource",
			metadata.CauseUnknown,
			parseErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, source),
			},
		)
		return false
	}

	resource, err := m.fetcher.Fetch(ctx, *sourceURL)
	if err != nil {
		return false
	}

	if err := m.storage.WriteFile(target, resource.Body()); err != nil {
		return false
	}
	return true
}
