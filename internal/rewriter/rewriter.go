package rewriter

import (
	"bytes"
	"errors"
	"net/url"
	"path"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/internal/naming"
	"github.com/rohmanhakim/page-loader/pkg/failure"
	"github.com/rohmanhakim/page-loader/pkg/urlutil"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse the page leniently into a DOM tree
- Find every img, script and link element carrying a reference
- Point local references at their mirrored copies
- Report which source URL ends up at which local path

Rewrite Rules
- Cross-origin references stay exactly as they were
- The same source URL always maps to the same local path
- The tree is mutated in place and serialized once at the end

Malformed markup is never an error: the HTML5 tree builder repairs it.
*/

type MarkupRewriter struct {
	metadataSink metadata.MetadataSink
}

func NewMarkupRewriter(
	metadataSink metadata.MetadataSink,
) MarkupRewriter {
	return MarkupRewriter{
		metadataSink: metadataSink,
	}
}

func (m *MarkupRewriter) Rewrite(
	htmlBytes []byte,
	rootURL url.URL,
	resourceDirName string,
	names *naming.Registry,
) (RewriteResult, failure.ClassifiedError) {
	result, err := m.rewrite(htmlBytes, rootURL, resourceDirName, names)
	if err != nil {
		var rewriteError *RewriteError
		errors.As(err, &rewriteError)
		m.metadataSink.RecordError(
			time.Now(),
			"rewriter",
			"MarkupRewriter.Rewrite",
			mapRewriteErrorToMetadataCause(rewriteError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, rootURL.String()),
			},
		)
		return RewriteResult{}, rewriteError
	}
	return result, nil
}

func (m *MarkupRewriter) rewrite(
	htmlBytes []byte,
	rootURL url.URL,
	resourceDirName string,
	names *naming.Registry,
) (RewriteResult, error) {
	root, err := html.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return RewriteResult{}, &RewriteError{
			Message: err.Error(),
			Cause:   ErrCauseReadFailure,
		}
	}

	resources := make(ResourceMap)
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(resourceSelector).Each(func(_ int, s *goquery.Selection) {
		kind, ok := tagKindOf(goquery.NodeName(s))
		if !ok {
			return
		}
		attr := kind.Attribute()
		raw, _ := s.Attr(attr)

		source, local := urlutil.ResolveLocal(rootURL, raw)
		if !local {
			m.metadataSink.RecordSkip(
				"rewriter",
				"reference is not local",
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrURL, raw),
					metadata.NewAttr(metadata.AttrTag, kind.String()),
					metadata.NewAttr(metadata.AttrAttribute, attr),
				},
			)
			return
		}

		localPath := path.Join(resourceDirName, names.Assign(source))
		s.SetAttr(attr, localPath)

		key := source.String()
		if _, seen := resources[key]; !seen {
			resources[key] = localPath
		}
	})

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return RewriteResult{}, &RewriteError{
			Message: err.Error(),
			Cause:   ErrCauseRenderFailure,
		}
	}

	return NewRewriteResult(buf.Bytes(), resources), nil
}
