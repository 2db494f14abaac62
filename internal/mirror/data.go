package mirror

// MirrorResult describes a completed run. A run that returns a result
// always produced the index page; resources may still have been skipped.
type MirrorResult struct {
	indexPagePath    string
	savedResources   int
	skippedResources int
}

// IndexPagePath is the path of the rewritten page, under the output directory.
func (r MirrorResult) IndexPagePath() string {
	return r.indexPagePath
}

func (r MirrorResult) SavedResources() int {
	return r.savedResources
}

func (r MirrorResult) SkippedResources() int {
	return r.skippedResources
}
