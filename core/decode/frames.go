// ABOUTME: Frame stack types for the streaming decoder
// ABOUTME: One frame per open element subtree, pushed on start and popped on end

package decode

// attrs is a snapshot of the attributes on one start tag, keyed by
// lowercased local name.
type attrs map[string]string

func (a attrs) get(name string) string {
	return a[name]
}

// leafFunc applies one captured leaf element (its buffered text and its
// start-tag attributes) to the in-progress model.
type leafFunc func(model interface{}, text string, at attrs)

// frameSpec is the immutable per-element-name prototype looked up in the
// dispatch table.
type frameSpec struct {
	// root marks element names that may open a document
	root bool

	// create allocates and configures a fresh model from the start-tag
	// attributes. A nil create makes this a grouping frame: the parent
	// model is passed through unchanged (categories, tags, ius,
	// platforms).
	create func(at attrs) interface{}

	// leaves maps interior text elements of this frame to setters
	leaves map[string]leafFunc

	// attach binds the completed model into the parent model. The
	// concrete attach target varies by ancestor kind, so attach switches
	// on the parent model type. Returns false when the parent cannot
	// hold this child; the child is then dropped.
	attach func(parent, child interface{}) bool
}

// frame is one entry of the decode stack: the element that opened it, the
// model being built and the attach target chosen when it was pushed.
type frame struct {
	name        string
	model       interface{}
	spec        *frameSpec
	parentModel interface{}
	passthrough bool
}
