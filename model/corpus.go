package model

// Corpus is the run state of one pipeline invocation: the loaded node
// collections plus the documents and chunks derived from them. A Corpus
// belongs to exactly one run, is populated stage by stage and is not safe
// for concurrent invocations; a second run gets its own instance.
type Corpus struct {
	Recipes      []*GraphNode
	Ingredients  []*GraphNode
	CookingSteps []*GraphNode

	Documents []*RecipeDocument
	Chunks    []*Chunk
}

// NewCorpus creates an empty corpus for a new pipeline run.
func NewCorpus() *Corpus {
	return &Corpus{}
}
