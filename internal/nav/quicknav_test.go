package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/vbuffer"
)

func sampleHeadingDoc() *vbuffer.Document {
	nodes := []*vbuffer.Node{
		{ID: 0, Name: "root"},
		{ID: 1, Name: "H1", HeadingLevel: 1},
		{ID: 2, Name: "body"},
		{ID: 3, Name: "H2", HeadingLevel: 2},
	}
	headings := vbuffer.NewIndex()
	headings.Add(1)
	headings.Add(3)
	return &vbuffer.Document{
		Nodes:             nodes,
		Headings:          headings,
		Links:             vbuffer.NewIndex(),
		Landmarks:         vbuffer.NewIndex(),
		FocusableElements: vbuffer.NewIndex(),
		FormFields:        vbuffer.NewIndex(),
	}
}

func TestNextHeadingFindsNextEntry(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindHeading, 0, false, AcceptAll)
	assert.Equal(t, "H1", r.Node.Name)
	assert.Equal(t, CueNone, r.Cue)
}

func TestNextHeadingFromOnAnIndexEntrySkipsIt(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindHeading, 1, false, AcceptAll)
	assert.Equal(t, "H2", r.Node.Name)
}

func TestNextHeadingNoMoreIsBoundaryWithoutWrap(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindHeading, 3, false, AcceptAll)
	assert.Nil(t, r.Node)
	assert.Equal(t, CueBoundary, r.Cue)
}

func TestNextHeadingWrapsToStart(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindHeading, 3, true, AcceptAll)
	assert.Equal(t, "H1", r.Node.Name)
	assert.Equal(t, CueWrap, r.Cue)
}

func TestPrevHeadingFindsPriorEntry(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Prev(doc, KindHeading, 3, false, AcceptAll)
	assert.Equal(t, "H1", r.Node.Name)
}

func TestHeadingLevelPredicateFiltersByLevel(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindHeading, 0, false, HeadingLevel(2))
	assert.Equal(t, "H2", r.Node.Name)
}

func TestTableKindAlwaysBoundary(t *testing.T) {
	doc := sampleHeadingDoc()
	r := Next(doc, KindTable, 0, true, AcceptAll)
	assert.Equal(t, CueBoundary, r.Cue)
}
