package elementslist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/vbuffer"
)

func sampleDoc() *vbuffer.Document {
	nodes := []*vbuffer.Node{
		{ID: 0, Name: "Intro", HeadingLevel: 1},
		{ID: 1, Name: "Home", ControlType: "Hyperlink", LinkFlag: true},
		{ID: 2, Name: "", ControlType: "Button", LinkFlag: true},
		{ID: 3, Name: "Search", LandmarkType: vbuffer.LandmarkSearch},
		{ID: 4, LandmarkType: vbuffer.LandmarkMain},
		{ID: 5, Name: "Email", ControlType: "Edit"},
	}
	headings := vbuffer.NewIndex()
	headings.Add(0)
	links := vbuffer.NewIndex()
	links.Add(1)
	links.Add(2)
	landmarks := vbuffer.NewIndex()
	landmarks.Add(3)
	landmarks.Add(4)
	formFields := vbuffer.NewIndex()
	formFields.Add(5)

	return &vbuffer.Document{
		Nodes:             nodes,
		Headings:          headings,
		Links:             links,
		Landmarks:         landmarks,
		FormFields:        formFields,
		FocusableElements: vbuffer.NewIndex(),
	}
}

func TestDisplayTextHeading(t *testing.T) {
	n := &vbuffer.Node{Name: "Intro", HeadingLevel: 1}
	assert.Equal(t, "H1: Intro", DisplayText(TabHeadings, n))
}

func TestDisplayTextLandmarkWithAndWithoutName(t *testing.T) {
	named := &vbuffer.Node{Name: "Search", LandmarkType: vbuffer.LandmarkSearch}
	assert.Equal(t, "Search: Search", DisplayText(TabLandmarks, named))

	unnamed := &vbuffer.Node{LandmarkType: vbuffer.LandmarkMain}
	assert.Equal(t, "Main", DisplayText(TabLandmarks, unnamed))
}

func TestDisplayTextPrefersNameElseControlType(t *testing.T) {
	named := &vbuffer.Node{Name: "Home"}
	assert.Equal(t, "Home", DisplayText(TabLinks, named))

	unnamed := &vbuffer.Node{ControlType: "Button"}
	assert.Equal(t, "[Button]", DisplayText(TabLinks, unnamed))
}

func TestEntriesListsTabInDocumentOrder(t *testing.T) {
	doc := sampleDoc()
	entries := Entries(doc, TabLinks)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Home", entries[0].Display)
	assert.Equal(t, "[Button]", entries[1].Display)
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	doc := sampleDoc()
	entries := Entries(doc, TabLandmarks)
	filtered := Filter(entries, "sea")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Search: Search", filtered[0].Display)
}

func TestFilterEmptyReturnsAllUnchanged(t *testing.T) {
	doc := sampleDoc()
	entries := Entries(doc, TabFormFields)
	assert.Equal(t, entries, Filter(entries, ""))
}
