package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/vbuffer"
)

func TestDescribeBeginnerProfileEmitsAllFields(t *testing.T) {
	n := &vbuffer.Node{
		Name:           "Search",
		ControlType:    "Edit",
		HeadingLevel:   0,
		LandmarkType:   vbuffer.LandmarkSearch,
		VisitedFlag:    true,
		RequiredFlag:   true,
		ExpandableFlag: true,
		ExpandedFlag:   false,
	}

	got := Describe(n, ProfileFor(Beginner), PositionInfo{}, "")
	assert.Equal(t, "SEARCH, Search, Edit, visited, required, collapsed", got)
}

func TestDescribeAdvancedProfileSuppressesMostFields(t *testing.T) {
	n := &vbuffer.Node{
		Name:           "Search",
		ControlType:    "Edit",
		LandmarkType:   vbuffer.LandmarkSearch,
		VisitedFlag:    true,
		ExpandableFlag: true,
		ExpandedFlag:   true,
	}

	got := Describe(n, ProfileFor(Advanced), PositionInfo{}, "")
	assert.Equal(t, "Search, expanded", got)
}

func TestDescribeHeadingSuppressesRedundantControlType(t *testing.T) {
	n := &vbuffer.Node{
		Name:         "Section",
		ControlType:  "heading",
		HeadingLevel: 2,
	}

	got := Describe(n, ProfileFor(Intermediate), PositionInfo{}, "")
	assert.Equal(t, "heading level 2, Section", got)
}

func TestDescribeSkipsBlankFields(t *testing.T) {
	n := &vbuffer.Node{Name: "Plain"}
	got := Describe(n, ProfileFor(Advanced), PositionInfo{}, "")
	assert.Equal(t, "Plain", got)
}
