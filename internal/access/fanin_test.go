package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlTypeNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Button", ControlTypeName(50000))
	assert.Equal(t, "Unknown", ControlTypeName(1))
}

func TestParseARIAPropertiesBothSeparators(t *testing.T) {
	p := ParseARIAProperties("level=2;required=true,checked=1")
	assert.Equal(t, "2", p["level"])
	assert.True(t, p.Bool("required"))
	assert.True(t, p.Bool("checked"))
	assert.False(t, p.Bool("missing"))
}

func TestHeadingLevelFromRoleAndProperty(t *testing.T) {
	assert.Equal(t, 2, HeadingLevel("heading", ParseARIAProperties("level=2")))
	assert.Equal(t, 3, HeadingLevel("h3", nil))
	assert.Equal(t, 0, HeadingLevel("button", nil))
}

func TestLandmarkTypeKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Navigation", LandmarkType("navigation"))
	assert.Equal(t, "", LandmarkType("button"))
}
