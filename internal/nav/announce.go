package nav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/screenreader/core/internal/vbuffer"
)

// VerbosityProfile is the eight independent boolean flags of spec §3/§4.14
// controlling which announcement fields are emitted.
type VerbosityProfile struct {
	HeadingLevel bool
	LandmarkType bool
	ControlType  bool
	Visited      bool
	Required     bool
	Expanded     bool
	PositionInfo bool
	Description  bool
}

// Verbosity is one of the three fixed profiles (spec §4.14).
type Verbosity int

const (
	Beginner Verbosity = iota
	Intermediate
	Advanced
)

var verbosityNames = map[Verbosity]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
}

// String renders v using the settings-file spelling (spec §6).
func (v Verbosity) String() string {
	return verbosityNames[v]
}

// MarshalText implements encoding.TextMarshaler so Verbosity round-trips
// through the settings JSON file as one of "Beginner"/"Intermediate"/
// "Advanced" (spec §6), matching the teacher's OnCancelBehavior pattern
// (config.go).
func (v Verbosity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verbosity) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "Beginner":
		*v = Beginner
	case "Intermediate":
		*v = Intermediate
	case "Advanced":
		*v = Advanced
	default:
		return fmt.Errorf("invalid verbosity level %q", s)
	}
	return nil
}

// verbosityProfiles is the fixed table from spec §4.14.
var verbosityProfiles = map[Verbosity]VerbosityProfile{
	Beginner: {
		HeadingLevel: true, LandmarkType: true, ControlType: true,
		Visited: true, Required: true, Expanded: true,
		PositionInfo: true, Description: true,
	},
	Intermediate: {
		HeadingLevel: true, LandmarkType: false, ControlType: true,
		Visited: true, Required: true, Expanded: true,
		PositionInfo: false, Description: false,
	},
	Advanced: {
		HeadingLevel: false, LandmarkType: false, ControlType: false,
		Visited: false, Required: false, Expanded: true,
		PositionInfo: false, Description: false,
	},
}

// ProfileFor returns the fixed VerbosityProfile for v.
func ProfileFor(v Verbosity) VerbosityProfile {
	return verbosityProfiles[v]
}

// PositionInfo is supplied by the caller (the builder itself has no notion
// of "Nth of M siblings/headings"); empty means omit.
type PositionInfo struct {
	Index int
	Total int
}

// Describe builds the comma-joined announcement string for node under
// profile, in the fixed order of spec §4.14:
//
//	[heading level N] [LANDMARK landmark] <name> [control_type] [visited]
//	[required] [expanded|collapsed]
//
// Redundancy rule: if heading level was emitted, control-type "heading" is
// suppressed. Blank fields are skipped. description and position, when
// emitted, are not given a fixed slot in the spec's ordering example and
// are appended after the fixed fields when their flags are set.
func Describe(n *vbuffer.Node, profile VerbosityProfile, pos PositionInfo, description string) string {
	var parts []string

	headingEmitted := false
	if profile.HeadingLevel && n.IsHeading() {
		parts = append(parts, "heading level "+strconv.Itoa(n.HeadingLevel))
		headingEmitted = true
	}
	if profile.LandmarkType && n.LandmarkType != "" {
		parts = append(parts, strings.ToUpper(n.LandmarkType))
	}
	if n.Name != "" {
		parts = append(parts, n.Name)
	}
	if profile.ControlType && n.ControlType != "" {
		if !(headingEmitted && strings.EqualFold(n.ControlType, "heading")) {
			parts = append(parts, n.ControlType)
		}
	}
	if profile.Visited && n.VisitedFlag {
		parts = append(parts, "visited")
	}
	if profile.Required && n.RequiredFlag {
		parts = append(parts, "required")
	}
	if profile.Expanded && n.ExpandableFlag {
		if n.ExpandedFlag {
			parts = append(parts, "expanded")
		} else {
			parts = append(parts, "collapsed")
		}
	}
	if profile.Description && description != "" {
		parts = append(parts, description)
	}
	if profile.PositionInfo && pos.Total > 0 {
		parts = append(parts, strconv.Itoa(pos.Index)+" of "+strconv.Itoa(pos.Total))
	}

	return strings.Join(parts, ", ")
}
