package access

import "strings"

// controlTypeNames maps platform control-type ids (spec §4.8: "integers
// 50000-50040") to short strings. Only a representative subset of the
// UIA control-type range is named; callers fall back to "Unknown".
var controlTypeNames = map[int]string{
	50000: "Button",
	50001: "Calendar",
	50002: "CheckBox",
	50003: "ComboBox",
	50004: "Edit",
	50005: "Hyperlink",
	50006: "Image",
	50007: "ListItem",
	50008: "List",
	50009: "Menu",
	50010: "MenuBar",
	50011: "MenuItem",
	50012: "ProgressBar",
	50013: "RadioButton",
	50014: "ScrollBar",
	50015: "Slider",
	50016: "Spinner",
	50017: "StatusBar",
	50018: "Tab",
	50019: "TabItem",
	50020: "Text",
	50021: "ToolBar",
	50022: "ToolTip",
	50023: "Tree",
	50024: "TreeItem",
	50025: "Custom",
	50026: "Group",
	50027: "Thumb",
	50028: "DataGrid",
	50029: "DataItem",
	50030: "Document",
	50031: "SplitButton",
	50032: "Window",
	50033: "Pane",
	50034: "Header",
	50035: "HeaderItem",
	50036: "Table",
	50037: "TitleBar",
	50038: "Separator",
	50039: "SemanticZoom",
	50040: "AppBar",
}

// ControlTypeName translates a platform control-type id to its short name
// (spec §4.8). Unrecognized ids return "Unknown".
func ControlTypeName(id int) string {
	if name, ok := controlTypeNames[id]; ok {
		return name
	}
	return "Unknown"
}

// landmarkRoles is the fixed eight-entry landmark set (spec §3), keyed by
// lowercased ARIA role name.
var landmarkRoles = map[string]string{
	"banner":        "Banner",
	"complementary": "Complementary",
	"contentinfo":   "Content info",
	"form":          "Form",
	"main":          "Main",
	"navigation":    "Navigation",
	"region":        "Region",
	"search":        "Search",
}

// headingAliases maps the single-role heading aliases ("h1".."h6") to their
// level, per spec §4.8.
var headingAliases = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// ARIAProperties is the parsed form of a node's "key=value" ARIA property
// string (spec §4.8: pairs separated by ';' or ',').
type ARIAProperties map[string]string

// ParseARIAProperties parses the "key=value;key=value" / "key=value,..."
// grammar described in spec §4.8. Malformed pairs (no '=') are skipped.
func ParseARIAProperties(s string) ARIAProperties {
	props := ARIAProperties{}
	for _, pair := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

// Bool reports whether key is present and its value is a recognized truthy
// literal ("true", "1", "yes"); unknown keys yield false (spec §4.8).
func (p ARIAProperties) Bool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Int returns the integer value of key, or 0 if absent or non-numeric.
func (p ARIAProperties) Int(key string) int {
	v, ok := p[key]
	if !ok {
		return 0
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// HeadingLevel derives the heading level (0-6, 0 = not a heading) from an
// ARIA role and its properties (spec §4.8): role "heading" + property
// level=N, or a role alias "h1".."h6".
func HeadingLevel(role string, props ARIAProperties) int {
	role = strings.ToLower(role)
	if level, ok := headingAliases[role]; ok {
		return level
	}
	if role == "heading" {
		level := props.Int("level")
		if level < 0 || level > 6 {
			return 0
		}
		return level
	}
	return 0
}

// LandmarkType derives the landmark type from an ARIA role against the
// fixed eight-entry set (spec §3/§4.8); empty string if role is not a
// landmark role.
func LandmarkType(role string) string {
	return landmarkRoles[strings.ToLower(role)]
}
