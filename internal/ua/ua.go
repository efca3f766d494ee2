// internal/ua/ua.go
//
// User-Agent helpers.
//
// Two concerns live here:
//
//   - IsScript classifies a request as coming from a command-line HTTP
//     client.  It is the only signal that selects between the plain-text
//     and HTML renderings of the report page.
//   - Parse isolates the third-party `github.com/avct/uasurfer` API so the
//     rest of the codebase never sees its enums or structs.  The result is
//     shown as a device summary on the HTML page only.
package ua

import (
	"fmt"
	"strconv"
	"strings"

	surfer "github.com/avct/uasurfer"
)

// scriptToken is the literal that marks a command-line client.
const scriptToken = "curl"

// IsScript reports whether raw contains "curl", ignoring case.  An empty
// header is browser-like.
func IsScript(raw string) bool {
	return strings.Contains(strings.ToLower(raw), scriptToken)
}

// Class returns "script" or "browser" for metric and log labels.
func Class(raw string) string {
	if IsScript(raw) {
		return "script"
	}
	return "browser"
}

// Info carries the UA attributes shown on the HTML report.
//
// Example (Chrome on macOS):
//
//	Browser   "Chrome"
//	Version   "125.0.6422"
//	OS        "MacOSX"
//	OSVersion "14.4"
//	Device    "Desktop"
//	Platform  "Mac"
//	IsBot     false
//
// Device will be one of: "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser   string
	Version   string
	OS        string
	OSVersion string
	Device    string
	Platform  string
	IsBot     bool
}

// Parse converts a raw header into an Info struct.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser:   strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version:   versionToString(u.Browser.Version),
		OS:        strings.TrimPrefix(u.OS.Name.String(), "OS"),
		OSVersion: versionToString(u.OS.Version),
		Platform:  strings.TrimPrefix(u.OS.Platform.String(), "Platform"),
		IsBot:     u.IsBot(),
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	return info
}

// Summary renders "Chrome 125.0.6422 · MacOSX 14.4 · Desktop", skipping
// unknown parts.
func (i Info) Summary() string {
	var parts []string
	if s := join(i.Browser, i.Version); s != "" && i.Browser != "Unknown" {
		parts = append(parts, s)
	}
	if s := join(i.OS, i.OSVersion); s != "" && i.OS != "Unknown" {
		parts = append(parts, s)
	}
	if i.Device != "" {
		parts = append(parts, i.Device)
	}
	return strings.Join(parts, " · ")
}

func join(name, version string) string {
	if version == "" {
		return name
	}
	return name + " " + version
}

// versionToString renders a semantic version in dotted form while trimming
// trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
