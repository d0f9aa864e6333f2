// Package version reports the syscli build version.
package version

import "runtime/debug"

// Version is the release number, set at build time with
// -ldflags "-X syscli/internal/version.Version=1.2.3".
var Version = "dev"

// String returns Version followed by the short VCS revision when the binary carries one,
// e.g. "1.2.3 (4f2a9c1)". It is never empty.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if rev := revision(); rev != "" {
		v += " (" + rev + ")"
	}
	return v
}

// revision returns the first seven characters of the embedded vcs.revision, if any.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
