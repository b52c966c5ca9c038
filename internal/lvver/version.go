// Package lvver models the four-part version a LabVIEW resource file
// declares for its own format. Almost every branch in the data-fill
// codec consults it: field widths, optional padding bytes and whole
// value encodings changed across releases, and the only way to pick
// the right layout is an ordered comparison against fixed thresholds.
package lvver

import "fmt"

// Version is a four-part file-format version. The zero value (0.0.0.0)
// compares below every real release.
type Version struct {
	Major uint32
	Minor uint32
	Fix   uint32
	Build uint32
}

// New returns the version major.minor.fix.build.
func New(major, minor, fix, build uint32) Version {
	return Version{Major: major, Minor: minor, Fix: fix, Build: build}
}

func (v Version) compare(o Version) int {
	pairs := [4][2]uint32{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Fix, o.Fix},
		{v.Build, o.Build},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v >= major.minor.fix.build.
func (v Version) AtLeast(major, minor, fix, build uint32) bool {
	return v.compare(New(major, minor, fix, build)) >= 0
}

// Below reports whether v < major.minor.fix.build.
func (v Version) Below(major, minor, fix, build uint32) bool {
	return v.compare(New(major, minor, fix, build)) < 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Fix, v.Build)
}
