package tmux

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// Version returns the tmux version reported by tmux -V.
func (c *Client) Version(ctx context.Context) (*semver.Version, string, error) {
	out, err := c.run(ctx, "-V")
	if err != nil {
		return nil, "", err
	}
	v, err := ParseVersion(out)
	if err != nil {
		return nil, out, err
	}
	return v, out, nil
}

// ParseVersion extracts major.minor from output like "tmux 3.3a" or "tmux next-3.4".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return nil, fmt.Errorf("unrecognized tmux version: %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(m[1] + "." + m[2] + ".0")
}

// SupportsPopup reports whether v has display-popup (tmux 3.2+).
func SupportsPopup(v *semver.Version) bool {
	if v == nil {
		return false
	}
	return !v.LessThan(semver.MustParse("3.2.0"))
}
