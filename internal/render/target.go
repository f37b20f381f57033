package render

import (
	"fmt"
	"strings"
)

// Target is a deployment destination. It selects the default backend and
// constrains what a render may produce there.
type Target int

const (
	// TargetGitHub is a README rendered by github.com; remote image
	// references work, generated files are allowed but not preferred.
	TargetGitHub Target = iota
	// TargetLocal is documentation served from the repository itself;
	// generated SVG files are the default.
	TargetLocal
	// TargetNPM is a package README on npmjs.com, which strips relative
	// file references; no artifacts may be produced.
	TargetNPM
)

// String returns the lowercase target name.
func (t Target) String() string {
	switch t {
	case TargetGitHub:
		return "github"
	case TargetLocal:
		return "local"
	case TargetNPM:
		return "npm"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ParseTarget converts a target name to a Target.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "github":
		return TargetGitHub, nil
	case "local":
		return TargetLocal, nil
	case "npm":
		return TargetNPM, nil
	default:
		return 0, fmt.Errorf("unknown target %q (valid: github, local, npm)", s)
	}
}

// DefaultBackend returns the backend a target renders with when no override
// is given.
func (t Target) DefaultBackend() Backend {
	switch t {
	case TargetLocal:
		return BackendSVG
	case TargetGitHub, TargetNPM:
		return BackendShields
	default:
		return BackendShields
	}
}

// AllowsArtifacts reports whether generated files may accompany the output
// document for this target.
func (t Target) AllowsArtifacts() bool {
	return t != TargetNPM
}
