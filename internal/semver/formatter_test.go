package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	v := Version{major: 1, minor: 2, patch: 3}
	tests := []struct {
		name string
		v    Version
		tmpl string
		want string
	}{
		{"full template, no prerelease or build", v, "v{major}.{minor}.{patch}-{prerelease}+{build}", "v1.2.3"},
		{"compact form", v, "CC.CC.CC", "1.2.3"},
		{"compact form case insensitive", v, "cc.cc.cc", "1.2.3"},
		{"prerelease present, no build", v.WithPrerelease(Prerelease{Label: "alpha", Counter: 1}), "v{major}.{minor}.{patch}-{prerelease}+{build}", "v1.2.3-alpha.1"},
		{"build present, no prerelease", v.WithBuild("abc1234"), "v{major}.{minor}.{patch}-{prerelease}+{build}", "v1.2.3+abc1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.v, tt.tmpl))
		})
	}
}
