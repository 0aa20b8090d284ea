package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple version", "1.2.3", "1.2.3", false},
		{"with v prefix", "v1.2.3", "1.2.3", false},
		{"with prerelease", "1.2.3-alpha", "1.2.3-alpha", false},
		{"with counted prerelease", "1.2.3-alpha.2", "1.2.3-alpha.2", false},
		{"with build metadata", "1.2.3+abc123", "1.2.3+abc123", false},
		{"with prerelease and build", "1.2.3-rc.1+abc123", "1.2.3-rc.1+abc123", false},
		{"zero version", "0.0.0", "0.0.0", false},
		{"invalid - empty", "", "", true},
		{"invalid - not a version", "foo", "", true},
		{"invalid - missing patch", "1.2", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"major differs", "2.0.0", "1.9.9", 1},
		{"release beats prerelease", "1.0.0", "1.0.0-alpha.1", 1},
		{"prerelease labels lexical", "1.0.0-alpha.1", "1.0.0-rc.1", -1},
		{"prerelease counters numeric", "1.0.0-alpha.2", "1.0.0-alpha.10", -1},
		{"build ignored", "1.0.0+a", "1.0.0+b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := MustParseForTest(t, tt.a)
			b := MustParseForTest(t, tt.b)
			assert.Equalf(t, tt.want, a.Compare(b), "%s.Compare(%s)", tt.a, tt.b)
		})
	}
}

func MustParseForTest(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	require.NoErrorf(t, err, "Parse(%q)", s)
	return v
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	v := Version{major: 1, minor: 2, patch: 3, prerelease: Prerelease{Label: "alpha", Counter: 4}, build: "deadbee"}
	tmpl := "v{major}.{minor}.{patch}-{prerelease}+{build}"
	s := Format(v, tmpl)
	require.Equal(t, "v1.2.3-alpha.4+deadbee", s)

	got, err := Parse(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(v), "round trip mismatch: got %+v, want %+v", got, v)
	assert.Equal(t, v.Build(), got.Build())
}
