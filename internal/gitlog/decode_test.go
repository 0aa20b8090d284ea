package gitlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

func record(hash, parents, date, name, email, refs, subject, body string) string {
	return strings.Join([]string{hash, parents, date, name, email, refs, subject, body}, fieldSep)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	raw := record("aaa111", "", "2024-01-01T00:00:00Z", "Ryan", "ryan@example.com", "HEAD -> main", "initial commit", "") +
		recordSep +
		record("bbb222", "aaa111", "2024-01-02T00:00:00Z", "Ryan", "ryan@example.com", "tag: v0.1.0", "feat: add thing", "")

	commits, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "aaa111", commits[0].Hash)
	assert.Empty(t, commits[0].Parents)

	assert.Equal(t, "bbb222", commits[1].Hash)
	require.Len(t, commits[1].Parents, 1)
	assert.Equal(t, "aaa111", commits[1].Parents[0])

	require.Len(t, commits[1].Refs, 1)
	assert.Equal(t, "v0.1.0", commits[1].Refs[0].Name)
	assert.Equal(t, RefTag, commits[1].Refs[0].Kind)

	require.Len(t, commits[0].Refs, 1)
	assert.Equal(t, "main", commits[0].Refs[0].Name)
	assert.Equal(t, RefBranch, commits[0].Refs[0].Kind)
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()
	commits, err := Decode([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, commits)
}

func TestDecodeMalformedRecord(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("aaa111" + fieldSep + "onlytwofields"))
	assert.True(t, ccverrors.IsKind(err, ccverrors.KindParse), "Decode() error = %v, want KindParse", err)
}

func TestDecodeDuplicateHash(t *testing.T) {
	t.Parallel()

	raw := record("aaa111", "", "2024-01-01T00:00:00Z", "Ryan", "ryan@example.com", "", "initial commit", "") +
		recordSep +
		record("aaa111", "", "2024-01-02T00:00:00Z", "Ryan", "ryan@example.com", "", "dup", "")

	_, err := Decode([]byte(raw))
	assert.True(t, ccverrors.IsKind(err, ccverrors.KindParse), "Decode() error = %v, want KindParse", err)
}

func TestDecodeBadTimestamp(t *testing.T) {
	t.Parallel()

	raw := record("aaa111", "", "not-a-date", "Ryan", "ryan@example.com", "", "initial commit", "")
	_, err := Decode([]byte(raw))
	assert.True(t, ccverrors.IsKind(err, ccverrors.KindParse), "Decode() error = %v, want KindParse", err)
}
