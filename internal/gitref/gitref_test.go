package gitref

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sha      string
		wantKind Kind
		wantName string
	}{
		{
			name:     "branch ref",
			raw:      "refs/heads/main",
			wantKind: KindBranch,
			wantName: "main",
		},
		{
			name:     "branch ref with slashes",
			raw:      "refs/heads/feature/tags",
			wantKind: KindBranch,
			wantName: "feature/tags",
		},
		{
			name:     "tag ref",
			raw:      "refs/tags/v1.2.3",
			wantKind: KindTag,
			wantName: "v1.2.3",
		},
		{
			name:     "rmapi release tag",
			raw:      "refs/tags/v1.5.2-rmapi0.30.0-mitchell.1",
			wantKind: KindTag,
			wantName: "v1.5.2-rmapi0.30.0-mitchell.1",
		},
		{
			name:     "merge ref is unknown",
			raw:      "refs/pull/7/merge",
			wantKind: KindUnknown,
			wantName: "pull/7/merge",
		},
		{
			name:     "bare name is unknown",
			raw:      "main",
			wantKind: KindUnknown,
			wantName: "main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw, tt.sha)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.raw, got.Raw)
		})
	}
}

func TestShortSHA(t *testing.T) {
	r := Parse("refs/heads/main", "0123456789abcdef0123456789abcdef01234567")
	assert.Equal(t, "0123456789ab", r.ShortSHA())

	short := Parse("refs/heads/main", "abc123")
	assert.Equal(t, "abc123", short.ShortSHA())

	none := Parse("refs/heads/main", "")
	assert.Equal(t, "", none.ShortSHA())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "branch", KindBranch.String())
	assert.Equal(t, "tag", KindTag.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

// initTestRepo creates a repository with a single commit and returns it
// along with the commit hash.
func initTestRepo(t *testing.T) (*gogit.Repository, string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))
	_, err = wt.Add("Dockerfile")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return repo, dir, hash
}

func TestFromRepoBranch(t *testing.T) {
	repo, dir, hash := initTestRepo(t)

	head, err := repo.Head()
	require.NoError(t, err)

	ref, err := FromRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, KindBranch, ref.Kind)
	assert.Equal(t, head.Name().Short(), ref.Name)
	assert.Equal(t, hash.String(), ref.SHA)
}

func TestFromRepoTagWinsOverBranch(t *testing.T) {
	repo, dir, hash := initTestRepo(t)

	_, err := repo.CreateTag("v1.2.3", hash, nil)
	require.NoError(t, err)

	ref, err := FromRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, KindTag, ref.Kind)
	assert.Equal(t, "v1.2.3", ref.Name)
	assert.Equal(t, "refs/tags/v1.2.3", ref.Raw)
	assert.Equal(t, hash.String(), ref.SHA)
}

func TestFromRepoNotARepository(t *testing.T) {
	_, err := FromRepo(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}
