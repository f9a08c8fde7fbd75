// Package gitref models the version-control reference that triggered a
// release run.
//
// This is a leaf package: it imports only stdlib and go-git. References
// normally arrive as fully-qualified ref strings from the CI event
// (e.g. "refs/heads/main", "refs/tags/v1.5.2-rmapi0.30.0-mitchell.1");
// for local runs FromRepo derives the same shape from the checkout.
package gitref

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// ErrNotRepository is returned when the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Kind classifies a reference.
type Kind int

const (
	// KindUnknown is a reference that is neither a branch nor a tag
	// (detached HEAD, merge refs, bare names without a refs/ prefix).
	KindUnknown Kind = iota
	// KindBranch is a refs/heads/* reference.
	KindBranch
	// KindTag is a refs/tags/* reference.
	KindTag
)

// String returns the kind as a short lowercase word.
func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

const (
	branchPrefix = "refs/heads/"
	tagPrefix    = "refs/tags/"

	// shortSHALen matches the short digest length Docker uses for
	// commit-derived image tags.
	shortSHALen = 12
)

// Ref is the immutable reference input for a whole release run.
type Ref struct {
	// Raw is the full reference string as received, e.g. "refs/tags/v1.2.3".
	Raw string
	// Kind classifies the reference.
	Kind Kind
	// Name is the ref name without the refs/heads/ or refs/tags/ prefix.
	Name string
	// SHA is the full commit hash, when known. May be empty.
	SHA string
}

// Parse builds a Ref from a raw reference string and an optional commit sha.
// It never fails: unrecognized shapes yield KindUnknown with Name set to the
// input, so substring-based rules still apply while tag/branch-gated rules
// stay disabled.
func Parse(raw, sha string) Ref {
	r := Ref{Raw: raw, SHA: sha}
	switch {
	case strings.HasPrefix(raw, branchPrefix):
		r.Kind = KindBranch
		r.Name = strings.TrimPrefix(raw, branchPrefix)
	case strings.HasPrefix(raw, tagPrefix):
		r.Kind = KindTag
		r.Name = strings.TrimPrefix(raw, tagPrefix)
	default:
		r.Name = strings.TrimPrefix(raw, "refs/")
	}
	return r
}

// IsTag reports whether the reference is a tag.
func (r Ref) IsTag() bool { return r.Kind == KindTag }

// IsBranch reports whether the reference is a branch.
func (r Ref) IsBranch() bool { return r.Kind == KindBranch }

// ShortSHA returns the abbreviated commit hash, or "" when no sha is known.
func (r Ref) ShortSHA() string {
	if len(r.SHA) <= shortSHALen {
		return r.SHA
	}
	return r.SHA[:shortSHALen]
}

// String returns the raw reference string.
func (r Ref) String() string { return r.Raw }

// FromRepo derives the triggering reference from a local checkout.
//
// A tag pointing at HEAD wins over the branch name, mirroring how a tag push
// triggers the pipeline even though the commit is also on a branch. Detached
// HEAD without a matching tag yields a KindUnknown ref carrying only the sha.
func FromRepo(path string) (Ref, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return Ref{}, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return Ref{}, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return Ref{}, fmt.Errorf("resolving HEAD: %w", err)
	}
	sha := head.Hash().String()

	if tagName, ok := tagAt(repo, head.Hash()); ok {
		return Parse(tagPrefix+tagName, sha), nil
	}

	if head.Name() != plumbing.HEAD && head.Name().IsBranch() {
		return Parse(branchPrefix+head.Name().Short(), sha), nil
	}

	// Detached HEAD with no tag: only sha-derived rules can apply.
	return Ref{Raw: sha, Kind: KindUnknown, SHA: sha}, nil
}

// tagAt returns the name of a tag pointing at the given commit, if any.
// Annotated tags are peeled to their target commit before comparison.
func tagAt(repo *gogit.Repository, commit plumbing.Hash) (string, bool) {
	iter, err := repo.Tags()
	if err != nil {
		return "", false
	}
	defer iter.Close()

	var found string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(target); err == nil {
			target = tag.Target
		}
		if target == commit {
			found = ref.Name().Short()
			return errFoundTag
		}
		return nil
	})
	return found, found != ""
}

// errFoundTag stops tag iteration early once a match is found.
var errFoundTag = errors.New("tag found")
