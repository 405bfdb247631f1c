package forest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/testutil"
)

func TestRepoName(t *testing.T) {
	tests := map[string]string{
		"git@github.com:org/widget.git":   "widget",
		"https://github.com/org/widget":   "widget",
		"https://github.com/org/widget/":  "widget",
		"ssh://hg@example.com/repos/tool": "tool",
		"../local/thing":                  "thing",
		"git@host:plain.git":              "plain",
	}
	for origin, want := range tests {
		assert.Equal(t, want, RepoName(origin), origin)
	}
}

func TestClone_nestedHoistsMainToRoot(t *testing.T) {
	r := testutil.CreateRemotes(t)
	work := t.TempDir()
	testutil.Chdir(t, work)

	root, err := Clone(context.Background(), quietEnv(), r.MainNested, "", CloneOptions{})
	require.NoError(t, err)
	assert.Equal(t, "main-nested", filepath.Base(root))

	mk, err := marker.Load(root)
	require.NoError(t, err)
	assert.Equal(t, ".", mk.ConfigurationDirectory)
	assert.Equal(t, ".", mk.Main())
	assert.Equal(t, []string{".", "free", "locked", "pinned"}, repoSet(t, root))
	assert.Equal(t, r.PinnedRevision, testutil.Revision(t, filepath.Join(root, "pinned")))
	assert.Equal(t, r.LockedBranch, testutil.Branch(t, filepath.Join(root, "locked")))

	leftovers, err := filepath.Glob(filepath.Join(work, ".arm-clone-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestClone_siblingKeepsGroupDirectory(t *testing.T) {
	r := testutil.CreateRemotes(t)
	dest := filepath.Join(t.TempDir(), "group")

	root, err := Clone(context.Background(), quietEnv(), r.MainSibling, dest, CloneOptions{})
	require.NoError(t, err)
	assert.Equal(t, dest, root)

	mk, err := marker.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "main-sibling", mk.ConfigurationDirectory)
	assert.Equal(t, []string{"free", "locked", "main-sibling", "pinned"}, repoSet(t, root))
}

func TestClone_branchAndManifest(t *testing.T) {
	r := testutil.CreateRemotes(t)
	dest := filepath.Join(t.TempDir(), "forest")

	root, err := Clone(context.Background(), quietEnv(), r.MainNested, dest,
		CloneOptions{Branch: "develop", Manifest: "sub"})
	require.NoError(t, err)

	assert.Equal(t, "develop", testutil.Branch(t, root))
	mk, err := marker.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "sub", mk.Manifest)
	assert.Equal(t, []string{".", "free", "locked", "pinned", "sub"}, repoSet(t, root))

	f := mustLoad(t, root)
	assert.Equal(t, filepath.Join(root, "arm_sub.json"), f.ManifestPath)
}

func TestClone_withoutManifestStopsAfterClone(t *testing.T) {
	origin := testutil.CreateRepo(t, filepath.Join(t.TempDir(), "bare-main"))
	dest := filepath.Join(t.TempDir(), "out")

	root, err := Clone(context.Background(), quietEnv(), origin, dest, CloneOptions{})
	require.NoError(t, err)
	assert.Empty(t, root)
	assert.False(t, marker.Exists(dest))
	assert.Equal(t, []string{"bare-main"}, repoSet(t, dest))
}

func TestClone_existingDestination(t *testing.T) {
	r := testutil.CreateRemotes(t)
	dest := t.TempDir()

	_, err := Clone(context.Background(), quietEnv(), r.MainNested, dest, CloneOptions{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
}

func TestClone_unknownBackend(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")

	_, err := Clone(context.Background(), quietEnv(), "https://example.com/mystery", dest, CloneOptions{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

// Cloning must leave the same repositories on disk as a plain clone of the
// main repository followed by bootstrapping the root and installing.
func TestClone_matchesManualSetup(t *testing.T) {
	r := testutil.CreateRemotes(t)
	ctx := context.Background()

	auto := filepath.Join(t.TempDir(), "group")
	_, err := Clone(ctx, quietEnv(), r.MainSibling, auto, CloneOptions{})
	require.NoError(t, err)

	manual := filepath.Join(t.TempDir(), "group")
	testutil.Git(t, filepath.Dir(manual), "clone", "--quiet", r.MainSibling, filepath.Join(manual, "main-sibling"))
	root, err := Bootstrap(quietEnv(), filepath.Join(manual, "main-sibling"), "")
	require.NoError(t, err)
	assert.Equal(t, manual, root)
	_, err = mustLoad(t, root).Install(ctx, quietEnv())
	require.NoError(t, err)

	assert.Equal(t, repoSet(t, manual), repoSet(t, auto))
	autoMarker, err := marker.Load(auto)
	require.NoError(t, err)
	manualMarker, err := marker.Load(manual)
	require.NoError(t, err)
	assert.Equal(t, manualMarker, autoMarker)
}
