package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"sfmanifest/internal/manifest"
)

const (
	featureTempFolder = "_feature_branch_temp"
	compareTempFolder = "_compare_branch_temp"
)

// Workspace manages the two temporary clones a local-git run diffs against
// each other.
type Workspace struct {
	log        zerolog.Logger
	origin     string
	featureDir string
	compareDir string
}

// New creates a Workspace rooted at workDir for the given Bitbucket origin.
func New(log zerolog.Logger, workDir, username, workspace, repository string) *Workspace {
	return &Workspace{
		log:        log,
		origin:     fmt.Sprintf("https://%s@bitbucket.org/%s/%s.git", username, workspace, repository),
		featureDir: filepath.Join(workDir, featureTempFolder),
		compareDir: filepath.Join(workDir, compareTempFolder),
	}
}

// Prepare creates both clone folders and checks the two branches out, one
// goroutine per branch. The clones are independent repositories, so the
// pulls need no coordination beyond waiting for both.
func (w *Workspace) Prepare(ctx context.Context, featureBranch, compareBranch string) error {
	pulls := []struct {
		dir    string
		branch string
	}{
		{w.featureDir, featureBranch},
		{w.compareDir, compareBranch},
	}

	errs := make(chan error, len(pulls))
	for _, p := range pulls {
		go func(dir, branch string) {
			errs <- w.checkout(ctx, dir, branch)
		}(p.dir, p.branch)
	}

	var firstErr error
	for range pulls {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// checkout initializes dir as a clone of origin with the given branch
// checked out. Init and remote-add failures are tolerated so a rerun over
// leftover folders (--noclean) still works; fetch and checkout must succeed.
func (w *Workspace) checkout(ctx context.Context, dir, branch string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if _, err := run(ctx, dir, "init"); err != nil {
		w.log.Warn().Str("dir", dir).Err(err).Msg("git init")
	}
	if _, err := run(ctx, dir, "remote", "add", "origin", w.origin); err != nil {
		w.log.Warn().Str("dir", dir).Err(err).Msg("git remote add")
	}
	if _, err := run(ctx, dir, "fetch"); err != nil {
		return err
	}
	if _, err := run(ctx, dir, "checkout", "-q", branch); err != nil {
		return err
	}
	return nil
}

// Heads returns the latest commit of the feature and compare clones.
func (w *Workspace) Heads(ctx context.Context) (feature, compare string, err error) {
	if feature, err = head(ctx, w.featureDir); err != nil {
		return "", "", err
	}
	if compare, err = head(ctx, w.compareDir); err != nil {
		return "", "", err
	}
	return feature, compare, nil
}

func head(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	commit := strings.TrimSpace(strings.ReplaceAll(out, " ", ""))
	if commit == "" || strings.Contains(commit, "HEAD") || strings.Contains(commit, "not found") {
		return "", fmt.Errorf("retrieving latest commit in %s failed: %q", dir, commit)
	}
	return commit, nil
}

// Diff runs git diff --name-status between the two heads inside the feature
// clone and parses the output into change records.
func (w *Workspace) Diff(ctx context.Context, compareHead, featureHead string) ([]manifest.ChangeRecord, error) {
	out, err := run(ctx, w.featureDir, "--no-pager", "diff", "--name-status", compareHead, featureHead)
	if err != nil {
		return nil, err
	}
	return manifest.ParseLines(out), nil
}

// Clean removes both temporary clones. Skipped when the run was started
// with --noclean.
func (w *Workspace) Clean() error {
	for _, dir := range []string{w.featureDir, w.compareDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
