// Package bitbucket is a minimal client for the Bitbucket Cloud REST API,
// covering just what manifest generation needs: resolving a branch to its
// latest commit and fetching the diffstat between two commits.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sfmanifest/internal/manifest"
)

// DefaultBaseURL is the Bitbucket Cloud repositories endpoint.
const DefaultBaseURL = "https://api.bitbucket.org/2.0/repositories"

// Client talks to the Bitbucket API for one workspace/repository pair,
// authenticating with a username and app password.
type Client struct {
	Username    string
	AppPassword string
	Workspace   string
	Repository  string

	// BaseURL overrides DefaultBaseURL, for tests.
	BaseURL string

	hc *http.Client
}

// New creates a Client with a 60 second request timeout.
func New(username, appPassword, workspace, repository string) *Client {
	return &Client{
		Username:    username,
		AppPassword: appPassword,
		Workspace:   workspace,
		Repository:  repository,
		BaseURL:     DefaultBaseURL,
		hc:          &http.Client{Timeout: 60 * time.Second},
	}
}

type commitsResponse struct {
	Values []struct {
		Hash string `json:"hash"`
	} `json:"values"`
}

type diffstatResponse struct {
	Values []diffstatEntry `json:"values"`
}

type diffstatEntry struct {
	Status string        `json:"status"`
	Old    *diffstatFile `json:"old"`
	New    *diffstatFile `json:"new"`
}

type diffstatFile struct {
	Path string `json:"path"`
}

// get issues an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("bitbucket: build request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.AppPassword)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("bitbucket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("bitbucket: %s returned status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bitbucket: decode %s: %w", url, err)
	}
	return nil
}

// LatestCommit resolves a branch name to the hash of its most recent commit.
func (c *Client) LatestCommit(ctx context.Context, branch string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/commits/%s", c.BaseURL, c.Workspace, c.Repository, branch)

	var commits commitsResponse
	if err := c.get(ctx, url, &commits); err != nil {
		return "", err
	}
	if len(commits.Values) == 0 || commits.Values[0].Hash == "" {
		return "", fmt.Errorf("bitbucket: no commit found for branch %q", branch)
	}
	return commits.Values[0].Hash, nil
}

// Diff resolves both branches to their latest commits and returns the
// diffstat between them as change records, in the same shape the local git
// adapter produces.
func (c *Client) Diff(ctx context.Context, featureBranch, compareBranch string) ([]manifest.ChangeRecord, error) {
	featureCommit, err := c.LatestCommit(ctx, featureBranch)
	if err != nil {
		return nil, err
	}
	compareCommit, err := c.LatestCommit(ctx, compareBranch)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/%s/diffstat/%s..%s",
		c.BaseURL, c.Workspace, c.Repository, featureCommit, compareCommit)

	var stats diffstatResponse
	if err := c.get(ctx, url, &stats); err != nil {
		return nil, err
	}

	records := make([]manifest.ChangeRecord, 0, len(stats.Values))
	for _, entry := range stats.Values {
		if rec, ok := entry.record(); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// record maps one diffstat entry to a change record. Deletions only carry
// the old file, additions only the new one; renames carry both.
func (e diffstatEntry) record() (manifest.ChangeRecord, bool) {
	rec := manifest.ChangeRecord{Status: manifest.StatusFromWord(e.Status)}

	switch {
	case e.Old != nil && e.New != nil:
		rec.Path = e.Old.Path
		if rec.Status == manifest.StatusRenamed {
			rec.RenamedPath = e.New.Path
		} else {
			rec.Path = e.New.Path
		}
	case e.Old != nil:
		rec.Path = e.Old.Path
	case e.New != nil:
		rec.Path = e.New.Path
	default:
		return manifest.ChangeRecord{}, false
	}
	return rec, true
}
