package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sfmanifest/internal/bitbucket"
	"sfmanifest/internal/config"
	"sfmanifest/internal/gitrepo"
	"sfmanifest/internal/logging"
	"sfmanifest/internal/manifest"
	"sfmanifest/internal/telemetry"
)

// automation selects where the branch diff comes from.
type automation int

const (
	automationBitbucket automation = iota
	automationGit
)

func parseAutomation(s string) (automation, error) {
	switch strings.ToLower(s) {
	case "bitbucket", "b":
		return automationBitbucket, nil
	case "git", "g":
		return automationGit, nil
	default:
		return 0, fmt.Errorf("invalid automation mode %q (want bitbucket or git)", s)
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")
	log, closeLog, err := logging.New(verbose, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	modeStr, _ := cmd.Flags().GetString("automation")
	mode, err := parseAutomation(modeStr)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if user, _ := cmd.Flags().GetString("bitbucket-user"); user != "" {
		cfg.BitbucketUsername = user
	}

	// Anything still missing is asked for interactively and persisted, so
	// the next run starts without prompts.
	if cfg.PromptMissing(os.Stdin, os.Stderr) {
		if err := config.Save(config.Path(), cfg); err != nil {
			log.Warn().Err(err).Msg("could not persist configuration")
		}
	}

	ctx := cmd.Context()
	workDir := cfg.ResolveWorkDir()

	featureBranch, _ := cmd.Flags().GetString("feature")
	if featureBranch == "" {
		featureBranch = gitrepo.CurrentBranch(ctx, workDir)
	}
	if featureBranch == "" {
		return fmt.Errorf("no feature branch given and none checked out in %s", workDir)
	}
	compareBranch, _ := cmd.Flags().GetString("branch")

	var events *telemetry.Emitter
	if path, _ := cmd.Flags().GetString("events"); path != "" {
		if events, err = telemetry.NewEmitter(path); err != nil {
			return err
		}
		defer events.Close()
	}
	emit := func(kind string, data any) {
		events.Emit(telemetry.Event{
			Timestamp: time.Now(),
			Kind:      kind,
			Feature:   featureBranch,
			Compare:   compareBranch,
			Data:      data,
		})
	}
	emit(telemetry.KindRunStart, nil)

	log.Info().
		Str("feature", featureBranch).
		Str("compare", compareBranch).
		Msg("generating manifests")

	var records []manifest.ChangeRecord
	switch mode {
	case automationGit:
		log.Debug().Msg("using git orchestration")
		records, err = gitDiff(ctx, cmd, log, cfg, workDir, featureBranch, compareBranch)
	default:
		log.Debug().Msg("using the Bitbucket REST API")
		client := bitbucket.New(cfg.BitbucketUsername, cfg.BitbucketAppPassword,
			cfg.BitbucketWorkspace, cfg.BitbucketRepository)
		records, err = client.Diff(ctx, featureBranch, compareBranch)
	}
	if err != nil {
		return err
	}
	emit(telemetry.KindDiffFetched, map[string]any{
		"records":    len(records),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	result := manifest.Classify(log, records)
	for _, category := range result.Unsupported {
		emit(telemetry.KindUnsupportedCategory, map[string]any{"category": category})
	}
	docs := result.Serialize()
	emit(telemetry.KindClassified, map[string]any{
		"unsupported":   len(result.Unsupported),
		"size_exceeded": result.SizeExceeded,
	})

	if stringOnly, _ := cmd.Flags().GetBool("string-only"); stringOnly {
		fmt.Fprintln(os.Stdout, docs.Package)
		fmt.Fprintln(os.Stdout, docs.DestructiveChanges)
	} else {
		outputs := []struct {
			name    string
			content string
		}{
			{"package.xml", docs.Package},
			{"destructiveChanges.xml", docs.DestructiveChanges},
		}
		for _, out := range outputs {
			path := filepath.Join(workDir, out.name)
			if err := os.WriteFile(path, []byte(out.content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			log.Info().Str("path", path).Msg("manifest written")
			emit(telemetry.KindManifestWritten, map[string]any{"path": path})
		}
	}

	emit(telemetry.KindRunDone, map[string]any{"elapsed_ms": time.Since(start).Milliseconds()})
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}

// gitDiff pulls both branches into temporary clones and diffs their heads.
func gitDiff(ctx context.Context, cmd *cobra.Command, log zerolog.Logger,
	cfg config.Config, workDir, featureBranch, compareBranch string) ([]manifest.ChangeRecord, error) {

	if !gitrepo.Available() {
		return nil, errors.New("git is not available on PATH")
	}

	ws := gitrepo.New(log, workDir, cfg.BitbucketUsername,
		cfg.BitbucketWorkspace, cfg.BitbucketRepository)

	if noClean, _ := cmd.Flags().GetBool("noclean"); !noClean {
		defer func() {
			if err := ws.Clean(); err != nil {
				log.Warn().Err(err).Msg("cleaning temporary folders")
			}
		}()
	}

	if err := ws.Prepare(ctx, featureBranch, compareBranch); err != nil {
		return nil, err
	}
	featureHead, compareHead, err := ws.Heads(ctx)
	if err != nil {
		return nil, err
	}
	return ws.Diff(ctx, compareHead, featureHead)
}
