package manifest

import (
	"strings"

	"github.com/rs/zerolog"
)

// MaxDiffRecords caps how many change records one run will classify. A diff
// at or above this size is almost certainly a branch mixup rather than a
// deployable change set, so classification is skipped and both manifests
// come out empty.
const MaxDiffRecords = 5000

const (
	projectRootPrefix = "force-app"
	standardFolder    = "force-app/main/default/"
)

// Result holds the per-category buckets of one classification run, plus the
// diagnostics the run produced. Each call to Classify returns an
// independently owned Result, so concurrent runs over separate inputs need
// no coordination.
type Result struct {
	table   *Table
	buckets []Bucket

	// Unsupported lists the unrecognized category keys encountered, one
	// entry per dropped record.
	Unsupported []string

	// SizeExceeded is set when the record count hit MaxDiffRecords and
	// classification was skipped.
	SizeExceeded bool
}

// Bucket returns the bucket for the given folder key, for inspection after
// a run.
func (r *Result) Bucket(folderKey string) (Bucket, bool) {
	i, ok := r.table.Lookup(folderKey)
	if !ok {
		return Bucket{}, false
	}
	return r.buckets[i], true
}

// Classify folds the change records into per-category member buckets.
// Records outside the project root are skipped silently; records in an
// unrecognized category are dropped with a diagnostic; everything else
// lands in exactly one bucket.
func Classify(log zerolog.Logger, records []ChangeRecord) *Result {
	table := NewTable()
	res := &Result{table: table, buckets: make([]Bucket, table.Len())}
	for i := range res.buckets {
		res.buckets[i] = newBucket()
	}

	if len(records) >= MaxDiffRecords {
		res.SizeExceeded = true
		log.Error().
			Int("records", len(records)).
			Int("max", MaxDiffRecords).
			Msg("number of files in diff exceeds the maximum, producing empty manifests")
		return res
	}

	for _, rec := range records {
		// Paths outside force-app belong to packaged metadata, which this
		// manifest format does not cover.
		if !strings.HasPrefix(rec.Path, projectRootPrefix) {
			continue
		}
		rel := strings.Replace(rec.Path, standardFolder, "", 1)
		segs := splitSegments(rel)
		if len(segs) < 2 {
			continue
		}

		idx, ok := table.Lookup(segs[0])
		if !ok {
			res.Unsupported = append(res.Unsupported, segs[0])
			log.Warn().
				Str("category", segs[0]).
				Str("path", rec.Path).
				Msg("unsupported metadata category, file not included in manifest")
			continue
		}

		switch cat := table.At(idx); cat.FolderKey {
		case "objects":
			resolveObject(rec.Status, segs, table, res.buckets)
		case "quickActions":
			resolveQuickAction(rec.Status, segs, &res.buckets[idx])
		case "customMetadata":
			resolveCustomMetadata(segs, &res.buckets[idx])
		default:
			if cat.Bundle {
				resolveBundle(segs, &res.buckets[idx])
			} else {
				resolveBasic(rec.Status, segs, &res.buckets[idx])
			}
		}
	}

	return res
}

// BuildManifests classifies the records and serializes the two manifest
// documents in one step.
func BuildManifests(log zerolog.Logger, records []ChangeRecord) Documents {
	return Classify(log, records).Serialize()
}
