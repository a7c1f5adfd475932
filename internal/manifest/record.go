package manifest

import "strings"

// ChangeStatus classifies one diff entry. Unrecognized codes map to
// StatusUnknown rather than failing the run.
type ChangeStatus int

const (
	StatusUnknown ChangeStatus = iota
	StatusAdded
	StatusDeleted
	StatusModified
	StatusRenamed
	StatusMergeConflict
	StatusRemoteDeleted
)

// String returns the single-letter code used in diff --name-status output.
func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted, StatusRemoteDeleted:
		return "D"
	case StatusModified, StatusMergeConflict:
		return "M"
	case StatusRenamed:
		return "R"
	default:
		return "?"
	}
}

// Destructive reports whether the change removes something from the org:
// deletions and renames go into destructiveChanges.xml, everything else
// into package.xml. A rename is destructive against its original path only.
func (s ChangeStatus) Destructive() bool {
	return s == StatusDeleted || s == StatusRemoteDeleted || s == StatusRenamed
}

// StatusFromWord maps a Bitbucket diffstat status word to a ChangeStatus.
func StatusFromWord(word string) ChangeStatus {
	switch word {
	case "added":
		return StatusAdded
	case "removed":
		return StatusDeleted
	case "modified":
		return StatusModified
	case "renamed":
		return StatusRenamed
	case "merge conflict":
		return StatusMergeConflict
	case "remote deleted":
		return StatusRemoteDeleted
	default:
		return StatusUnknown
	}
}

// statusFromCode maps a --name-status change code to a ChangeStatus. Rename
// codes carry a similarity score (R072, R100, ...), so only the leading
// letter is significant.
func statusFromCode(code string) ChangeStatus {
	if code == "" {
		return StatusUnknown
	}
	switch code[0] {
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	case 'M':
		return StatusModified
	case 'R':
		return StatusRenamed
	default:
		return StatusUnknown
	}
}

// ChangeRecord is one entry of a branch diff. RenamedPath is only set for
// renames; the classifier consumes Status and Path.
type ChangeRecord struct {
	Status      ChangeStatus
	Path        string
	RenamedPath string
}

// ParseLine turns one line of `git diff --name-status` output into a
// ChangeRecord. The line shape is a change code, whitespace, the file path,
// and for renames a second path after more whitespace. Blank and one-byte
// lines are skipped (ok=false). Malformed lines still produce a record;
// they simply fail category lookup downstream.
func ParseLine(line string) (ChangeRecord, bool) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) <= 1 {
		return ChangeRecord{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ChangeRecord{}, false
	}

	rec := ChangeRecord{
		Status: statusFromCode(fields[0]),
		Path:   fields[1],
	}
	if rec.Status == StatusRenamed && len(fields) > 2 {
		rec.RenamedPath = fields[2]
	}
	return rec, true
}

// ParseLines applies ParseLine to a block of diff output, dropping lines
// that do not parse.
func ParseLines(output string) []ChangeRecord {
	var records []ChangeRecord
	for _, line := range strings.Split(output, "\n") {
		if rec, ok := ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}
