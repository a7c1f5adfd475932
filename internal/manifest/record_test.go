package manifest

import "testing"

func TestParseLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
		want ChangeRecord
		ok   bool
	}{
		{
			name: "modified",
			line: "M\tforce-app/main/default/classes/Foo.cls",
			want: ChangeRecord{Status: StatusModified, Path: "force-app/main/default/classes/Foo.cls"},
			ok:   true,
		},
		{
			name: "deleted with spaces",
			line: "D       force-app/main/default/triggers/Old.trigger",
			want: ChangeRecord{Status: StatusDeleted, Path: "force-app/main/default/triggers/Old.trigger"},
			ok:   true,
		},
		{
			name: "added",
			line: "A\tforce-app/main/default/pages/Home.page",
			want: ChangeRecord{Status: StatusAdded, Path: "force-app/main/default/pages/Home.page"},
			ok:   true,
		},
		{
			name: "rename with similarity score carries both paths",
			line: "R100\tforce-app/main/default/classes/Old.cls\tforce-app/main/default/classes/New.cls",
			want: ChangeRecord{
				Status:      StatusRenamed,
				Path:        "force-app/main/default/classes/Old.cls",
				RenamedPath: "force-app/main/default/classes/New.cls",
			},
			ok: true,
		},
		{
			name: "unknown code",
			line: "X\tforce-app/main/default/classes/Foo.cls",
			want: ChangeRecord{Status: StatusUnknown, Path: "force-app/main/default/classes/Foo.cls"},
			ok:   true,
		},
		{
			name: "trailing carriage return stripped",
			line: "M\tforce-app/main/default/classes/Foo.cls\r",
			want: ChangeRecord{Status: StatusModified, Path: "force-app/main/default/classes/Foo.cls"},
			ok:   true,
		},
		{name: "empty line", line: "", ok: false},
		{name: "one-byte line", line: "M", ok: false},
		{name: "code without path", line: "M   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLinesSkipsBlankLines(t *testing.T) {
	t.Parallel()
	out := "M\ta/b.cls\n\nD\ta/c.cls\n"
	records := ParseLines(out)
	if len(records) != 2 {
		t.Fatalf("ParseLines: got %d records, want 2", len(records))
	}
	if records[0].Status != StatusModified || records[1].Status != StatusDeleted {
		t.Errorf("ParseLines: unexpected statuses %v, %v", records[0].Status, records[1].Status)
	}
}

func TestStatusFromWord(t *testing.T) {
	t.Parallel()
	tests := []struct {
		word string
		want ChangeStatus
	}{
		{"added", StatusAdded},
		{"removed", StatusDeleted},
		{"modified", StatusModified},
		{"renamed", StatusRenamed},
		{"merge conflict", StatusMergeConflict},
		{"remote deleted", StatusRemoteDeleted},
		{"something else", StatusUnknown},
	}
	for _, tt := range tests {
		if got := StatusFromWord(tt.word); got != tt.want {
			t.Errorf("StatusFromWord(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestStatusDestructive(t *testing.T) {
	t.Parallel()
	destructive := []ChangeStatus{StatusDeleted, StatusRemoteDeleted, StatusRenamed}
	additive := []ChangeStatus{StatusAdded, StatusModified, StatusMergeConflict, StatusUnknown}

	for _, s := range destructive {
		if !s.Destructive() {
			t.Errorf("%v.Destructive() = false, want true", s)
		}
	}
	for _, s := range additive {
		if s.Destructive() {
			t.Errorf("%v.Destructive() = true, want false", s)
		}
	}
}
