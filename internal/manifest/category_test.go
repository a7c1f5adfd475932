package manifest

import "testing"

func TestTableLookup(t *testing.T) {
	t.Parallel()
	table := NewTable()

	tests := []struct {
		folderKey string
		typeName  string
		bundle    bool
	}{
		{"classes", "ApexClass", false},
		{"lwc", "LightningComponentBundle", true},
		{"aura", "AuraDefinitionBundle", true},
		{"objects", "CustomObject", false},
		{"fields", "CustomField", false},
		{"customMetadata", "CustomMetadata", false},
		{"quickActions", "QuickAction", false},
		{"labels", "CustomLabels", false},
		{"webLinks", "WebLink", false},
	}
	for _, tt := range tests {
		i, ok := table.Lookup(tt.folderKey)
		if !ok {
			t.Errorf("Lookup(%q): not found", tt.folderKey)
			continue
		}
		cat := table.At(i)
		if cat.TypeName != tt.typeName || cat.Bundle != tt.bundle {
			t.Errorf("Lookup(%q) = %+v, want type %q bundle %v", tt.folderKey, cat, tt.typeName, tt.bundle)
		}
	}
}

func TestTableUnknownKey(t *testing.T) {
	t.Parallel()
	if _, ok := NewTable().Lookup("documents"); ok {
		t.Error("Lookup(documents): expected not found")
	}
}

func TestTableOrderIsStable(t *testing.T) {
	t.Parallel()
	table := NewTable()

	names := table.TypeNames()
	if len(names) != 34 {
		t.Fatalf("TypeNames: got %d categories, want 34", len(names))
	}
	if names[0] != "ApprovalProcess" {
		t.Errorf("first type = %q, want ApprovalProcess", names[0])
	}
	if names[len(names)-1] != "WebLink" {
		t.Errorf("last type = %q, want WebLink", names[len(names)-1])
	}
}
