// Package manifest implements the diff-to-manifest classification engine:
// it takes change records from a branch diff, assigns each to a metadata
// category, derives the manifest member name for that category's shape, and
// serializes the result into package.xml and destructiveChanges.xml
// documents.
package manifest

// Category describes one supported metadata category: the folder it lives
// under in the source tree, the type name it carries in a manifest, and
// whether its deployable unit is a whole folder (bundle) rather than an
// individual file.
type Category struct {
	FolderKey string
	TypeName  string
	Bundle    bool
}

// categories is the fixed, ordered set of supported metadata categories.
// Order matters: manifests emit <types> blocks in this order.
var categories = []Category{
	{FolderKey: "approvalProcesses", TypeName: "ApprovalProcess"},
	{FolderKey: "aura", TypeName: "AuraDefinitionBundle", Bundle: true},
	{FolderKey: "businessProcesses", TypeName: "BusinessProcess"},
	{FolderKey: "classes", TypeName: "ApexClass"},
	{FolderKey: "compactLayouts", TypeName: "CompactLayout"},
	{FolderKey: "customMetadata", TypeName: "CustomMetadata"},
	{FolderKey: "customPermissions", TypeName: "CustomPermission"},
	{FolderKey: "customSettings", TypeName: "CustomSetting"},
	{FolderKey: "externalCredentials", TypeName: "ExternalCredential"},
	{FolderKey: "fieldSets", TypeName: "FieldSet"},
	{FolderKey: "fields", TypeName: "CustomField"},
	{FolderKey: "flexipages", TypeName: "FlexiPage"},
	{FolderKey: "flows", TypeName: "Flow"},
	{FolderKey: "globalValueSets", TypeName: "GlobalValueSet"},
	{FolderKey: "groups", TypeName: "Group"},
	{FolderKey: "labels", TypeName: "CustomLabels"},
	{FolderKey: "layouts", TypeName: "Layout"},
	{FolderKey: "listViews", TypeName: "ListView"},
	{FolderKey: "lwc", TypeName: "LightningComponentBundle", Bundle: true},
	{FolderKey: "namedCredentials", TypeName: "NamedCredential"},
	{FolderKey: "objects", TypeName: "CustomObject"},
	{FolderKey: "pages", TypeName: "ApexPage"},
	{FolderKey: "permissionsetgroups", TypeName: "PermissionSetGroup"},
	{FolderKey: "permissionsets", TypeName: "PermissionSet"},
	{FolderKey: "profiles", TypeName: "Profile"},
	{FolderKey: "quickActions", TypeName: "QuickAction"},
	{FolderKey: "recordTypes", TypeName: "RecordType"},
	{FolderKey: "remoteSiteSettings", TypeName: "RemoteSiteSetting"},
	{FolderKey: "searchLayouts", TypeName: "SearchLayouts"},
	{FolderKey: "standardValueSets", TypeName: "StandardValueSet"},
	{FolderKey: "tabs", TypeName: "CustomTab"},
	{FolderKey: "triggers", TypeName: "ApexTrigger"},
	{FolderKey: "validationRules", TypeName: "ValidationRule"},
	{FolderKey: "webLinks", TypeName: "WebLink"},
}

// Table is the category list plus an index from folder key to position.
// Built once per run and never mutated afterwards, so it is safe to share
// across goroutines.
type Table struct {
	entries []Category
	index   map[string]int
}

// NewTable builds the category table for one classification run.
func NewTable() *Table {
	t := &Table{
		entries: categories,
		index:   make(map[string]int, len(categories)),
	}
	for i, c := range t.entries {
		t.index[c.FolderKey] = i
	}
	return t
}

// Lookup returns the position of the category with the given folder key,
// or false if the key is not a supported category.
func (t *Table) Lookup(folderKey string) (int, bool) {
	i, ok := t.index[folderKey]
	return i, ok
}

// At returns the category at position i.
func (t *Table) At(i int) Category { return t.entries[i] }

// Len returns the number of supported categories.
func (t *Table) Len() int { return len(t.entries) }

// TypeNames returns the manifest type names of all supported categories,
// in table order.
func (t *Table) TypeNames() []string {
	names := make([]string, len(t.entries))
	for i, c := range t.entries {
		names[i] = c.TypeName
	}
	return names
}
