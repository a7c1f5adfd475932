package manifest

import "strings"

const (
	quickActionSuffix    = ".quickAction-meta.xml"
	customMetadataSuffix = ".md-meta.xml"
)

// Bucket accumulates the member names resolved into one category during a
// single run. The sets dedupe repeated occurrences of the same member, e.g.
// several changed files inside one bundle folder.
type Bucket struct {
	Additive    map[string]struct{}
	Destructive map[string]struct{}
}

func newBucket() Bucket {
	return Bucket{
		Additive:    make(map[string]struct{}),
		Destructive: make(map[string]struct{}),
	}
}

// insert routes one member name on the change status: deletions and renames
// are destructive, everything else additive.
func (b *Bucket) insert(status ChangeStatus, member string) {
	if status.Destructive() {
		b.Destructive[member] = struct{}{}
	} else {
		b.Additive[member] = struct{}{}
	}
}

// splitSegments splits a root-relative path into its segments. Both
// separator styles occur in diff output depending on the host platform.
func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// stripExtension cuts a file name at its first dot. Salesforce metadata
// file names stack extensions (Foo.cls, Foo.cls-meta.xml), and none of them
// belong in a member name.
func stripExtension(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// resolveBasic handles flat-file categories: the member is the file name
// after the category folder, stripped of its extension.
func resolveBasic(status ChangeStatus, segs []string, bucket *Bucket) {
	if len(segs) < 2 {
		return
	}
	bucket.insert(status, stripExtension(segs[1]))
}

// resolveBundle handles bundle categories (aura, lwc): the member is the
// bundle folder name, regardless of which or how many files inside the
// bundle changed. Bundles are always deployed additively.
func resolveBundle(segs []string, bucket *Bucket) {
	if len(segs) < 2 {
		return
	}
	bucket.Additive[segs[1]] = struct{}{}
}

// resolveQuickAction handles quick actions, whose member names contain dots
// (Case.LogACall), so extension stripping would truncate them. The fixed
// suffix is removed instead.
func resolveQuickAction(status ChangeStatus, segs []string, bucket *Bucket) {
	if len(segs) < 2 {
		return
	}
	bucket.insert(status, strings.TrimSuffix(segs[1], quickActionSuffix))
}

// resolveCustomMetadata handles custom metadata records, whose member names
// also contain a dot (Type.Record). Always additive.
func resolveCustomMetadata(segs []string, bucket *Bucket) {
	if len(segs) < 2 {
		return
	}
	bucket.Additive[strings.TrimSuffix(segs[1], customMetadataSuffix)] = struct{}{}
}

// resolveObject handles the objects tree, which nests other categories:
//
//	objects/Account.object-meta.xml          -> Account into objects
//	objects/Account/Account.object-meta.xml  -> Account into objects
//	objects/Account/fields/Foo__c.field-...  -> Account.Foo__c into fields
//
// The nested form routes the composite member into the bucket of the
// sub-category (fields, listViews, recordTypes, ...). Unsupported
// sub-category segments are dropped without a diagnostic.
func resolveObject(status ChangeStatus, segs []string, table *Table, buckets []Bucket) {
	switch {
	case len(segs) < 2:
		return
	case len(segs) <= 3:
		// The object itself: the final segment is its own definition file.
		idx, _ := table.Lookup("objects")
		buckets[idx].insert(status, stripExtension(segs[len(segs)-1]))
	default:
		idx, ok := table.Lookup(segs[2])
		if !ok {
			return
		}
		member := segs[1] + "." + stripExtension(segs[3])
		buckets[idx].insert(status, member)
	}
}
