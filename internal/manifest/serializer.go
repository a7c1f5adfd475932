package manifest

import (
	"sort"
	"strings"
)

const (
	xmlProlog   = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	xmlRootOpen = "<Package xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n"
	xmlClose    = "\t<version>64.0</version>\n</Package>"
)

// Custom labels deploy as a single aggregate: when the only changed member
// of the CustomLabels type is the CustomLabels file itself, the manifest
// must name the wildcard instead of the literal member.
const (
	customLabelsLiteral  = "<types>\n\t\t<members>CustomLabels</members>\n\t\t<name>CustomLabels</name>\n\t</types>\n"
	customLabelsWildcard = "<types>\n\t\t<members>*</members>\n\t\t<name>CustomLabels</name>\n\t</types>\n"
)

// Documents carries the two serialized manifests of one run.
type Documents struct {
	Package            string
	DestructiveChanges string
}

// Serialize renders the buckets into the additive and destructive manifest
// documents. Types appear in category-table order, members sorted
// lexicographically within each type; empty categories emit nothing.
func (r *Result) Serialize() Documents {
	var pkg, destructive strings.Builder
	pkg.WriteString(xmlProlog)
	pkg.WriteString(xmlRootOpen)
	destructive.WriteString(xmlProlog)
	destructive.WriteString(xmlRootOpen)

	for i := range r.buckets {
		typeName := r.table.At(i).TypeName
		writeTypes(&pkg, typeName, r.buckets[i].Additive)
		writeTypes(&destructive, typeName, r.buckets[i].Destructive)
	}

	// The wildcard substitution applies to the additive document only.
	pkgContent := strings.ReplaceAll(pkg.String(), customLabelsLiteral, customLabelsWildcard)

	return Documents{
		Package:            pkgContent + xmlClose,
		DestructiveChanges: destructive.String() + xmlClose,
	}
}

func writeTypes(b *strings.Builder, typeName string, members map[string]struct{}) {
	if len(members) == 0 {
		return
	}
	sorted := make([]string, 0, len(members))
	for member := range members {
		sorted = append(sorted, member)
	}
	sort.Strings(sorted)

	b.WriteString("\t<types>\n")
	for _, member := range sorted {
		b.WriteString("\t\t<members>")
		b.WriteString(member)
		b.WriteString("</members>\n")
	}
	b.WriteString("\t\t<name>")
	b.WriteString(typeName)
	b.WriteString("</name>\n")
	b.WriteString("\t</types>\n")
}
