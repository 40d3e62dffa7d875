// Package tsgen renders TypeScript declarations for i18next resources.
package tsgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tidwall/gjson"
)

// Output file names.
const (
	ResourcesFile = "resources.d.ts"
	I18nextFile   = "i18next.d.ts"
)

// I18nextTemplate declares the resources to i18next.
const I18nextTemplate = `import Resources from './resources.d.ts';

declare module 'i18next' {
  interface CustomTypeOptions {
    resources: Resources;
  }
}`

// Resource is the JSON translation tree of one namespace.
type Resource struct {
	Name      string
	Resources []byte
}

// MergeResourcesAsInterface renders every namespace as a member of one
// Resources interface. Keys keep their source order and values become
// literal types. A <Namespace>Keys alias follows for each namespace.
func MergeResourcesAsInterface(resources []Resource) (string, error) {
	var b strings.Builder
	b.WriteString("interface Resources {\n")
	for _, r := range resources {
		if !gjson.ValidBytes(r.Resources) {
			return "", fmt.Errorf("namespace %s: resources are not valid JSON", r.Name)
		}
		doc := gjson.ParseBytes(r.Resources)
		if !doc.IsObject() {
			return "", fmt.Errorf("namespace %s: resources are not a JSON object", r.Name)
		}
		fmt.Fprintf(&b, "  %s: ", quote(r.Name))
		writeValue(&b, doc, 1)
		b.WriteString(",\n")
	}
	b.WriteString("}\n\nexport default Resources;\n")

	aliases := keyAliases(resources)
	if len(aliases) > 0 {
		b.WriteString("\n")
		for _, a := range aliases {
			b.WriteString(a)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func writeValue(b *strings.Builder, v gjson.Result, depth int) {
	switch {
	case v.IsObject():
		var members []string
		v.ForEach(func(key, value gjson.Result) bool {
			var m strings.Builder
			m.WriteString(indent(depth + 1))
			m.WriteString(quote(key.String()))
			m.WriteString(": ")
			writeValue(&m, value, depth+1)
			members = append(members, m.String())
			return true
		})
		if len(members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		b.WriteString(strings.Join(members, ",\n"))
		b.WriteString("\n" + indent(depth) + "}")
	case v.IsArray():
		var items []string
		v.ForEach(func(_, value gjson.Result) bool {
			var m strings.Builder
			writeValue(&m, value, depth)
			items = append(items, m.String())
			return true
		})
		b.WriteString("[" + strings.Join(items, ", ") + "]")
	case v.Type == gjson.String:
		b.WriteString(quote(v.String()))
	default:
		// Numbers, booleans and null are already valid TypeScript literals.
		b.WriteString(v.Raw)
	}
}

func keyAliases(resources []Resource) []string {
	seen := map[string]int{}
	var aliases []string
	for _, r := range resources {
		name := strcase.ToCamel(r.Name)
		if name == "" || !isIdentStart(name[0]) {
			name = "Ns" + name
		}
		name += "Keys"
		if n := seen[name]; n > 0 {
			seen[name]++
			name = fmt.Sprintf("%s%d", name, n+1)
		} else {
			seen[name] = 1
		}
		aliases = append(aliases, fmt.Sprintf("export type %s = keyof Resources[%s];", name, quote(r.Name)))
	}
	return aliases
}

// Generate writes ResourcesFile and I18nextFile into dir, creating it, and
// returns the path of ResourcesFile.
func Generate(dir string, resources []Resource) (string, error) {
	merged, err := MergeResourcesAsInterface(resources)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	out := filepath.Join(dir, ResourcesFile)
	if err := os.WriteFile(out, []byte(merged), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	i18next := filepath.Join(dir, I18nextFile)
	if err := os.WriteFile(i18next, []byte(I18nextTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", i18next, err)
	}
	return out, nil
}

// quote renders s as a double-quoted literal, keeping <, > and & readable.
func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
