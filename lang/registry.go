package lang

import (
	"sort"
	"sync"

	"github.com/dhamidi/parsource/parse"
)

var (
	mu       sync.Mutex
	registry = map[string]*parse.Table{}
	byExt    = map[string]string{}
)

func init() {
	Register("js", JavaScriptBlocks(), ".js", ".mjs", ".ts", ".jsx", ".tsx")
	Register("js-expr", JavaScriptExpression())
	Register("selectors", Selectors(), ".sel")
}

// Register adds a language table under a name, optionally claiming file
// extensions for it. Registering an existing name replaces it.
func Register(name string, table *parse.Table, extensions ...string) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = table
	for _, ext := range extensions {
		byExt[ext] = name
	}
}

// Lookup returns the table registered under name.
func Lookup(name string) (*parse.Table, bool) {
	mu.Lock()
	defer mu.Unlock()
	t, ok := registry[name]
	return t, ok
}

// ByExtension returns the table claimed for a file extension such as
// ".js".
func ByExtension(ext string) (*parse.Table, bool) {
	mu.Lock()
	defer mu.Unlock()
	name, ok := byExt[ext]
	if !ok {
		return nil, false
	}
	t, ok := registry[name]
	return t, ok
}

// Names returns the registered language names, sorted.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
