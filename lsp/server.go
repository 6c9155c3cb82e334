// Package lsp serves parsed document outlines over the language server
// protocol. Documents are parsed on open and on every full-content
// change; extraction diagnostics are published back to the client.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/parsource/lang"
	"github.com/dhamidi/parsource/parse"
	"github.com/dhamidi/parsource/tree"
)

const lsName = "parsource"

type document struct {
	text  string
	root  *tree.Node
	diags []error
}

type LSPServer struct {
	mu        sync.Mutex
	documents map[string]*document
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		documents: map[string]*document{},
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.updateDocument(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.updateDocument(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()
	return nil
}

func (ls *LSPServer) updateDocument(ctx *glsp.Context, uri, text string) {
	doc := &document{text: text}

	table := tableForURI(uri)
	if table != nil {
		extractor := parse.NewExtractor()
		classifier := parse.NewBlockClassifier(text, table)
		diags, err := extractor.Process(classifier)
		doc.diags = diags
		if err != nil {
			doc.diags = append(doc.diags, err)
		}
		root := extractor.Result()
		for _, d := range parse.Normalize(root) {
			doc.diags = append(doc.diags, errors.New(d.String()))
		}
		doc.root = root
	}

	ls.mu.Lock()
	ls.documents[uri] = doc
	ls.mu.Unlock()

	ls.publishDiagnostics(ctx, uri, doc)
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, doc *document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.diags))
	severity := protocol.DiagnosticSeverityWarning
	source := lsName
	for _, diag := range doc.diags {
		message := diag.Error()
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	ls.mu.Lock()
	doc := ls.documents[params.TextDocument.URI]
	ls.mu.Unlock()
	if doc == nil || doc.root == nil {
		return nil, nil
	}

	index := newLineIndex(doc.text)
	var symbols []protocol.DocumentSymbol
	for node := range doc.root.Walk(nil) {
		symbol, ok := symbolFor(node, index)
		if !ok {
			continue
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

func symbolFor(n *tree.Node, index *lineIndex) (protocol.DocumentSymbol, bool) {
	var name string
	var kind protocol.SymbolKind
	switch n.Name {
	case "block":
		name = n.StringAttr("type")
		kind = protocol.SymbolKindNamespace
	case "directive":
		name = n.StringAttr("value")
		kind = protocol.SymbolKindProperty
	default:
		return protocol.DocumentSymbol{}, false
	}
	if !n.HasAttribute("start") {
		return protocol.DocumentSymbol{}, false
	}
	start := n.IntAttr("start")
	end := start
	if n.HasAttribute("end") {
		end = n.IntAttr("end")
	}
	span := protocol.Range{
		Start: index.position(start),
		End:   index.position(end),
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          span,
		SelectionRange: span,
	}, true
}

// lineIndex maps byte offsets to protocol positions.
type lineIndex struct {
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (idx *lineIndex) position(offset int) protocol.Position {
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(offset - idx.starts[line]),
	}
}

func tableForURI(uri string) *parse.Table {
	path := uri
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			path = parsed.Path
		}
	}
	if table, ok := lang.ByExtension(filepath.Ext(path)); ok {
		return table
	}
	table, _ := lang.Lookup("js")
	return table
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
