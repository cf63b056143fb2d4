// Package lsp serves a Workspace over the Language Server Protocol.
package lsp

import (
	"context"
	"log/slog"

	"github.com/roveo/flexls/completion"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/logging"
	"github.com/roveo/flexls/workspace"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Name is reported to clients in the initialize result.
const Name = "flexls"

// Server routes LSP requests to a workspace through its dispatcher.
type Server struct {
	ctx     context.Context
	d       *workspace.Dispatcher
	handler protocol.Handler
	version string
	log     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a server. Requests are abandoned once ctx is done.
func New(ctx context.Context, d *workspace.Dispatcher, opts ...Option) *Server {
	s := &Server{ctx: ctx, d: d, version: "dev", log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentCompletion:     s.textDocumentCompletion,
		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentReferences:     s.textDocumentReferences,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}
	return s
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	return server.NewServer(&s.handler, Name, false).RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		s.log.Info("client connected", "client", params.ClientInfo.Name)
	}

	capabilities := s.handler.CreateServerCapabilities()
	openClose := true
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: completion.TriggerCharacters,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	return s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		ws.Open(doc.URI, doc.LanguageID, doc.Text)
	})
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	return s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		text, ok := ws.Text(uri)
		if !ok {
			return
		}
		ws.Change(uri, applyChanges(text, params.ContentChanges))
	})
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	return s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		ws.Close(uri)
	})
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	pos := fromPosition(params.Position)

	var candidates []completion.Candidate
	if err := s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		candidates = ws.Complete(uri, pos)
	}); err != nil {
		return nil, err
	}

	items := make([]protocol.CompletionItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, completionItem(c))
	}
	return items, nil
}

func (s *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	pos := fromPosition(params.Position)

	var locs []languages.Location
	if err := s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		locs = ws.Definition(uri, pos)
	}); err != nil {
		return nil, err
	}
	return toLocations(locs), nil
}

func (s *Server) textDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	pos := fromPosition(params.Position)

	var locs []languages.Location
	if err := s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		locs = ws.References(uri, pos)
	}); err != nil {
		return nil, err
	}
	return toLocations(locs), nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI

	var symbols []languages.Symbol
	if err := s.d.Do(s.ctx, func(ws *workspace.Workspace) {
		symbols = ws.Symbols(uri)
	}); err != nil {
		return nil, err
	}

	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		r := toRange(sym.Location.Range)
		result = append(result, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKind(sym.Kind),
			Range:          r,
			SelectionRange: r,
		})
	}
	return result, nil
}
