// Package mcp exposes the renderer and a document store as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/docrender"
	"github.com/aretw0/docrender/internal/presentation/graph"
	"github.com/aretw0/docrender/pkg/codec"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
)

const (
	documentsURI        = "docrender://documents"
	documentTemplateURI = "docrender://documents/{id}"
)

// RenderResponse is the structured result of the render tools.
type RenderResponse struct {
	Format string       `json:"format" jsonschema_description:"The output format"`
	Output string       `json:"output" jsonschema_description:"The rendered document"`
	Title  string       `json:"title,omitempty" jsonschema_description:"Title derived from the first heading"`
	Stats  domain.Stats `json:"stats" jsonschema_description:"Node counts of the source document"`
}

// RenderArgs are the arguments of render_document.
type RenderArgs struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
	YAML     bool   `json:"yaml,omitempty"`
}

// StoredArgs are the arguments of the tools addressing a stored document.
type StoredArgs struct {
	ID     string `json:"id"`
	Format string `json:"format,omitempty"`
}

// Server wraps the renderer and exposes it as an MCP Server.
type Server struct {
	renderer  *docrender.Service
	store     ports.DocumentStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which case
// only render_document is available.
func NewServer(renderer *docrender.Service, store ports.DocumentStore) *Server {
	if renderer == nil {
		renderer = &docrender.Service{}
	}
	s := &Server{
		renderer:  renderer,
		store:     store,
		mcpServer: server.NewMCPServer("docrender-mcp", strings.TrimSpace(docrender.Version)),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func formatOption() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: html (default), markdown or tree"),
		mcp.Enum("html", "markdown", "tree"),
	)
}

func (s *Server) registerTools() {
	// TOOL: render_document
	s.mcpServer.AddTool(mcp.NewTool("render_document",
		mcp.WithDescription("Render a serialized rich-text document."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document as a JSON array of nodes (or YAML when yaml is true)")),
		formatOption(),
		mcp.WithBoolean("yaml", mcp.Description("Parse document as YAML")),
		mcp.WithOutputSchema[RenderResponse](),
	), mcp.NewStructuredToolHandler(s.handleRender))

	if s.store == nil {
		return
	}

	// TOOL: render_stored_document
	s.mcpServer.AddTool(mcp.NewTool("render_stored_document",
		mcp.WithDescription("Render a document from the store by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
		formatOption(),
		mcp.WithOutputSchema[RenderResponse](),
	), mcp.NewStructuredToolHandler(s.handleRenderStored))

	// TOOL: outline_document
	s.mcpServer.AddTool(mcp.NewTool("outline_document",
		mcp.WithDescription("Get a Mermaid flowchart of the structure of a stored document."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
	), mcp.NewTypedToolHandler(s.handleOutline))

	// TOOL: list_documents
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the IDs of stored documents."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
	})
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args RenderArgs) (RenderResponse, error) {
	format := codec.FormatJSON
	if args.YAML {
		format = codec.FormatYAML
	}
	doc, err := codec.Decode(format, strings.NewReader(args.Document))
	if err != nil {
		return RenderResponse{}, fmt.Errorf("invalid document: %w", err)
	}
	return s.render(args.Format, doc)
}

func (s *Server) handleRenderStored(ctx context.Context, request mcp.CallToolRequest, args StoredArgs) (RenderResponse, error) {
	rec, err := s.store.Load(ctx, args.ID)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("load %q: %w", args.ID, err)
	}
	resp, err := s.render(args.Format, rec.Document)
	if err != nil {
		return RenderResponse{}, err
	}
	if rec.Title != "" {
		resp.Title = rec.Title
	}
	return resp, nil
}

func (s *Server) handleOutline(ctx context.Context, request mcp.CallToolRequest, args StoredArgs) (*mcp.CallToolResult, error) {
	rec, err := s.store.Load(ctx, args.ID)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("document %q not found", args.ID)), nil
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(rec.Document, nil)), nil
}

func (s *Server) render(name string, doc domain.Document) (RenderResponse, error) {
	format, err := docrender.ParseFormat(name)
	if err != nil {
		return RenderResponse{}, err
	}
	out, err := s.renderer.Render(format, doc)
	if err != nil {
		slog.Error("MCP Render failed", "err", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return RenderResponse{
		Format: string(format),
		Output: out,
		Title:  domain.TitleOf(doc),
		Stats:  domain.Count(doc),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: docrender://documents
	s.mcpServer.AddResource(mcp.NewResource(documentsURI, "Stored Documents",
		mcp.WithMIMEType("application/json"),
	), s.readDocuments)

	// EXPOSE: docrender://documents/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(documentTemplateURI, "Stored Document",
		mcp.WithTemplateMIMEType("application/json"),
	), s.readDocument)
}

func (s *Server) readDocuments(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, _ := json.Marshal(ids)
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      documentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readDocument(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, documentsURI+"/")
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	text, err := codec.EncodeString(rec.Document)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
