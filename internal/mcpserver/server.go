// Package mcpserver exposes document extraction and analysis as MCP tools so
// agents can drive the pipeline over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BerylCAtieno/document-analyzer-api/internal/analyzer"
	"github.com/BerylCAtieno/document-analyzer-api/internal/extractor"
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
	"github.com/BerylCAtieno/document-analyzer-api/internal/utils"
)

const (
	ServerName    = "docanalyzer"
	ServerVersion = "0.1.0"
)

type Server struct {
	extractor   *extractor.Extractor
	analyzer    *analyzer.Analyzer
	maxFileSize int64
	logger      *utils.Logger
}

func New(ext *extractor.Extractor, an *analyzer.Analyzer, maxFileSize int64, logger *utils.Logger) *Server {
	return &Server{
		extractor:   ext,
		analyzer:    an,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Run serves the tools on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: ServerVersion}, nil)
	s.Register(srv)

	s.logger.Info("Starting MCP server", "transport", "stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// Register adds every document tool to srv.
func (s *Server) Register(srv *mcp.Server) {
	s.registerExtractTool(srv)
	s.registerAnalysisTools(srv)
}

type toolFunc func(ctx context.Context, args json.RawMessage) (any, error)

// addTool marshals the handler's result as a single text content block.
// Handler failures become tool errors rather than protocol errors.
func (s *Server) addTool(srv *mcp.Server, tool *mcp.Tool, handle toolFunc) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := handle(ctx, req.Params.Arguments)
		if err != nil {
			s.logger.Warn("Tool call failed", "tool", tool.Name, "error", err)
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func decodeArgs(args json.RawMessage, dst any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// --- extract_document ---

type extractArgs struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

type extractResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Text        string `json:"text"`
	Characters  int    `json:"characters"`
}

func (s *Server) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "extract_document",
		Description: "Extract the full text of a local PDF, DOCX or plain text file. Scanned PDFs fall back to OCR when it is available.",
		InputSchema: inputSchema(map[string]any{
			"path":         stringProp("Path of the document on the server's filesystem"),
			"content_type": stringProp("Declared MIME type; derived from the file extension when omitted"),
		}, []string{"path"}),
	}

	s.addTool(srv, tool, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args extractArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if args.Path == "" {
			return nil, errors.New("path is required")
		}

		doc, err := extractor.LoadFile(args.Path, args.ContentType, s.maxFileSize)
		if err != nil {
			return nil, err
		}
		format, err := extractor.DetectFormat(doc.ContentType)
		if err != nil {
			return nil, err
		}
		text, err := s.extractor.ExtractFormat(ctx, format, doc.Data)
		if err != nil {
			return nil, err
		}

		return &extractResult{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Text:        text,
			Characters:  len([]rune(text)),
		}, nil
	})
}

// --- analysis tools ---

type analysisArgs struct {
	Text     string `json:"text"`
	Question string `json:"question"`
	Text1    string `json:"text1"`
	Text2    string `json:"text2"`
}

type analysisTool struct {
	name        string
	kind        models.AnalysisKind
	description string
	properties  map[string]any
	required    []string
}

var analysisTools = []analysisTool{
	{
		name:        "summarize",
		kind:        models.KindSummarize,
		description: "Summarize document text as bullet points covering objectives, findings, conclusions and supporting data.",
		properties:  map[string]any{"text": stringProp("Document text")},
		required:    []string{"text"},
	},
	{
		name:        "answer_question",
		kind:        models.KindQuestionAnswer,
		description: "Answer a question using only the given document text.",
		properties: map[string]any{
			"text":     stringProp("Document text"),
			"question": stringProp("Question to answer"),
		},
		required: []string{"text", "question"},
	},
	{
		name:        "extract_key_elements",
		kind:        models.KindKeyElements,
		description: "Extract conclusions, recommendations, data points and key terms as JSON arrays.",
		properties:  map[string]any{"text": stringProp("Document text")},
		required:    []string{"text"},
	},
	{
		name:        "recognize_entities",
		kind:        models.KindEntities,
		description: "List PERSON, ORG, GEO, DATE and TECH entities found in the document text.",
		properties:  map[string]any{"text": stringProp("Document text")},
		required:    []string{"text"},
	},
	{
		name:        "compare_documents",
		kind:        models.KindCompare,
		description: "Compare two documents and describe their differences.",
		properties: map[string]any{
			"text1": stringProp("Text of the first document"),
			"text2": stringProp("Text of the second document"),
		},
		required: []string{"text1", "text2"},
	},
}

func (s *Server) registerAnalysisTools(srv *mcp.Server) {
	for _, at := range analysisTools {
		tool := &mcp.Tool{
			Name:        at.name,
			Description: at.description,
			InputSchema: inputSchema(at.properties, at.required),
		}

		kind := at.kind
		s.addTool(srv, tool, func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args analysisArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}

			req := models.AnalysisRequest{Kind: kind, DocumentText: args.Text, Question: args.Question}
			if kind == models.KindCompare {
				req.DocumentText = args.Text1
				req.SecondDocumentText = args.Text2
			}

			result, err := s.analyzer.Analyze(ctx, req)
			if err != nil {
				return nil, err
			}
			return result.Payload(), nil
		})
	}
}
