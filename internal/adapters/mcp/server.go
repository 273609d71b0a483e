package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

const maxLocalFileBytes = 32 << 20

// TextSource turns raw file bytes into a classification snippet.
type TextSource interface {
	ExtractBytes(fileName, mimeType string, raw []byte) (string, error)
}

type Tools struct {
	classifier ports.DocumentClassifier
	text       TextSource
	logger     *slog.Logger
}

// NewServer registers classify_document and list_categories. text may be nil, in which case
// the path argument is rejected.
func NewServer(version string, classifier ports.DocumentClassifier, text TextSource, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	tools := &Tools{classifier: classifier, text: text, logger: logger}

	s := server.NewMCPServer(
		"doctype-classifier",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(classifyTool(), tools.classifyDocument)
	s.AddTool(categoriesTool(), tools.listCategories)
	return s
}

func classifyTool() mcp.Tool {
	return mcp.NewTool("classify_document",
		mcp.WithDescription("Classify a document into exactly one document type using its file name and optional text content."),
		mcp.WithString("file_name", mcp.Description("Original file name, e.g. 'Edital_Pregao_12.pdf'.")),
		mcp.WithString("content", mcp.Description("Plain-text snippet of the document. Only the first 4000 characters are used.")),
		mcp.WithString("path", mcp.Description("Local file to read instead of content; its text is extracted by format.")),
	)
}

func categoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List the closed vocabulary of document types in prompt order."),
	)
}

func (t *Tools) classifyDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileName := strings.TrimSpace(request.GetString("file_name", ""))
	content := request.GetString("content", "")
	path := strings.TrimSpace(request.GetString("path", ""))

	if path != "" {
		text, err := t.readLocal(path)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("cannot read document", err), nil
		}
		content = text
		if fileName == "" {
			fileName = filepath.Base(path)
		}
	}

	category, err := t.classifier.Classify(ctx, fileName, content)
	if err != nil {
		t.logger.Error("mcp_classify_failed", "file_name", fileName, "error", err)
		return mcp.NewToolResultErrorFromErr("classification failed", err), nil
	}
	return jsonResult(map[string]string{"file_name": fileName, "category": string(category)})
}

func (t *Tools) listCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string][]domain.Category{"categories": domain.Categories()})
}

// readLocal classifies unsupported formats by name only.
func (t *Tools) readLocal(path string) (string, error) {
	if t.text == nil {
		return "", errors.New("local files are not enabled")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxLocalFileBytes {
		return "", fmt.Errorf("%s exceeds %d bytes", path, maxLocalFileBytes)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := t.text.ExtractBytes(filepath.Base(path), "", raw)
	if domain.IsKind(err, domain.ErrUnsupportedFormat) {
		return "", nil
	}
	return text, err
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
