package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/loppers/internal/concat"
	"github.com/mvp-joe/loppers/internal/config"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// ServerConfig holds what the tools need to serve a project.
type ServerConfig struct {
	// ProjectRoot bounds every path a tool may read.
	ProjectRoot string
	Config      *config.Config
	Extractor   *skeleton.Extractor
	// Cache reuses skeletons across concatenate calls. NewMCPServer creates one when nil.
	Cache       *concat.Cache
	Version     string
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config *ServerConfig
	mcp    *server.MCPServer
}

// NewMCPServer creates an MCP server exposing the skeleton tools.
func NewMCPServer(cfg *ServerConfig) (*MCPServer, error) {
	if cfg == nil || cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root is required")
	}

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	resolved := *cfg
	resolved.ProjectRoot = root
	if resolved.Config == nil {
		resolved.Config = config.Default()
	}
	if resolved.Extractor == nil {
		resolved.Extractor = skeleton.Default()
	}
	if resolved.Cache == nil {
		cache, err := concat.NewCache(concat.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		resolved.Cache = cache
	}
	if resolved.Version == "" {
		resolved.Version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"loppers",
		resolved.Version,
		server.WithToolCapabilities(true),
	)

	AddSkeletonExtractTool(mcpServer, &resolved)
	AddSkeletonConcatenateTool(mcpServer, &resolved)
	AddSkeletonLanguagesTool(mcpServer, resolved.Extractor.Registry())

	return &MCPServer{
		config: &resolved,
		mcp:    mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio for %s...", s.config.ProjectRoot)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Server returns the underlying mcp-go server.
func (s *MCPServer) Server() *server.MCPServer {
	return s.mcp
}
