package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PositionURI is the resource exposing the live position.
const PositionURI = "turtle://position"

// Engine defines what the MCP server needs from the Turtle engine.
type Engine interface {
	Execute(ctx context.Context, raw string) ([]domain.Transition, error)
	Apply(ctx context.Context, cmd domain.Command) (domain.Transition, error)
	Position() domain.Position
	Placed() bool
}

// StepResponse is the structured result of every command tool.
type StepResponse struct {
	Transitions []domain.Transition `json:"transitions" jsonschema_description:"One entry per executed command"`
	Reports     []string            `json:"reports" jsonschema_description:"Report lines produced, in order"`
	Errors      []string            `json:"errors,omitempty" jsonschema_description:"Lines that could not be parsed"`
	Position    PositionResponse    `json:"position" jsonschema_description:"Position after the commands"`
}

// PositionResponse describes the agent.
type PositionResponse struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
	Placed bool   `json:"placed"`
}

// ExecuteArgs are the arguments of the execute tool.
type ExecuteArgs struct {
	Command string `json:"command"`
}

// PlaceArgs are the arguments of the place tool.
type PlaceArgs struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

// NoArgs is used by tools that take no arguments.
type NoArgs struct{}

// Server wraps the Turtle Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("turtle-mcp", turtle.Version),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("execute",
		mcp.WithDescription("Execute one command line (PLACE X,Y,F | MOVE | LEFT | RIGHT | REPORT) or a batch file reference."),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command line")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleExecute))

	s.mcpServer.AddTool(mcp.NewTool("place",
		mcp.WithDescription("Place the turtle on the grid. Out-of-grid placements are ignored."),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Row")),
		mcp.WithString("facing", mcp.Required(), mcp.Description("Direction"),
			mcp.Enum("NORTH", "EAST", "SOUTH", "WEST")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handlePlace))

	for _, c := range []struct {
		name string
		desc string
		cmd  func() domain.Command
	}{
		{"move", "Move one cell forward unless that leaves the grid.", domain.Move},
		{"left", "Rotate 90 degrees counter-clockwise.", domain.Left},
		{"right", "Rotate 90 degrees clockwise.", domain.Right},
		{"report", "Report the position as X,Y,FACING.", domain.Report},
	} {
		build := c.cmd
		s.mcpServer.AddTool(mcp.NewTool(c.name,
			mcp.WithDescription(c.desc),
			mcp.WithOutputSchema[StepResponse](),
		), mcp.NewStructuredToolHandler(func(ctx context.Context, _ mcp.CallToolRequest, _ NoArgs) (StepResponse, error) {
			return s.apply(ctx, build())
		}))
	}

	s.mcpServer.AddTool(mcp.NewTool("position",
		mcp.WithDescription("Get the current position without reporting it."),
		mcp.WithOutputSchema[PositionResponse](),
	), mcp.NewStructuredToolHandler(func(context.Context, mcp.CallToolRequest, NoArgs) (PositionResponse, error) {
		return s.position(), nil
	}))
}

func (s *Server) handleExecute(ctx context.Context, _ mcp.CallToolRequest, args ExecuteArgs) (StepResponse, error) {
	clean, err := runner.SanitizeInput(args.Command)
	if err != nil {
		s.logger.Warn("MCP execute: input rejected", "error", err, "size", len(args.Command))
		return StepResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	transitions, err := s.engine.Execute(ctx, clean)
	resp := s.step(transitions)
	if err != nil {
		pes := turtle.ParseErrors(err)
		if len(pes) == 0 {
			return StepResponse{}, fmt.Errorf("execute failed: %w", err)
		}
		for _, pe := range pes {
			resp.Errors = append(resp.Errors, pe.Error())
		}
	}
	return resp, nil
}

func (s *Server) handlePlace(ctx context.Context, _ mcp.CallToolRequest, args PlaceArgs) (StepResponse, error) {
	return s.apply(ctx, domain.Place(args.X, args.Y, domain.ParseFacing(args.Facing)))
}

func (s *Server) apply(ctx context.Context, cmd domain.Command) (StepResponse, error) {
	t, err := s.engine.Apply(ctx, cmd)
	if err != nil {
		return StepResponse{}, fmt.Errorf("%s failed: %w", cmd.Action, err)
	}
	return s.step([]domain.Transition{t}), nil
}

func (s *Server) step(transitions []domain.Transition) StepResponse {
	resp := StepResponse{
		Transitions: transitions,
		Reports:     []string{},
		Position:    s.position(),
	}
	if resp.Transitions == nil {
		resp.Transitions = []domain.Transition{}
	}
	for _, t := range transitions {
		if t.Report != "" {
			resp.Reports = append(resp.Reports, t.Report)
		}
	}
	return resp
}

func (s *Server) position() PositionResponse {
	p := s.engine.Position()
	return PositionResponse{
		X:      p.Coordinate.X,
		Y:      p.Coordinate.Y,
		Facing: p.Facing.String(),
		Placed: s.engine.Placed(),
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PositionURI, "Current Position",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.position())
		if err != nil {
			return nil, fmt.Errorf("failed to encode position: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PositionURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
