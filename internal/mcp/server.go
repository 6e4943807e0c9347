// Package mcp exposes the popgrow derivation engine as a Model
// Context Protocol server, over stdio or SSE.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"popgrow"
	"popgrow/codegen"
	"popgrow/equiv"
	"popgrow/expr"
	"popgrow/model"
	"popgrow/sim"
)

// DeriveResponse is the structured result of the derive tool.
type DeriveResponse struct {
	Input      string   `json:"input" jsonschema_description:"The growth equation as given"`
	Class      string   `json:"class" jsonschema_description:"Recognized equation class"`
	General    string   `json:"general" jsonschema_description:"General solution with integration constant"`
	Constant   string   `json:"constant,omitempty" jsonschema_description:"Bound value of the integration constant"`
	Solution   string   `json:"solution,omitempty" jsonschema_description:"Particular solution formula"`
	LaTeX      string   `json:"latex,omitempty" jsonschema_description:"Particular solution in LaTeX"`
	Alternates []string `json:"alternates,omitempty" jsonschema_description:"Unused constant candidates from multi-root bindings"`
}

// EquivalenceResponse is the structured result of the equivalence tool.
type EquivalenceResponse struct {
	Verdict  string `json:"verdict" jsonschema_description:"equivalent or inconclusive"`
	Residual string `json:"residual" jsonschema_description:"Expanded residual that was tested against zero"`
}

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	Method string      `json:"method"`
	Points []sim.Point `json:"points"`
}

// Server wraps the derivation pipeline as an MCP server.
type Server struct {
	catalog   model.Catalog
	mcpServer *server.MCPServer
}

// NewServer builds the server with all tools registered.
func NewServer(catalog model.Catalog) *Server {
	s := &Server{
		catalog:   catalog,
		mcpServer: server.NewMCPServer("popgrow-mcp", strings.TrimSpace(popgrow.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	deriveTool := mcp.NewTool("derive",
		mcp.WithDescription("Derive the closed-form solution of a population growth equation, e.g. df(t)/dt = r*f(t)*(1 - f(t)/K)."),
		mcp.WithString("equation", mcp.Required(), mcp.Description("Growth equation with df(t)/dt on one side")),
		mcp.WithString("initial", mcp.Description("Initial population expression, default p0")),
		mcp.WithString("t0", mcp.Description("Time of the initial condition, default 0")),
		mcp.WithOutputSchema[DeriveResponse](),
	)
	s.mcpServer.AddTool(deriveTool, mcp.NewStructuredToolHandler(s.handleDerive))

	simplifyTool := mcp.NewTool("simplify",
		mcp.WithDescription("Canonicalize a symbolic expression."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression to simplify")),
	)
	s.mcpServer.AddTool(simplifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := request.RequireString("expression")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		e, err := expr.Parse(src)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
		}
		return mcp.NewToolResultText(e.Simplify().String()), nil
	})

	equivTool := mcp.NewTool("equivalence",
		mcp.WithDescription("Check whether two expressions are provably the same. Verdicts are equivalent or inconclusive, never a proof of difference."),
		mcp.WithString("a", mcp.Required(), mcp.Description("First expression")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second expression")),
		mcp.WithOutputSchema[EquivalenceResponse](),
	)
	s.mcpServer.AddTool(equivTool, mcp.NewStructuredToolHandler(s.handleEquivalence))

	emitTool := mcp.NewTool("emit",
		mcp.WithDescription("Emit a derived solution as Go source."),
		mcp.WithString("equation", mcp.Required(), mcp.Description("Growth equation")),
		mcp.WithString("package", mcp.Description("Go package name, default growth")),
		mcp.WithString("func", mcp.Description("Function name, default Population")),
	)
	s.mcpServer.AddTool(emitTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		eq, err := request.RequireString("equation")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		pkg := request.GetString("package", "growth")
		fn := request.GetString("func", "Population")
		d, err := popgrow.Derive(eq, expr.Int(0), expr.Var("p0"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(codegen.GoSource(pkg, fn, d.Particular)), nil
	})

	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Numerically integrate a growth equation with rk4, euler or the discrete difference reading."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Catalog model name")),
		mcp.WithString("method", mcp.Description("rk4 (default), euler or difference")),
		mcp.WithNumber("step", mcp.Description("Step size, default 0.1")),
		mcp.WithNumber("steps", mcp.Description("Number of steps, default 100")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the growth models in the catalog."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var b strings.Builder
		for _, m := range s.catalog.Models {
			fmt.Fprintf(&b, "%s: %s (%s)\n", m.Name, m.Equation, m.Description)
		}
		return mcp.NewToolResultText(b.String()), nil
	})
}

func (s *Server) handleDerive(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DeriveResponse, error) {
	eqSrc, _ := args["equation"].(string)
	if eqSrc == "" {
		return DeriveResponse{}, fmt.Errorf("equation is required")
	}
	p0Src, _ := args["initial"].(string)
	if p0Src == "" {
		p0Src = "p0"
	}
	t0Src, _ := args["t0"].(string)
	if t0Src == "" {
		t0Src = "0"
	}
	p0, err := expr.Parse(p0Src)
	if err != nil {
		return DeriveResponse{}, fmt.Errorf("initial: %w", err)
	}
	t0, err := expr.Parse(t0Src)
	if err != nil {
		return DeriveResponse{}, fmt.Errorf("t0: %w", err)
	}

	d, err := popgrow.Derive(eqSrc, t0, p0)
	if err != nil {
		return DeriveResponse{}, err
	}
	resp := DeriveResponse{
		Input:    d.Input.String(),
		Class:    string(d.General.Class),
		General:  d.General.String(),
		Constant: codegen.Formula(d.Particular.Constant),
		Solution: codegen.FormulaEquation(d.Particular.Fn, d.Particular.Var, d.Particular.Expr),
		LaTeX:    d.Particular.Expr.LaTeX(),
	}
	for _, alt := range d.Particular.Alternates {
		resp.Alternates = append(resp.Alternates, codegen.Formula(alt))
	}
	return resp, nil
}

func (s *Server) handleEquivalence(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EquivalenceResponse, error) {
	aSrc, _ := args["a"].(string)
	bSrc, _ := args["b"].(string)
	a, err := expr.Parse(aSrc)
	if err != nil {
		return EquivalenceResponse{}, fmt.Errorf("a: %w", err)
	}
	b, err := expr.Parse(bSrc)
	if err != nil {
		return EquivalenceResponse{}, fmt.Errorf("b: %w", err)
	}
	res := equiv.Check(a, b)
	return EquivalenceResponse{
		Verdict:  res.Status.String(),
		Residual: res.Residual.String(),
	}, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	name, _ := args["model"].(string)
	m, err := s.catalog.Find(name)
	if err != nil {
		return SimulateResponse{}, err
	}
	rhs, fn, ivar, err := m.Growth()
	if err != nil {
		return SimulateResponse{}, err
	}

	method, _ := args["method"].(string)
	if method == "" {
		method = "rk4"
	}
	step := 0.1
	if v, ok := args["step"].(float64); ok && v > 0 {
		step = v
	}
	steps := 100
	if v, ok := args["steps"].(float64); ok && v > 0 {
		steps = int(v)
	}

	params := m.Defaults()
	p0 := params[m.Initial]
	f := sim.CompileRHS(rhs, fn, ivar, params)

	var pts []sim.Point
	switch method {
	case "rk4":
		pts, err = sim.RK4(f, 0, p0, step, steps)
	case "euler":
		pts, err = sim.Euler(f, 0, p0, step, steps)
	case "difference":
		pts, err = sim.Difference(f, p0, steps)
	default:
		return SimulateResponse{}, fmt.Errorf("unknown method %q", method)
	}
	if err != nil {
		return SimulateResponse{}, err
	}
	return SimulateResponse{Method: method, Points: pts}, nil
}
