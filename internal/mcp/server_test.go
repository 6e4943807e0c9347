package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"popgrow/model"
)

func newTestServer() *Server {
	return NewServer(model.Builtin())
}

func TestHandleDerive_Defaults(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleDerive(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"equation": "df(t)/dt = alpha*f(t)",
	})
	require.NoError(t, err)
	require.Equal(t, "linear", resp.Class)
	require.Equal(t, "f(t) = p0*exp(alpha*t)", resp.Solution)
	require.Equal(t, "p0", resp.Constant)
}

func TestHandleDerive_CustomInitial(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleDerive(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"equation": "df(t)/dt = c",
		"initial":  "x0",
	})
	require.NoError(t, err)
	require.Equal(t, "f(t) = c*t + x0", resp.Solution)
}

func TestHandleDerive_MissingEquation(t *testing.T) {
	s := newTestServer()
	_, err := s.handleDerive(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	require.Error(t, err)
}

func TestHandleEquivalence(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleEquivalence(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"a": "(x + 1)*(x - 1)",
		"b": "x^2 - 1",
	})
	require.NoError(t, err)
	require.Equal(t, "equivalent", resp.Verdict)

	resp, err = s.handleEquivalence(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"a": "x",
		"b": "x + 1",
	})
	require.NoError(t, err)
	require.Equal(t, "inconclusive", resp.Verdict)
}

func TestHandleSimulate_Logistic(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"model": "logistic",
		"steps": 10.0,
	})
	require.NoError(t, err)
	require.Equal(t, "rk4", resp.Method)
	require.Len(t, resp.Points, 11)
	require.Equal(t, 10.0, resp.Points[0].P, "starts at the model default initial population")
}

func TestHandleSimulate_CustomFunctionName(t *testing.T) {
	catalog := model.Builtin().Merge(model.Catalog{Models: []model.Model{{
		Name:           "decay",
		Equation:       "dn(s)/ds = -lambda*n(s)",
		Initial:        "n0",
		InitialDefault: 100,
		Params:         []model.Param{{Name: "lambda", Default: 0.5}},
	}}})
	s := NewServer(catalog)
	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"model": "decay",
		"steps": 5.0,
	})
	require.NoError(t, err)
	require.Len(t, resp.Points, 6)
	require.Equal(t, 100.0, resp.Points[0].P)
	require.Less(t, resp.Points[5].P, 100.0)
}

func TestHandleSimulate_UnknownModel(t *testing.T) {
	s := newTestServer()
	_, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"model": "gompertz",
	})
	require.Error(t, err)
}

func TestHandleSimulate_UnknownMethod(t *testing.T) {
	s := newTestServer()
	_, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"model":  "constant",
		"method": "leapfrog",
	})
	require.Error(t, err)
}
