// compgen-analyzer serves component descriptors to editor tooling.
// It runs as a long-lived process communicating via JSON-RPC over stdin/stdout.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/njreid/compgen/pkg/catalog"
	"github.com/njreid/compgen/pkg/catalog/gotypes"
	"github.com/njreid/compgen/pkg/descriptor"
	"github.com/njreid/compgen/pkg/discovery"
)

// JSON-RPC request/response types
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
	codeNotInitialized = -32002
)

// Request params
type InitializeParams struct {
	WorkspaceRoot string   `json:"workspaceRoot"`
	Patterns      []string `json:"patterns,omitempty"`
	// Runtime is the import path of the component runtime.
	Runtime string `json:"runtime,omitempty"`
}

type DescribeParams struct {
	TagName string `json:"tagName"`
}

type GetTypeInfoParams struct {
	TypeName string `json:"typeName"` // e.g., "example.com/app/ui.Grid"
}

// Response results
type InitializeResult struct {
	Initialized bool     `json:"initialized"`
	Programs    []string `json:"programs"`
}

type DiscoverResult struct {
	Descriptors json.RawMessage   `json:"descriptors"`
	Disabled    map[string]string `json:"disabled,omitempty"`
}

type TypeInfoResult struct {
	Kind           string      `json:"kind"`
	TypeParameters []string    `json:"typeParameters,omitempty"`
	Interfaces     []string    `json:"interfaces,omitempty"`
	Fields         []FieldInfo `json:"fields,omitempty"`
	Documentation  string      `json:"documentation,omitempty"`
}

type FieldInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exported bool   `json:"exported"`
}

// Analyzer holds the workspace state
type Analyzer struct {
	cat *gotypes.Catalog
	d   *discovery.Discoverer

	once sync.Once
	ds   []*descriptor.Descriptor
	err  error
}

func NewAnalyzer(ctx context.Context, params InitializeParams, logger *slog.Logger) (*Analyzer, error) {
	if params.WorkspaceRoot == "" {
		return nil, errors.New("workspaceRoot is required")
	}
	runtime := params.Runtime
	if runtime == "" {
		runtime = discovery.DefaultRuntimePackage
	}
	wk := discovery.WellKnownFor(runtime, gotypes.DefaultMarker)
	cat, err := gotypes.Load(ctx, gotypes.Config{
		Dir:        params.WorkspaceRoot,
		Patterns:   params.Patterns,
		Interfaces: []string{wk.ComponentInterface},
	})
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		cat: cat,
		d:   discovery.New(cat, discovery.Options{WellKnown: wk, Parallelism: 4, Logger: logger}),
	}, nil
}

// Descriptors runs discovery once and caches the result.
func (a *Analyzer) Descriptors(ctx context.Context) ([]*descriptor.Descriptor, error) {
	a.once.Do(func() {
		a.ds, a.err = a.d.Discover(ctx)
	})
	return a.ds, a.err
}

// Describe returns the descriptors with a rule matching tag.
func (a *Analyzer) Describe(ctx context.Context, tag string) ([]*descriptor.Descriptor, error) {
	ds, err := a.Descriptors(ctx)
	if err != nil {
		return nil, err
	}
	var out []*descriptor.Descriptor
	for _, d := range ds {
		for _, r := range d.TagMatchingRules() {
			if r.TagName == tag || (!r.CaseSensitive && strings.EqualFold(r.TagName, tag)) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

// GetTypeInfo returns field info for a fully-qualified type name.
func (a *Analyzer) GetTypeInfo(typeName string) (*TypeInfoResult, error) {
	t, ok := a.cat.ResolveByName(typeName)
	if !ok {
		return nil, fmt.Errorf("type %s not found", typeName)
	}
	result := &TypeInfoResult{
		Kind:           t.Kind.String(),
		TypeParameters: t.TypeParameters,
		Interfaces:     t.Interfaces,
		Documentation:  t.Documentation,
	}
	for _, m := range a.cat.EnumerateMembers(t) {
		p, ok := m.(*catalog.Property)
		if !ok {
			continue
		}
		result.Fields = append(result.Fields, FieldInfo{
			Name:     p.Name,
			Type:     p.Type.String(),
			Exported: p.Setter == catalog.PublicSetter,
		})
	}
	return result, nil
}

func (a *Analyzer) programs() []string {
	var names []string
	for _, p := range a.cat.Programs() {
		names = append(names, p.Name)
	}
	return names
}

type server struct {
	analyzer *Analyzer
	logger   *slog.Logger
}

// serve answers requests read line by line from r until r is exhausted or
// a shutdown request arrives.
func serve(ctx context.Context, r io.Reader, w io.Writer, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	encoder := json.NewEncoder(w)
	s := &server{logger: logger}

	for scanner.Scan() {
		var req Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			encoder.Encode(Response{
				JSONRPC: "2.0",
				Error:   &RPCError{Code: codeParseError, Message: fmt.Sprintf("Parse error: %v", err)},
			})
			continue
		}
		if req.Method == "shutdown" {
			logger.Debug("shutdown requested")
			return encoder.Encode(Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]bool{"shutdown": true}})
		}

		result, rpcErr := s.handle(ctx, req)
		resp := Response{
			JSONRPC: "2.0",
			ID:      req.ID,
		}
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *server) handle(ctx context.Context, req Request) (any, *RPCError) {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		var params InitializeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, invalidParams(err)
		}
		a, err := NewAnalyzer(ctx, params, s.logger)
		if err != nil {
			return nil, &RPCError{Code: codeServerError, Message: err.Error()}
		}
		s.analyzer = a
		return InitializeResult{Initialized: true, Programs: a.programs()}, nil

	case "discover":
		if s.analyzer == nil {
			return nil, notInitialized()
		}
		ds, err := s.analyzer.Descriptors(ctx)
		if err != nil {
			return nil, &RPCError{Code: codeServerError, Message: err.Error()}
		}
		return describeResult(ds, s.analyzer.d.Disabled())

	case "describe":
		if s.analyzer == nil {
			return nil, notInitialized()
		}
		var params DescribeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, invalidParams(err)
		}
		ds, err := s.analyzer.Describe(ctx, params.TagName)
		if err != nil {
			return nil, &RPCError{Code: codeServerError, Message: err.Error()}
		}
		return describeResult(ds, nil)

	case "getTypeInfo":
		if s.analyzer == nil {
			return nil, notInitialized()
		}
		var params GetTypeInfoParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, invalidParams(err)
		}
		info, err := s.analyzer.GetTypeInfo(params.TypeName)
		if err != nil {
			return nil, &RPCError{Code: codeServerError, Message: err.Error()}
		}
		return info, nil

	default:
		return nil, &RPCError{Code: codeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", req.Method)}
	}
}

func describeResult(ds []*descriptor.Descriptor, disabled map[discovery.Feature]string) (any, *RPCError) {
	raw, err := descriptor.MarshalJSON(ds, false)
	if err != nil {
		return nil, &RPCError{Code: codeServerError, Message: err.Error()}
	}
	res := DiscoverResult{Descriptors: raw}
	if len(disabled) > 0 {
		res.Disabled = make(map[string]string, len(disabled))
		for f, missing := range disabled {
			res.Disabled[string(f)] = missing
		}
	}
	return res, nil
}

func invalidParams(err error) *RPCError {
	return &RPCError{Code: codeInvalidParams, Message: fmt.Sprintf("Invalid params: %v", err)}
}

func notInitialized() *RPCError {
	return &RPCError{Code: codeNotInitialized, Message: "Analyzer not initialized"}
}

func main() {
	level := slog.LevelInfo
	if os.Getenv("COMPGEN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := serve(context.Background(), os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}
}
