package server

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/tools"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/transport"
)

// Server exposes the analytics engine over JSON-RPC
type Server struct {
	transport transport.Transport
	engine    *intel.Engine
	handlers  map[string]HandlerFunc
	tools     []protocol.Tool
}

// HandlerFunc is a function that handles a JSON-RPC request
type HandlerFunc func(params interface{}) (interface{}, error)

// Singleton instance
var (
	instance *Server
	once     sync.Once
	mu       sync.Mutex
)

// GetInstance returns the singleton instance of the Server
func GetInstance() *Server {
	if instance == nil {
		logger.Warn("Server instance requested but not initialized. Use InitInstance first.")
	}
	return instance
}

// InitInstance initializes the singleton instance of the Server with the
// specified transport and engine
func InitInstance(t transport.Transport, engine *intel.Engine) *Server {
	once.Do(func() {
		instance = &Server{
			transport: t,
			engine:    engine,
			handlers:  make(map[string]HandlerFunc),
			tools:     []protocol.Tool{},
		}
		instance.RegisterDefaultTools()
	})
	return instance
}

// RegisterTool registers a tool with the server
func (s *Server) RegisterTool(tool protocol.Tool, handler HandlerFunc) {
	mu.Lock()
	defer mu.Unlock()

	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
	logger.Info("Registered tool:", tool.Name)
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	mu.Lock()
	defer mu.Unlock()
	return s.tools
}

// RegisterDefaultTools registers all the default tools with the server
func (s *Server) RegisterDefaultTools() {
	logger.Info("Registering default tools...")

	s.RegisterTool(tools.PlayerPredictionTool(), HandlerFunc(tools.HandlePlayerPrediction(s.engine)))
	s.RegisterTool(tools.MatchPredictionTool(), HandlerFunc(tools.HandleMatchPrediction(s.engine)))
	s.RegisterTool(tools.TacticalVerdictTool(), HandlerFunc(tools.HandleTacticalVerdict(s.engine)))
	s.RegisterTool(tools.SimilarPlayersTool(), HandlerFunc(tools.HandleSimilarPlayers(s.engine)))
	s.RegisterTool(tools.ComparePlayersTool(), HandlerFunc(tools.HandleComparePlayers(s.engine)))
	s.RegisterTool(tools.TeamAnalysisTool(), HandlerFunc(tools.HandleTeamAnalysis(s.engine)))
	s.RegisterTool(tools.FatigueReportTool(), HandlerFunc(tools.HandleFatigueReport(s.engine)))
	s.RegisterTool(tools.LeagueLeadersTool(), HandlerFunc(tools.HandleLeagueLeaders(s.engine)))
	s.RegisterTool(tools.ScoutTool(), HandlerFunc(tools.HandleScout(s.engine)))
	s.RegisterTool(tools.FootballQueryTool(), HandlerFunc(tools.HandleFootballQuery(s.engine)))

	// Register built-in handlers
	s.handlers[string(protocol.MethodInitialize)] = s.handleInitialize
	s.handlers[string(protocol.MethodInitialized)] = s.handleInitialized
	s.handlers[string(protocol.MethodToolsList)] = s.handleToolsList
	s.handlers[string(protocol.MethodToolsCall)] = s.handleToolsCall
}

// Start starts the server and begins processing requests
func (s *Server) Start() error {
	logger.Info("Starting analytics server")

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start processing in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests()
	}()

	// Wait for either an error or a signal
	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig)
		return nil
	}
}

// ProcessRequests continuously processes incoming requests
func (s *Server) ProcessRequests() error {
	for {
		// Read a request
		req, err := s.transport.ReadRequest()
		if err != nil {
			return err
		}

		// Process the request
		// if it is nil then this is not an error, it is just that no response is required
		resp := s.handleRequest(req)
		if resp == nil {
			continue
		}

		// Send the response
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)

	// Handle notifications (no response required)
	if strings.HasPrefix(req.Method, "notifications/") {
		logger.Info("Received notification:", req.Method)
		return nil // No response for notifications
	}

	// Create a base response
	resp := &protocol.JsonRpcResponse{
		JsonRPC: protocol.JsonRpcVersion,
		ID:      req.ID,
	}

	// Find the appropriate handler
	var handler HandlerFunc
	var params any

	if req.Method == string(protocol.MethodInvokeTool) {
		// For invoke_tool, extract the tool name and parameters
		var invokeParams map[string]any
		if err := json.Unmarshal(req.Params, &invokeParams); err != nil {
			resp.Error = &protocol.JsonRpcError{
				Code:    protocol.ErrInvalidParams,
				Message: "Invalid parameters for invoke_tool: " + err.Error(),
			}
			return resp
		}

		toolName, ok := invokeParams["name"].(string)
		if !ok {
			resp.Error = &protocol.JsonRpcError{
				Code:    protocol.ErrInvalidParams,
				Message: "Missing tool name in invoke_tool parameters",
			}
			return resp
		}

		logger.Info("Tool invocation requested for:", toolName)

		handler = s.handlers[toolName]
		params = invokeParams["parameters"]
	} else {
		// For other methods, use the method name directly
		handler = s.handlers[req.Method]
		params = req.Params
	}

	// If no handler is found, return an error
	if handler == nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
		return resp
	}

	// Execute the handler
	result, err := handler(params)

	if err == nil && result == nil {
		return nil
	}

	if err != nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrToolExecutionFailed,
			Message: err.Error(),
		}
		return resp
	}

	// Set the result
	resultBytes, err := json.MarshalIndent(result, "", " ")
	if err != nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrInternal,
			Message: "Failed to marshal result: " + err.Error(),
		}
		return resp
	}
	logger.Inform("output \n", string(resultBytes))
	resp.Result = resultBytes

	return resp
}

// handleToolsList handles the tools/list method
func (s *Server) handleToolsList(params interface{}) (interface{}, error) {
	logger.Info("Handling tools/list request")

	toolsResponse := struct {
		Tools []protocol.Tool `json:"tools"`
	}{
		Tools: s.tools,
	}

	return toolsResponse, nil
}

// handleInitialize handles the initialize method
func (s *Server) handleInitialize(params interface{}) (interface{}, error) {
	logger.Info("Handling initialize request with", len(s.tools), "tools registered")

	// Extract protocol version from request params
	var requestedProtocolVersion string = "2024-11-05" // fallback

	var paramsMap map[string]interface{}
	if params != nil {
		if jsonBytes, ok := params.(json.RawMessage); ok {
			json.Unmarshal(jsonBytes, &paramsMap)
		} else if directMap, ok := params.(map[string]interface{}); ok {
			paramsMap = directMap
		}

		if version, exists := paramsMap["protocolVersion"].(string); exists {
			requestedProtocolVersion = version
			logger.Info("Using requested protocol version:", requestedProtocolVersion)
		}
	}

	capabilities := map[string]any{}
	if len(s.tools) > 0 {
		capabilities["tools"] = map[string]any{
			"listChanged": true,
		}
	}

	initializeResponse := struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}{
		ProtocolVersion: requestedProtocolVersion,
		Capabilities:    capabilities,
		ServerInfo: struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		}{
			Name:    "football-intel",
			Version: "1.0.0",
		},
	}

	return initializeResponse, nil
}

// handleInitialized handles the initialized notification
// 'initialized' Does not require a response
func (s *Server) handleInitialized(params interface{}) (interface{}, error) {
	logger.Info("Handling initialized notification")
	return nil, nil
}

func (s *Server) handleToolsCall(params any) (any, error) {
	logger.Info("Handling tools/call request")

	// Parse the parameters
	type ToolCallParams struct {
		Arguments map[string]any `json:"arguments"`
		Name      string         `json:"name"`
	}

	var toolCallParams ToolCallParams

	// Convert params to JSON and then unmarshal it
	paramsBytes, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %v", err)
	}

	if err := json.Unmarshal(paramsBytes, &toolCallParams); err != nil {
		return nil, fmt.Errorf("invalid tools/call parameters: %v", err)
	}

	logger.Info("Tool call requested for:", toolCallParams.Name)

	handler := s.handlers[toolCallParams.Name]
	if handler == nil {
		return nil, fmt.Errorf("tool not found: %s", toolCallParams.Name)
	}

	// Execute the tool with the provided arguments
	result, err := handler(toolCallParams.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tool execution failed: %v", err)
	}

	return result, nil
}
