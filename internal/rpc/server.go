// Package rpc provides a JSON-RPC 2.0 server for the Driftmesh daemon.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/driftmesh/driftmesh/internal/core"
	"github.com/driftmesh/driftmesh/internal/node"
	"github.com/driftmesh/driftmesh/internal/storage"
	"github.com/driftmesh/driftmesh/internal/swap"
	"github.com/driftmesh/driftmesh/internal/wallet"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

// Server is a JSON-RPC 2.0 server.
type Server struct {
	node        *node.Node
	store       *storage.Storage
	wallet      *wallet.Service
	coordinator *swap.Coordinator
	orderBook   *OrderBookAPI
	log         *logging.Logger
	wsHub       *WSHub

	server   *http.Server
	listener net.Listener

	handlers map[string]Handler
	mu       sync.RWMutex
}

// Handler is a JSON-RPC method handler.
type Handler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Request represents a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error represents a JSON-RPC 2.0 error.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Standard error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// NewServer creates a new JSON-RPC server.
func NewServer(n *node.Node, store *storage.Storage, w *wallet.Service, coord *swap.Coordinator) *Server {
	s := &Server{
		node:        n,
		store:       store,
		wallet:      w,
		coordinator: coord,
		log:         logging.GetDefault().Component("rpc"),
		handlers:    make(map[string]Handler),
	}

	// Register handlers
	s.registerHandlers()

	return s
}

// SetCore binds the exchange core to the server's REST surface (order
// submission, snapshot fetch, trade streaming). Must be called before Start
// for the REST routes to be mounted; JSON-RPC handlers work without it.
func (s *Server) SetCore(c *core.Context) {
	s.orderBook = NewOrderBookAPI(c)
}

// registerHandlers registers all JSON-RPC method handlers.
func (s *Server) registerHandlers() {
	// Node methods
	s.handlers["node_info"] = s.nodeInfo
	s.handlers["node_status"] = s.nodeStatus

	// Peer methods
	s.handlers["peers_list"] = s.peersList
	s.handlers["peers_count"] = s.peersCount
	s.handlers["peers_connect"] = s.peersConnect
	s.handlers["peers_disconnect"] = s.peersDisconnect
	s.handlers["peers_known"] = s.peersKnown

	// Wallet methods
	s.handlers["wallet_status"] = s.walletStatus
	s.handlers["wallet_generate"] = s.walletGenerate
	s.handlers["wallet_create"] = s.walletCreate
	s.handlers["wallet_unlock"] = s.walletUnlock
	s.handlers["wallet_lock"] = s.walletLock
	s.handlers["wallet_getAddress"] = s.walletGetAddress
	s.handlers["wallet_getAllAddresses"] = s.walletGetAllAddresses
	s.handlers["wallet_getPublicKey"] = s.walletGetPublicKey
	s.handlers["wallet_supportedChains"] = s.walletSupportedChains
	s.handlers["wallet_validateMnemonic"] = s.walletValidateMnemonic
	s.handlers["wallet_getBalance"] = s.walletGetBalance
	s.handlers["wallet_getFeeEstimates"] = s.walletGetFeeEstimates
	s.handlers["wallet_send"] = s.walletSend
	s.handlers["wallet_getUTXOs"] = s.walletGetUTXOs
	s.handlers["wallet_scanBalance"] = s.walletScanBalance
	s.handlers["wallet_getAddressWithChange"] = s.walletGetAddressWithChange

	// Multi-address wallet methods (aggregates UTXOs from all addresses)
	s.handlers["wallet_sendAll"] = s.walletSendAll
	s.handlers["wallet_sendMax"] = s.walletSendMax
	s.handlers["wallet_getAggregatedBalance"] = s.walletGetAggregatedBalance
	s.handlers["wallet_listAllUTXOs"] = s.walletListAllUTXOs
	s.handlers["wallet_syncUTXOs"] = s.walletSyncUTXOs

	// EVM wallet methods
	s.handlers["wallet_sendEVM"] = s.walletSendEVM
	s.handlers["wallet_sendERC20"] = s.walletSendERC20
	s.handlers["wallet_getERC20Balance"] = s.walletGetERC20Balance
	s.handlers["wallet_getChainType"] = s.walletGetChainType
	s.handlers["wallet_listTokens"] = s.walletListTokens

	// Swap methods. Initiation itself is automatic (core.Context.onTrade);
	// these expose the HTLC lifecycle to clients and drive the P2P exchange.
	s.handlers["swap_init"] = s.swapInit
	s.handlers["swap_getAddress"] = s.swapGetAddress
	s.handlers["swap_setFunding"] = s.swapSetFunding
	s.handlers["swap_checkFunding"] = s.swapCheckFunding
	s.handlers["swap_fund"] = s.swapFund // Auto-fund: scan wallet, sign, broadcast, set funding
	s.handlers["swap_status"] = s.swapStatus

	// Swap recovery and timeout methods
	s.handlers["swap_list"] = s.swapList
	s.handlers["swap_recover"] = s.swapRecover
	s.handlers["swap_timeout"] = s.swapTimeout
	s.handlers["swap_refund"] = s.swapRefund
	s.handlers["swap_checkTimeouts"] = s.swapCheckTimeouts

	// HTLC-specific methods
	s.handlers["swap_htlcRevealSecret"] = s.swapHTLCRevealSecret
	s.handlers["swap_htlcGetSecret"] = s.swapHTLCGetSecret
	s.handlers["swap_htlcClaim"] = s.swapHTLCClaim
	s.handlers["swap_htlcRefund"] = s.swapHTLCRefund
	s.handlers["swap_htlcExtractSecret"] = s.swapHTLCExtractSecret
}

// Start starts the RPC server.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Initialize WebSocket hub
	s.wsHub = NewWSHub()
	go s.wsHub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /", s.handleRPC)
	mux.HandleFunc("POST /{$}", s.handleRPC)
	mux.HandleFunc("OPTIONS /", s.handleCORS)
	mux.HandleFunc("OPTIONS /{$}", s.handleCORS)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /ws/", s.handleWS)

	if s.orderBook != nil {
		mux.Handle("/v1/", http.StripPrefix("/v1", s.orderBook.Routes()))
	}

	s.server = &http.Server{
		Handler:      corsMiddleware(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("RPC server error", "error", err)
		}
	}()

	s.log.Info("RPC server started", "addr", addr, "ws", "ws://"+addr+"/ws")
	return nil
}

// Stop stops the RPC server.
func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// SetupSwapHandlers registers handlers for swap protocol messages received
// over the swap PubSub topic. Order gossip and matching are handled
// entirely by core.Context/the CRDT order book; this only wires the HTLC
// coordination messages exchanged once a trade's swap is active.
func (s *Server) SetupSwapHandlers() {
	swapHandler := s.node.SwapHandler()
	if swapHandler != nil {
		swapHandler.OnMessage(node.SwapMsgPubKeyExchange, s.handlePubKeyExchange)
		swapHandler.OnMessage(node.SwapMsgFundingInfo, s.handleFundingInfo)
		swapHandler.OnMessage(node.SwapMsgHTLCSecretHash, s.handleHTLCSecretHash)
		swapHandler.OnMessage(node.SwapMsgHTLCSecretReveal, s.handleHTLCSecretReveal)
		swapHandler.OnMessage(node.SwapMsgHTLCClaim, s.handleHTLCClaim)
	}

	s.log.Info("Swap message handlers registered")
}

// handleRPC handles incoming JSON-RPC requests.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nil, ParseError, "Parse error", nil)
		return
	}

	if req.JSONRPC != "2.0" {
		s.writeError(w, req.ID, InvalidRequest, "Invalid Request", nil)
		return
	}

	s.mu.RLock()
	handler, ok := s.handlers[req.Method]
	s.mu.RUnlock()

	if !ok {
		s.writeError(w, req.ID, MethodNotFound, "Method not found", req.Method)
		return
	}

	result, err := handler(r.Context(), req.Params)
	if err != nil {
		s.writeError(w, req.ID, InternalError, err.Error(), nil)
		return
	}

	s.writeResult(w, req.ID, result)
}

// writeResult writes a successful response.
func (s *Server) writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := Response{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	resp := Response{
		JSONRPC: "2.0",
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *WSHub {
	return s.wsHub
}

// handleCORS handles CORS preflight requests.
func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// corsMiddleware adds CORS headers to all responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Allow requests from any origin (for Electron apps and web clients)
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // Cache preflight for 24 hours

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
