package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Layr-Labs/colorchain-go/pkg/host"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
)

func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}

	raw, err := wallet.ParseRawKey(req.PrivateKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer wallet.Wipe(raw)

	address, err := s.bridge.GetAddress(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, types.AddressResponse{Address: address})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}

	recorder := host.NewRecordingReceiver()
	if err := s.bridge.GetBalance(r.Context(), req.Address, req.RpcUrl, s.receiverFor(recorder, req.CallbackUrl)); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, types.CallbackResponse{Callbacks: recorder.Calls()})
}

func (s *Server) handleGetColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}

	raw, err := wallet.ParseRawKey(req.PrivateKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer wallet.Wipe(raw)

	recorder := host.NewRecordingReceiver()
	err = s.bridge.GetColor(r.Context(), raw, req.ChainId, req.ContractAddress, req.RpcUrl, s.receiverFor(recorder, req.CallbackUrl))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, types.CallbackResponse{Callbacks: recorder.Calls()})
}

func (s *Server) handleSendColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.SendColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}

	raw, err := wallet.ParseRawKey(req.PrivateKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer wallet.Wipe(raw)

	receipt, err := s.bridge.SendColor(r.Context(), raw, req.ChainId, req.ContractAddress, req.RpcUrl, req.Color)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, types.SendColorResponse{Receipt: receipt})
}

// receiverFor records the callback for the response and, when the host gave
// a callback URL, also posts it there
func (s *Server) receiverFor(recorder *host.RecordingReceiver, callbackUrl string) host.Receiver {
	if callbackUrl == "" {
		return recorder
	}
	return host.Tee(recorder, host.NewHTTPReceiver(callbackUrl, s.callbackClient, s.logger))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := types.KindOf(err)
	status := statusForKind(kind)
	if status >= http.StatusInternalServerError {
		s.logger.Sugar().Errorw("Request failed", "kind", kind, "error", err)
	} else {
		s.logger.Sugar().Debugw("Request rejected", "kind", kind, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Kind: kind, Message: err.Error()})
}

func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.ErrorKindInvalidKeyMaterial, types.ErrorKindInvalidAddress, types.ErrorKindEndpointUnreachableOrInvalid:
		return http.StatusBadRequest
	case types.ErrorKindRpc, types.ErrorKindSubmission, types.ErrorKindConfirmation, types.ErrorKindHostDelivery:
		return http.StatusBadGateway
	case types.ErrorKindExecutorInit:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
