package transport

import "encoding/json"

const jsonRPCVersion = "2.0"

// initializeMessage is the minimal JSON-RPC request used to probe for the
// streamable HTTP transport. Servers only need to recognize the method.
type initializeMessage struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
}

func newInitializeMessage(id string) initializeMessage {
	return initializeMessage{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Method:  "initialize",
	}
}

func (m initializeMessage) encode() ([]byte, error) {
	return json.Marshal(m)
}
