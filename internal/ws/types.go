package ws

import "encoding/json"

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgReady = "ready"
	MsgPong  = "pong"
)

type message struct {
	Type string `json:"type"`
}

func controlMessage(typ string) []byte {
	b, _ := json.Marshal(message{Type: typ})
	return b
}
