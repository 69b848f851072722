// feedtail follows the live dialogue monitor feed and prints each turn,
// reconnecting automatically when the agent restarts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/types"
	"github.com/medimatch/medimatch-agent/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:8085/ws", "Monitor feed URL")
	flag.Parse()

	logger.SetGlobalComponent("feedtail")

	client, err := websocket.NewReconnectingClient(*url)
	if err != nil {
		logger.Fatal("invalid feed URL", err)
	}
	client.SetOnMessage(printMessage)

	if err := client.Start(); err != nil {
		logger.Warn("feed not up yet, retrying in the background")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	client.Stop()
}

func printMessage(data []byte) {
	var msg types.WebSocketMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Type != types.WSTypeLog {
		return
	}

	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return
	}
	var turn types.TurnLog
	if err := json.Unmarshal(payload, &turn); err != nil {
		return
	}
	fmt.Printf("%s [%s] user=%s %s\n", turn.Timestamp, turn.Type, turn.UserID, turn.Content)
}
