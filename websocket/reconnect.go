package websocket

import (
	"context"
	"net/url"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/medimatch/medimatch-agent/logger"
)

const (
	initialReconnectDelay    = 1 * time.Second
	maxReconnectDelay        = 30 * time.Second
	reconnectDelayMultiplier = 2
	// 0 means retry forever.
	maxReconnectAttempts = 0
)

// ReconnectingClient is a monitor-side consumer of the turn feed that
// survives server restarts. Used by the tail CLI.
type ReconnectingClient struct {
	url *url.URL
	log *logger.Logger

	conn   *gorilla.Conn
	connMu sync.RWMutex

	reconnectDelay time.Duration
	reconnectCount int
	isConnected    bool
	connectMu      sync.Mutex

	send      chan []byte
	receive   chan []byte
	reconnect chan struct{}

	onConnect    func()
	onDisconnect func()
	onMessage    func([]byte)

	ctx    context.Context
	cancel context.CancelFunc
}

func NewReconnectingClient(urlStr string) (*ReconnectingClient, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ReconnectingClient{
		url:            u,
		log:            logger.GetLogger().WithField("component", "monitor-client"),
		reconnectDelay: initialReconnectDelay,
		send:           make(chan []byte, sendBufferSize),
		receive:        make(chan []byte, sendBufferSize),
		reconnect:      make(chan struct{}, 1),
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

// Start begins the connect loop. A failed first dial is not fatal; the
// client keeps retrying in the background.
func (rc *ReconnectingClient) Start() error {
	go rc.reconnectLoop()

	if err := rc.Connect(); err != nil {
		rc.scheduleReconnect()
		return err
	}
	return nil
}

// Stop tears the client down for good.
func (rc *ReconnectingClient) Stop() {
	rc.cancel()
	rc.Disconnect()
	close(rc.send)
	close(rc.receive)
}

// Connect dials the feed once.
func (rc *ReconnectingClient) Connect() error {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()

	if rc.isConnected {
		return ErrAlreadyConnected
	}

	dialer := gorilla.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(rc.url.String(), nil)
	if err != nil {
		return err
	}

	rc.connMu.Lock()
	rc.conn = conn
	rc.connMu.Unlock()

	rc.isConnected = true
	rc.reconnectCount = 0
	rc.reconnectDelay = initialReconnectDelay

	if rc.onConnect != nil {
		go rc.onConnect()
	}

	go rc.readPump()
	go rc.writePump()

	rc.log.WithField("url", rc.url.String()).Info("feed connected")
	return nil
}

// Disconnect closes the current connection without stopping the retry loop.
func (rc *ReconnectingClient) Disconnect() {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()

	if !rc.isConnected {
		return
	}
	rc.isConnected = false

	rc.connMu.Lock()
	if rc.conn != nil {
		rc.conn.Close()
		rc.conn = nil
	}
	rc.connMu.Unlock()

	if rc.onDisconnect != nil {
		go rc.onDisconnect()
	}
	rc.log.WithField("url", rc.url.String()).Info("feed disconnected")
}

func (rc *ReconnectingClient) reconnectLoop() {
	for {
		select {
		case <-rc.ctx.Done():
			return
		case <-rc.reconnect:
			if rc.IsConnected() {
				continue
			}

			time.Sleep(rc.reconnectDelay)

			if err := rc.Connect(); err != nil {
				rc.reconnectCount++
				rc.log.WithField("attempt", rc.reconnectCount).Error("reconnect failed", err)

				if maxReconnectAttempts > 0 && rc.reconnectCount >= maxReconnectAttempts {
					rc.log.Error("giving up on feed", ErrMaxReconnectAttemptsReached)
					rc.cancel()
					return
				}

				rc.reconnectDelay *= reconnectDelayMultiplier
				if rc.reconnectDelay > maxReconnectDelay {
					rc.reconnectDelay = maxReconnectDelay
				}
				rc.scheduleReconnect()
			}
		}
	}
}

func (rc *ReconnectingClient) scheduleReconnect() {
	select {
	case rc.reconnect <- struct{}{}:
	default:
	}
}

func (rc *ReconnectingClient) readPump() {
	defer func() {
		rc.Disconnect()
		rc.scheduleReconnect()
	}()

	rc.connMu.RLock()
	conn := rc.conn
	rc.connMu.RUnlock()
	if conn == nil {
		return
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseAbnormalClosure) {
				rc.log.Error("feed read failed", err)
			}
			return
		}

		select {
		case rc.receive <- message:
		case <-rc.ctx.Done():
			return
		}

		if rc.onMessage != nil {
			go rc.onMessage(message)
		}
	}
}

func (rc *ReconnectingClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		rc.Disconnect()
	}()

	rc.connMu.RLock()
	conn := rc.conn
	rc.connMu.RUnlock()
	if conn == nil {
		return
	}

	for {
		select {
		case message, ok := <-rc.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(gorilla.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(gorilla.TextMessage, message); err != nil {
				rc.log.Error("feed write failed", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorilla.PingMessage, nil); err != nil {
				return
			}
		case <-rc.ctx.Done():
			return
		}
	}
}

// Send queues an outbound message; the feed is one-way in practice but the
// transport allows it.
func (rc *ReconnectingClient) Send(message []byte) error {
	select {
	case rc.send <- message:
		return nil
	case <-rc.ctx.Done():
		return context.Canceled
	default:
		return ErrBufferFull
	}
}

// Receive exposes the inbound message stream.
func (rc *ReconnectingClient) Receive() <-chan []byte {
	return rc.receive
}

func (rc *ReconnectingClient) SetOnConnect(fn func())      { rc.onConnect = fn }
func (rc *ReconnectingClient) SetOnDisconnect(fn func())   { rc.onDisconnect = fn }
func (rc *ReconnectingClient) SetOnMessage(fn func([]byte)) { rc.onMessage = fn }

func (rc *ReconnectingClient) IsConnected() bool {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()
	return rc.isConnected
}
