package websocketPkg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"moodcam/pkg/vision"
)

// ILandmarkClient talks to the face-mesh service. Frames are sent as binary JPEG
// messages and answered with one JSON landmarkResponse each.
type ILandmarkClient interface {
	vision.LandmarkDetector
	IsConnected() bool
	Reconnect() error
	Close()
}

type landmarkResponse struct {
	Landmarks []vision.Landmark `json:"landmarks"`
	Error     string            `json:"error,omitempty"`
}

type landmarkClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	log          *logrus.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
}

var (
	ErrLandmarkURLMissing   = errors.New("landmark service URL not configured")
	ErrLandmarkClientClosed = errors.New("landmark client closed")
)

func NewLandmarkClient(log *logrus.Logger, url string) ILandmarkClient {
	client := &landmarkClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
	}

	go client.connectInBackground()

	return client
}

func (c *landmarkClient) connectInBackground() {
	if err := c.dial(false); err != nil {
		c.log.Warnf("Initial connection to landmark service failed: %v. Will retry on demand.", err)
		return
	}
	c.log.Info("Successfully connected to landmark service")
}

func (c *landmarkClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

// Reconnect drops the current connection, if any, and dials again.
func (c *landmarkClient) Reconnect() error {
	return c.dial(true)
}

func (c *landmarkClient) dial(force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return ErrLandmarkClientClosed
	default:
	}

	if c.conn != nil {
		if !force {
			return nil
		}
		c.conn.Close()
		c.conn = nil
	}

	if c.url == "" {
		return ErrLandmarkURLMissing
	}

	c.log.Infof("Connecting to landmark service at %s", c.url)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *landmarkClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Warnf("Ping failed for landmark service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *landmarkClient) connection() (*websocket.Conn, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		return conn, nil
	}

	if err := c.dial(false); err != nil {
		return nil, fmt.Errorf("cannot connect to landmark service: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, errors.New("not connected to landmark service")
	}
	return c.conn, nil
}

// DetectLandmarks sends one frame and waits for its landmarks. Any transport error
// drops the connection so the next call redials.
func (c *landmarkClient) DetectLandmarks(ctx context.Context, frame vision.Frame) ([]vision.Landmark, error) {
	payload, err := frame.Encode()
	if err != nil {
		return nil, err
	}

	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		c.drop(conn)
		return nil, fmt.Errorf("error sending landmark frame: %w", err)
	}

	conn.SetReadDeadline(deadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.drop(conn)
		return nil, fmt.Errorf("error reading landmark message: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result landmarkResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling landmark response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("landmark service: %s", result.Error)
	}

	c.log.Debugf("Received %d landmarks", len(result.Landmarks))

	return result.Landmarks, nil
}

// drop must be called with c.mu held.
func (c *landmarkClient) drop(conn *websocket.Conn) {
	if c.conn == conn {
		c.conn = nil
	}
	conn.Close()
}

func (c *landmarkClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
	default:
		close(c.done)
	}

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
