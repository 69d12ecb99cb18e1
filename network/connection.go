// network/connection.go
package network

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection is one client's line-oriented transport. Send may be called
// from any goroutine (the broadcaster runs on whichever session triggered
// it); ReadLine is owned by the session's own read loop. Close must be
// safe to call more than once.
type Connection interface {
	Send(text string) error
	ReadLine() (string, error)
	Close() error
	RemoteAddr() net.Addr
}

// TCPConnection frames the game protocol as newline-terminated text over a
// raw TCP stream.
type TCPConnection struct {
	conn      net.Conn
	reader    *bufio.Reader
	sendMutex sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewTCPConnection(conn net.Conn) *TCPConnection {
	return &TCPConnection{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (c *TCPConnection) Send(text string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	_, err := c.conn.Write([]byte(text))
	return err
}

// ReadLine blocks until a full line arrives and returns it with the
// trailing newline and carriage return stripped. A read error, including a
// partial final line, means the session ended.
func (c *TCPConnection) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *TCPConnection) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *TCPConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// WSConnection adapts a websocket to the same line protocol: every text
// message carries one command line inbound and one text block outbound.
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Send(text string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	return c.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *WSConnection) ReadLine() (string, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *WSConnection) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
