package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment and skips everything when no server is configured.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.Addr == "" || s.Config.MatchID == 0 {
		s.T().Skip("E2E_ADDR and E2E_MATCH_ID are required, run cmd/seed against a live server first")
	}
}

type Message struct {
	Type    string          `json:"type"`
	Success bool            `json:"success"`
	Action  string          `json:"action"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is a websocket connection that logs what it receives.
type Client struct {
	s    *BaseSuite
	name string
	conn *websocket.Conn
}

func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

func (s *BaseSuite) Spectator() *Client {
	return s.dial("spectator", fmt.Sprintf("ws://%s/ws/match/%d/", s.Config.Addr, s.Config.MatchID), nil)
}

func (s *BaseSuite) Biro() *Client {
	header := http.Header{"Authorization": {"Bearer " + s.Config.BiroToken}}
	return s.dial("biro", fmt.Sprintf("ws://%s/ws/biro/match/%d/", s.Config.Addr, s.Config.MatchID), header)
}

func (s *BaseSuite) dial(name, url string, header http.Header) *Client {
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	s.Require().NoError(err, "Failed to connect to "+url)
	s.T().Cleanup(func() { _ = conn.Close() })
	return &Client{s: s, name: name, conn: conn}
}

func (c *Client) Send(payload any) {
	c.s.Require().NoError(c.conn.WriteJSON(payload))
}

func (c *Client) Read() Message {
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	c.s.Require().NoError(c.conn.ReadJSON(&msg), c.name+" read")
	if c.s.Config.DebugJSON {
		c.s.T().Logf("%s <- %s %s", c.name, msg.Type, string(msg.Data))
	}
	return msg
}

// Expect reads until a message of the given type arrives.
func (c *Client) Expect(messageType string) Message {
	for i := 0; i < 20; i++ {
		if msg := c.Read(); msg.Type == messageType {
			return msg
		}
	}
	c.s.FailNow(fmt.Sprintf("%s never received %s", c.name, messageType))
	return Message{}
}
