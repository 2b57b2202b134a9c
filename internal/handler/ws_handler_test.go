package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"boardroom/internal/app/board"
)

func (s *RouterSuite) dialBoard(ts *httptest.Server, token string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/board"
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { conn.Close() })
	return conn
}

func (s *RouterSuite) readEnvelope(conn *websocket.Conn) board.Envelope {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var env board.Envelope
	s.Require().NoError(json.Unmarshal(data, &env))
	return env
}

func (s *RouterSuite) requirePolicyClose(conn *websocket.Conn) {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := conn.ReadMessage()
	s.Require().Error(err)
	s.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func (s *RouterSuite) TestBoardSocketRejectsMissingToken() {
	ts := httptest.NewServer(s.server)
	defer ts.Close()

	s.requirePolicyClose(s.dialBoard(ts, ""))
	s.Zero(s.deps.Board.Count())
}

func (s *RouterSuite) TestBoardSocketRejectsInvalidToken() {
	ts := httptest.NewServer(s.server)
	defer ts.Close()

	s.requirePolicyClose(s.dialBoard(ts, "not-a-jwt"))

	token, _ := s.login("alice", "alice-pw")
	s.clock.Advance(15*time.Minute + time.Second)
	s.requirePolicyClose(s.dialBoard(ts, token))
	s.Zero(s.deps.Board.Count())
}

func (s *RouterSuite) TestBoardSocketSendsSnapshotThenBroadcasts() {
	ts := httptest.NewServer(s.server)
	defer ts.Close()

	userToken, _ := s.login("alice", "alice-pw")
	adminToken, _ := s.login("root", "root-pw")

	first := s.dialBoard(ts, userToken)
	env := s.readEnvelope(first)
	s.Equal(board.TypeState, env.Type)
	s.JSONEq(`{"selectedMapId":"","placedAvatars":[]}`, string(env.Payload))

	second := s.dialBoard(ts, adminToken)
	s.readEnvelope(second)

	s.Require().Eventually(func() bool { return s.deps.Board.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	update := `{"type":"state","payload":{"selectedMapId":"m1","placedAvatars":[{"id":"a1","x":3,"y":4}]}}`
	s.Require().NoError(first.WriteMessage(websocket.TextMessage, []byte(update)))

	want := `{"selectedMapId":"m1","placedAvatars":[{"id":"a1","x":3,"y":4}]}`
	for _, conn := range []*websocket.Conn{first, second} {
		env := s.readEnvelope(conn)
		s.Equal(board.TypeState, env.Type)
		s.JSONEq(want, string(env.Payload))
	}

	third := s.dialBoard(ts, userToken)
	env = s.readEnvelope(third)
	s.JSONEq(want, string(env.Payload), "late joiners get the latest document")
}
