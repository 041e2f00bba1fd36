package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialLiveSearch(t *testing.T, h *LiveSearchHandlers) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(h.LiveSearch))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveSearch(t *testing.T) {
	h := NewLiveSearchHandlers(newTestCatalog(sampleRows))
	conn := dialLiveSearch(t, h)

	// Each request frame gets one result frame
	if err := conn.WriteJSON(liveSearchRequest{Query: "pitch"}); err != nil {
		t.Fatal(err)
	}
	var resp liveSearchResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].Title != "Pitch Night Berlin" {
		t.Errorf("response = %+v", resp)
	}

	// The connection stays open for follow-up queries
	if err := conn.WriteJSON(liveSearchRequest{Query: "summit"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("second ReadJSON() error: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].Title != "AI Summit" {
		t.Errorf("second response = %+v", resp)
	}
}

func TestLiveSearchNoMatches(t *testing.T) {
	h := NewLiveSearchHandlers(newTestCatalog(sampleRows))
	conn := dialLiveSearch(t, h)

	if err := conn.WriteJSON(liveSearchRequest{Query: "quantum"}); err != nil {
		t.Fatal(err)
	}

	var resp liveSearchResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 || resp.Results == nil {
		t.Errorf("empty result frame should carry an empty array: %+v", resp)
	}
}
