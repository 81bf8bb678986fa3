package client

import (
	"errors"
	"math"
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/sanonone/lexvek/internal/server"
	"github.com/sanonone/lexvek/pkg/core"
	"gonum.org/v1/gonum/mat"
)

// startTestServer runs the real HTTP handler on a loopback port and returns
// a client pointed at it.
func startTestServer(t *testing.T, authToken string) *Client {
	t.Helper()

	vocab, err := core.NewVocabulary([]string{"ant", "bee", "cat", "dog"}, []int{4, 3, 2, 1})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	s := math.Sqrt2 / 2
	model := &core.Model{
		Vocab: vocab,
		Vectors: mat.NewDense(4, 2, []float64{
			1, 0,
			s, s,
			0, 1,
			-1, 0,
		}),
		WindowSize: 4,
		Dimensions: 2,
		MinCount:   1,
	}

	ts := httptest.NewServer(server.NewServer(model, ":0", authToken).Handler())
	t.Cleanup(ts.Close)

	parsed, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(parsed.Host)
	if err != nil {
		t.Fatalf("splitting host and port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing port: %v", err)
	}
	return New(host, port, authToken)
}

func TestClientHealth(t *testing.T) {
	c := startTestServer(t, "")
	if err := c.Health(); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestClientInfo(t *testing.T) {
	c := startTestServer(t, "")

	info, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Words != 4 || info.Dimensions != 2 {
		t.Errorf("info: %+v", info)
	}
	if len(info.TopWords) == 0 || info.TopWords[0] != "ant" {
		t.Errorf("top words: %v", info.TopWords)
	}
}

func TestClientVector(t *testing.T) {
	c := startTestServer(t, "")

	wv, err := c.Vector("cat")
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	if wv.Word != "cat" || len(wv.Vector) != 2 || wv.Count != 2 {
		t.Errorf("word vector: %+v", wv)
	}

	_, err = c.Vector("ghost")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", apiErr.StatusCode)
	}
}

func TestClientSimilar(t *testing.T) {
	c := startTestServer(t, "")

	matches, err := c.Similar("ant", 2)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(matches) != 2 || matches[0].Word != "bee" {
		t.Errorf("matches: %+v", matches)
	}
}

func TestClientAnalogy(t *testing.T) {
	c := startTestServer(t, "")

	matches, err := c.Analogy("ant", "bee", "cat", 1)
	if err != nil {
		t.Fatalf("Analogy: %v", err)
	}
	if len(matches) != 1 || matches[0].Word != "dog" {
		t.Errorf("matches: %+v", matches)
	}
}

func TestClientSimilarity(t *testing.T) {
	c := startTestServer(t, "")

	sim, err := c.Similarity("ant", "cat")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(sim) > 1e-9 {
		t.Errorf("similarity: got %f, want 0", sim)
	}
}

func TestClientAuth(t *testing.T) {
	c := startTestServer(t, "sesame")

	if _, err := c.Info(); err != nil {
		t.Fatalf("authorized Info: %v", err)
	}

	unauthorized := New("127.0.0.1", 1, "")
	unauthorized.baseURL = c.baseURL // same server, no token
	_, err := unauthorized.Info()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Errorf("got %v, want APIError with status 401", err)
	}
}
