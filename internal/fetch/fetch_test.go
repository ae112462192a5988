package fetch

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"testing"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error

	requests []string
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req.URL.String())
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

// sequenceTransport serves one canned response per request, in order.
type sequenceTransport struct {
	responses []mockTransport
	calls     int
}

func (s *sequenceTransport) Do(req *http.Request) (*http.Response, error) {
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	return s.responses[i].Do(req)
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}
