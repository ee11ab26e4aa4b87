package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests.
// The whole suite is skipped when no room address is configured, so a plain
// `go test ./...` stays green without a running server.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.SalaAddr == "" {
		s.T().Skip("SALA_ADDR not set, skipping end-to-end suite")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Call performs one HTTP round trip with logging, colors, and JSON debugging
func (s *BaseHTTPSuite) Call(t *testing.T, name, method, path, user string, body any) (int, []byte) {
	// 1. Print a colorized header for the step in logs
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	// 2. Marshal the request body when present
	var payload []byte
	var reader io.Reader
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, s.Config.SalaAddr+path, reader)
	s.Require().NoError(err)
	request.Header.Set("Content-Type", "application/json")
	if user != "" {
		request.Header.Set("user", user)
	}

	// 3. Send and log the round trip
	start := time.Now()
	response, err := s.client.Do(request)
	s.Require().NoError(err, "Failed to reach the room at "+s.Config.SalaAddr)
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, response.StatusCode, time.Since(start))

	// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nREQUEST:")
		fmt.Fprintln(&logBuilder, string(payload))
		fmt.Fprintln(&logBuilder, "RESPONSE:")
		fmt.Fprintln(&logBuilder, string(responseBody))
	}
	t.Log(logBuilder.String())

	return response.StatusCode, responseBody
}
