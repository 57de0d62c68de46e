package resilience

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeTrackingBody struct {
	io.Reader
	closed bool
}

func (b *closeTrackingBody) Close() error {
	b.closed = true
	return nil
}

func TestSupersede_ClosesReplacedBody(t *testing.T) {
	first := &closeTrackingBody{Reader: strings.NewReader("server error")}
	second := &closeTrackingBody{Reader: strings.NewReader("ok")}

	old := &http.Response{StatusCode: http.StatusInternalServerError, Body: first}
	latest := &http.Response{StatusCode: http.StatusOK, Body: second}

	got := supersede(old, latest)

	assert.Same(t, latest, got)
	assert.True(t, first.closed, "replaced response body should be closed")
	assert.False(t, second.closed, "latest response body belongs to the caller")
}

func TestSupersede_FirstAttempt(t *testing.T) {
	body := &closeTrackingBody{Reader: strings.NewReader("ok")}
	latest := &http.Response{StatusCode: http.StatusOK, Body: body}

	got := supersede(nil, latest)

	assert.Same(t, latest, got)
	assert.False(t, body.closed)
}

func TestSupersede_SameResponse(t *testing.T) {
	body := &closeTrackingBody{Reader: strings.NewReader("ok")}
	resp := &http.Response{StatusCode: http.StatusOK, Body: body}

	got := supersede(resp, resp)

	assert.Same(t, resp, got)
	assert.False(t, body.closed)
}
