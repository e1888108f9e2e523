package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewai_backend/internal/config"
	"interviewai_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deepgramServer(t *testing.T, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listen", r.URL.Path)
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, "pcm", string(data))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newDeepgram(url string) *DeepgramService {
	return NewDeepgramService(config.SpeechConfig{BaseURL: url + "/", APIKey: "dg-key", Timeout: 5 * time.Second})
}

func TestTranscribe(t *testing.T) {
	srv := deepgramServer(t, http.StatusOK, `{"results":{"channels":[{"alternatives":[{"transcript":"channels pass values"}]}]}}`)
	defer srv.Close()

	text, err := newDeepgram(srv.URL).Transcribe(context.Background(), []byte("pcm"), "")
	require.NoError(t, err)
	assert.Equal(t, "channels pass values", text)
}

func TestTranscribe_NoChannels(t *testing.T) {
	srv := deepgramServer(t, http.StatusOK, `{"results":{"channels":[]}}`)
	defer srv.Close()

	text, err := newDeepgram(srv.URL).Transcribe(context.Background(), []byte("pcm"), "")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTranscribe_ServerError(t *testing.T) {
	srv := deepgramServer(t, http.StatusInternalServerError, `oops`)
	defer srv.Close()

	_, err := newDeepgram(srv.URL).Transcribe(context.Background(), []byte("pcm"), "")
	assert.True(t, util.IsUpstream(err))
}
