package chatnotify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMessage() service.ChatNotification {
	return service.ChatNotification{
		UserID:   "u1",
		UserName: "Aziz",
		Message:  "Salom, buyurtmam qachon keladi?",
		Time:     "14:05",
	}
}

func TestHTTPNotifier_PostsMessage(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotBody   service.ChatNotification
		gotMethod string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL+"/", "secret-token", time.Second, discardLogger())

	nerr := notifier.NotifyChat(context.Background(), testMessage())

	require.Nil(t, nerr)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/chat/notify", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, testMessage(), gotBody)
}

func TestHTTPNotifier_Non2xxIsNotifyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, "", time.Second, discardLogger())

	nerr := notifier.NotifyChat(context.Background(), testMessage())

	require.NotNil(t, nerr)
	assert.Equal(t, "http", nerr.Provider)
	assert.Equal(t, http.StatusBadGateway, nerr.StatusCode)
	assert.Contains(t, nerr.Error(), "502")
}

func TestHTTPNotifier_UnreachableIsNotifyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	notifier := NewHTTPNotifier(url, "", 200*time.Millisecond, discardLogger())

	nerr := notifier.NotifyChat(context.Background(), testMessage())

	require.NotNil(t, nerr)
	assert.Zero(t, nerr.StatusCode)
	assert.Error(t, nerr.Unwrap())
}

func TestNoopNotifier(t *testing.T) {
	notifier := NewNoopNotifier(discardLogger())

	assert.Nil(t, notifier.NotifyChat(context.Background(), testMessage()))
	assert.NoError(t, notifier.Close())
}
