package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormSubmitProvider(t *testing.T) {
	msg := &Message{
		To:      "inbox@example.com",
		ReplyTo: "max@example.com",
		Subject: "Kontaktanfrage von Max Mustermann",
		Text:    "Nachricht",
	}

	t.Run("Should treat an accepted status as delivered", func(t *testing.T) {
		var gotPath string
		var payload map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&payload)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		p := NewFormSubmitProvider()
		p.baseURL = server.URL

		assert.NoError(t, p.Send(context.Background(), msg))
		assert.Equal(t, "/ajax/inbox@example.com", gotPath)
		assert.Equal(t, "Kontaktanfrage von Max Mustermann", payload["_subject"])
	})

	t.Run("Should classify non-2xx as failure with a body excerpt", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid form"}`))
		}))
		defer server.Close()

		p := NewFormSubmitProvider()
		p.baseURL = server.URL

		err := p.Send(context.Background(), msg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "invalid form")
	})

	t.Run("Should convert transport errors instead of panicking", func(t *testing.T) {
		p := NewFormSubmitProvider()
		p.baseURL = "http://127.0.0.1:0"

		err := p.Send(context.Background(), msg)
		assert.Error(t, err)
	})

	t.Run("Should always be configured", func(t *testing.T) {
		assert.True(t, NewFormSubmitProvider().Configured())
	})
}
