package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() Message {
	return Message{
		To:      []mail.Address{{Name: "Jane Doe", Address: "jane.doe@lincoln.edu"}},
		Subject: "Intervention scheduled",
		Text:    "A meeting was scheduled.",
	}
}

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, sampleMessage().Validate())
	assert.Error(t, Message{Text: "x"}.Validate())
	assert.Error(t, Message{To: []mail.Address{{Address: "not-an-email"}}, Text: "x"}.Validate())
	assert.Error(t, Message{To: []mail.Address{{Address: "a@b.test"}}}.Validate())
}

func TestConsoleSenderRecordsMessages(t *testing.T) {
	s := NewConsoleSender(From{Name: "Office", Address: "office@district.test", AppName: "District"}, nil)
	require.NoError(t, s.Send(context.Background(), sampleMessage()))

	sent := s.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "[District] Intervention scheduled", sent[0].Subject)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.Send(ctx, sampleMessage()))
}

func TestSendGridSenderPostsV3Payload(t *testing.T) {
	var body map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender("SG.key", From{Name: "Office", Address: "office@district.test"})
	s.host = srv.URL
	require.NoError(t, s.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "Bearer SG.key", auth)
	from := body["from"].(map[string]interface{})
	assert.Equal(t, "office@district.test", from["email"])
	personalizations := body["personalizations"].([]interface{})
	require.Len(t, personalizations, 1)
	assert.Equal(t, "Intervention scheduled", personalizations[0].(map[string]interface{})["subject"])
}

func TestSendGridSenderSurfacesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewSendGridSender("bad", From{Address: "office@district.test"})
	s.host = srv.URL
	err := s.Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
