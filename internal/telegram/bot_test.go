package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go-linkedin-fetcher/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	chatID    string
	text      string
	parseMode string
}

// fakeAPI answers getMe and sendMessage like the Bot API does.
func fakeAPI(t *testing.T) (*httptest.Server, func() []sent) {
	var (
		mu       sync.Mutex
		messages []sent
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"fetcher","username":"fetcher_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			mu.Lock()
			messages = append(messages, sent{
				chatID:    r.Form.Get("chat_id"),
				text:      r.Form.Get("text"),
				parseMode: r.Form.Get("parse_mode"),
			})
			mu.Unlock()
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":7,"type":"private"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []sent {
		mu.Lock()
		defer mu.Unlock()
		return append([]sent(nil), messages...)
	}
}

func TestFormatJob(t *testing.T) {
	msg := FormatJob(scraper.JobRecord{Title: "Go Developer (m/f/d)", Company: "Acme Inc.", Location: ""})

	assert.Contains(t, msg, `💼 *Go Developer \(m/f/d\)*`)
	assert.Contains(t, msg, `🏢 Acme Inc\.`)
	assert.Contains(t, msg, `📍 N/A`)
}

func TestSendJobAndStatus(t *testing.T) {
	srv, messages := fakeAPI(t)
	bot, err := NewBotWithEndpoint("123:abc", 7, srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	require.NoError(t, bot.SendJob(scraper.JobRecord{Title: "Go Developer", Company: "Acme", Location: "Berlin"}))
	require.NoError(t, bot.SendStatus("Found 1 job"))
	require.NoError(t, bot.SendError(errors.New("boom")))

	got := messages()
	require.Len(t, got, 3)
	assert.Equal(t, "7", got[0].chatID)
	assert.Equal(t, "MarkdownV2", got[0].parseMode)
	assert.Contains(t, got[0].text, "Go Developer")
	assert.Equal(t, "ℹ️ Found 1 job", got[1].text)
	assert.Equal(t, "❌ Error: boom", got[2].text)
}

func TestNewBotRejectsBadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer srv.Close()

	_, err := NewBotWithEndpoint("bad", 7, srv.URL+"/bot%s/%s")
	assert.Error(t, err)
}
