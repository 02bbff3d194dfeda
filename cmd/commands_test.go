package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pusharr/pusher"
)

func stubClient(status int, body string, seen *[]*pusher.Request) *pusher.Client {
	var mu sync.Mutex
	transport := pusher.TransportFunc(func(ctx context.Context, req *pusher.Request) (*pusher.Response, error) {
		if seen != nil {
			mu.Lock()
			*seen = append(*seen, req)
			mu.Unlock()
		}
		return &pusher.Response{StatusCode: status, Body: []byte(body)}, nil
	})
	return pusher.NewClient(pusher.Credentials{AppID: "3", Key: "key", Secret: "secret"}, pusher.WithTransport(transport))
}

func TestParseEventData(t *testing.T) {
	assert.Nil(t, parseEventData(""))
	assert.Equal(t, map[string]any{"a": float64(1)}, parseEventData(`{"a":1}`))
	assert.Equal(t, "hello world", parseEventData("hello world"))
	assert.Equal(t, float64(42), parseEventData("42"))
}

func TestRunTrigger(t *testing.T) {
	var seen []*pusher.Request
	api := stubClient(http.StatusOK, `{}`, &seen)

	var out bytes.Buffer
	err := runTrigger(context.Background(), api, &out, pusher.Event{
		Name:     "greet",
		Channels: []string{"lobby"},
		Data:     parseEventData(`{"msg":"hi"}`),
	}, false)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `Triggered "greet" on 1 channel`)
	require.Len(t, seen, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(seen[0].Body, &body))
	assert.Equal(t, `{"msg":"hi"}`, body["data"])
}

func TestRunTrigger_TooManyChannels(t *testing.T) {
	var seen []*pusher.Request
	api := stubClient(http.StatusOK, `{}`, &seen)

	channels := make([]string, 150)
	for i := range channels {
		channels[i] = "c" + strings.Repeat("x", i)
	}

	err := runTrigger(context.Background(), api, &bytes.Buffer{}, pusher.Event{Name: "e", Channels: channels}, false)
	assert.ErrorIs(t, err, pusher.ErrInvalidArgument)
	assert.Empty(t, seen)

	var out bytes.Buffer
	err = runTrigger(context.Background(), api, &out, pusher.Event{Name: "e", Channels: channels}, true)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
	assert.Contains(t, out.String(), "on 150 of 150 channels")
}

func TestRunChannels(t *testing.T) {
	api := stubClient(http.StatusOK, `{"channels":{"presence-a":{"user_count":3},"presence-b":{"user_count":30},"news":{}}}`, nil)

	var out bytes.Buffer
	require.NoError(t, runChannels(context.Background(), api, &out, pusher.ChannelsParams{}, ""))
	assert.Contains(t, out.String(), "Found 3 channels")
	assert.Contains(t, out.String(), "presence-b")

	out.Reset()
	require.NoError(t, runChannels(context.Background(), api, &out, pusher.ChannelsParams{}, "UserCount > 10"))
	assert.Contains(t, out.String(), "Found 1 channel:")
	assert.Contains(t, out.String(), "presence-b")
	assert.NotContains(t, out.String(), "presence-a")

	err := runChannels(context.Background(), api, &out, pusher.ChannelsParams{}, "UserCount >")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")
}

func TestRunChannel(t *testing.T) {
	api := stubClient(http.StatusOK, `{"occupied":true,"subscription_count":4}`, nil)

	var out bytes.Buffer
	require.NoError(t, runChannel(context.Background(), api, &out, "news", []string{"subscription_count"}))
	assert.Contains(t, out.String(), "Occupied: true")
	assert.Contains(t, out.String(), "Subscriptions: 4")
}

func TestRunUsers(t *testing.T) {
	api := stubClient(http.StatusOK, `{"users":[{"id":"u1"},{"id":"u2"}]}`, nil)

	var out bytes.Buffer
	require.NoError(t, runUsers(context.Background(), api, &out, "presence-room"))
	assert.Contains(t, out.String(), "2 users in presence-room")
	assert.Contains(t, out.String(), "• u2")

	err := runUsers(context.Background(), api, &out, "private-room")
	assert.ErrorIs(t, err, pusher.ErrInvalidArgument)
}

func TestRunUsers_Unauthorized(t *testing.T) {
	api := stubClient(http.StatusUnauthorized, "Invalid signature", nil)

	err := runUsers(context.Background(), api, &bytes.Buffer{}, "presence-room")
	assert.ErrorIs(t, err, pusher.ErrAuthentication)
	assert.Contains(t, err.Error(), "Invalid signature")
}

func TestRunSign(t *testing.T) {
	signer := pusher.NewSigner("278d425bdf160c739803", "7ad3773142a6692b25b8", func() time.Time {
		return time.Unix(1353088179, 0)
	})

	var out bytes.Buffer
	runSign(&out, signer, "POST", "/apps/3/events", nil,
		[]byte(`{"name":"foo","channels":["project-3"],"data":"{\"some\":\"data\"}"}`))

	assert.Contains(t, out.String(), "POST\n/apps/3/events\nauth_key=278d425bdf160c739803&auth_timestamp=1353088179")
	assert.Contains(t, out.String(), "auth_signature=da454824c97ba181a32ccc17a72625ba02771f50b50e1e7430e47a1f3f457e6c")
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = parseVersion("dev")
	assert.Error(t, err)
}
