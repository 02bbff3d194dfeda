package pusher

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
)

// Request describes one unsigned (or signed) call to the REST API.
// Path is the URL path only; the host lives in the transport.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   []byte
	Header http.Header
}

// Clone returns a copy that can be signed without touching the original
func (r *Request) Clone() *Request {
	c := *r
	c.Query = maps.Clone(r.Query)
	if r.Header != nil {
		c.Header = r.Header.Clone()
	}
	return &c
}

// triggerBody is the JSON document POSTed to the events endpoint
type triggerBody struct {
	Name     string   `json:"name,omitempty"`
	Channels []string `json:"channels,omitempty"`
	Data     string   `json:"data,omitempty"`
	SocketID string   `json:"socket_id,omitempty"`
}

// NewTriggerRequest builds the POST /apps/{appID}/events request.
func NewTriggerRequest(appID string, ev Event) (*Request, error) {
	if len(ev.Channels) > MaxChannelsPerEvent {
		return nil, fmt.Errorf("%w: cannot trigger an event on more than %d channels (%d given)",
			ErrInvalidArgument, MaxChannelsPerEvent, len(ev.Channels))
	}

	channels, err := uniqueChannels(ev.Channels)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: an event needs at least one channel", ErrInvalidArgument)
	}

	body := triggerBody{
		Name:     ev.Name,
		Channels: channels,
		SocketID: ev.SocketID,
	}

	if ev.Data != nil {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode event data: %v", ErrInvalidArgument, err)
		}
		body.Data = string(data)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &Request{
		Method: http.MethodPost,
		Path:   "/apps/" + appID + "/events",
		Query:  map[string]string{},
		Body:   raw,
		Header: header,
	}, nil
}

// NewChannelsRequest builds the GET /apps/{appID}/channels request
func NewChannelsRequest(appID string, p ChannelsParams) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/apps/" + appID + "/channels",
		Query: dropEmpty(map[string]string{
			"filter_by_prefix": p.FilterByPrefix,
			"info":             strings.Join(p.Info, ","),
		}),
	}
}

// NewChannelRequest builds the GET /apps/{appID}/channels/{name} request
func NewChannelRequest(appID, name string, info []string) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/apps/" + appID + "/channels/" + name,
		Query: dropEmpty(map[string]string{
			"info": strings.Join(info, ","),
		}),
	}
}

// NewUsersRequest builds the GET /apps/{appID}/channels/{channel}/users request.
// Only presence channels track users.
func NewUsersRequest(appID, channel string) (*Request, error) {
	if !IsPresenceChannel(channel) {
		return nil, fmt.Errorf("%w: users can only be listed for presence channels, %q given",
			ErrInvalidArgument, channel)
	}

	return &Request{
		Method: http.MethodGet,
		Path:   "/apps/" + appID + "/channels/" + channel + "/users",
		Query:  map[string]string{},
	}, nil
}

// uniqueChannels drops repeated names, keeping first occurrences in order.
// An empty name is rejected.
func uniqueChannels(channels []string) ([]string, error) {
	seen := make(map[string]struct{}, len(channels))
	out := make([]string, 0, len(channels))
	for i, ch := range channels {
		if ch == "" {
			return nil, fmt.Errorf("%w: channel %d has an empty name", ErrInvalidArgument, i)
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	return out, nil
}

func dropEmpty(params map[string]string) map[string]string {
	maps.DeleteFunc(params, func(_, v string) bool {
		return v == ""
	})
	return params
}
