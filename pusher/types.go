package pusher

import "strings"

// Channel name prefixes with special meaning on the Pusher side
const (
	PresencePrefix = "presence-"
	PrivatePrefix  = "private-"
)

// MaxChannelsPerEvent is the most channels a single trigger call may target
const MaxChannelsPerEvent = 100

// Credentials identify a Pusher application. They are never validated by the client.
type Credentials struct {
	AppID  string
	Key    string
	Secret string
}

// Event is a single event to publish.
type Event struct {
	Name     string
	Channels []string
	// Data is JSON-encoded and sent to Pusher as a string
	Data any
	// SocketID excludes one connection from receiving the event; empty excludes none
	SocketID string
}

// ChannelsParams narrows a channel listing
type ChannelsParams struct {
	FilterByPrefix string
	Info           []string
}

// ChannelAttributes are the per-channel attributes returned by the channel listing
type ChannelAttributes struct {
	UserCount         int `json:"user_count,omitempty"`
	SubscriptionCount int `json:"subscription_count,omitempty"`
}

// ChannelsResponse is the body of GET /apps/{app_id}/channels
type ChannelsResponse struct {
	Channels map[string]ChannelAttributes `json:"channels"`
}

// Names returns the channel names in the listing
func (r *ChannelsResponse) Names() []string {
	names := make([]string, 0, len(r.Channels))
	for name := range r.Channels {
		names = append(names, name)
	}
	return names
}

// ChannelInfo is the body of GET /apps/{app_id}/channels/{channel_name}
type ChannelInfo struct {
	Occupied          bool `json:"occupied"`
	UserCount         int  `json:"user_count,omitempty"`
	SubscriptionCount int  `json:"subscription_count,omitempty"`
}

// User is a member of a presence channel
type User struct {
	ID string `json:"id"`
}

// UsersResponse is the body of GET /apps/{app_id}/channels/{channel_name}/users
type UsersResponse struct {
	Users []User `json:"users"`
}

// IDs returns the user ids in listing order
func (r *UsersResponse) IDs() []string {
	ids := make([]string, len(r.Users))
	for i, u := range r.Users {
		ids[i] = u.ID
	}
	return ids
}

// TriggerResult is the body of POST /apps/{app_id}/events.
// Pusher answers with an empty object unless channel info was requested.
type TriggerResult struct {
	Channels map[string]ChannelAttributes `json:"channels,omitempty"`
}

// IsPresenceChannel reports whether name is a presence channel
func IsPresenceChannel(name string) bool {
	return strings.HasPrefix(name, PresencePrefix)
}

// IsPrivateChannel reports whether name is a private channel
func IsPrivateChannel(name string) bool {
	return strings.HasPrefix(name, PrivatePrefix)
}
