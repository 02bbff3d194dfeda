package pusher

import (
	"context"
	"encoding/json"
)

// API defines the interface for Pusher REST operations
type API interface {
	// Trigger publishes an event on up to 100 channels
	Trigger(ctx context.Context, ev Event) (*TriggerResult, error)

	// TriggerMany publishes an event on any number of channels
	TriggerMany(ctx context.Context, ev Event) (*BroadcastResult, error)

	// GetChannels lists occupied channels
	GetChannels(ctx context.Context, p ChannelsParams) (*ChannelsResponse, error)

	// GetChannel fetches the state of one channel
	GetChannel(ctx context.Context, name string, info ...string) (*ChannelInfo, error)

	// GetUsers lists the users of a presence channel
	GetUsers(ctx context.Context, channel string) (*UsersResponse, error)

	// Do sends an arbitrary request through the signer
	Do(ctx context.Context, req *Request) (json.RawMessage, error)
}

var _ API = (*Client)(nil)
