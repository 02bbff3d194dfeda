// Package pusher provides a client for the Pusher Channels REST API.
//
// Every request is authenticated with Pusher's query-string signature: the method,
// path and sorted auth parameters are joined into a canonical string, signed with
// HMAC-SHA256 using the application secret and sent back as auth_signature.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Signer: canonicalizes a request and computes auth_signature
//   - Request builders: one per REST endpoint, pure and validating
//   - Interpret/Decode: map status codes and bodies to values or typed errors
//   - Client: ties the above to a Transport for each API operation
//   - Transport: net/http by default, replaceable for tests or custom stacks
//
// # Usage
//
//	client := pusher.NewClient(
//		pusher.Credentials{AppID: "3", Key: "278d425bdf160c739803", Secret: "7ad3773142a6692b25b8"},
//		pusher.WithHost("api-eu.pusher.com"),
//		pusher.WithTimeout(10*time.Second),
//	)
//
//	_, err := client.Trigger(ctx, pusher.Event{
//		Name:     "order-shipped",
//		Channels: []string{"private-orders"},
//		Data:     map[string]any{"id": 42},
//	})
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrInvalidArgument: a precondition failed; nothing was sent
//   - APIError: non-2xx answer, unwraps to ErrAuthentication (401),
//     ErrForbidden (403) or ErrRemote (anything else)
//   - TransportError: the network round trip itself failed
//   - MalformedResponseError: a 2xx answer whose body is not JSON
//
// Nothing is retried. Callers check with errors.Is / errors.As:
//
//	if errors.Is(err, pusher.ErrAuthentication) {
//		// check the clock and the key pair
//	}
package pusher
