package pusher

import (
	"bytes"
	"encoding/json"
)

var emptyObject = json.RawMessage(`{}`)

// Interpret classifies a status code and body.
//
// 2xx returns the body as raw JSON (an empty body reads as {}), 401 and 403 map to
// ErrAuthentication and ErrForbidden, everything else to ErrRemote. Failures keep
// the body verbatim.
func Interpret(statusCode int, body []byte) (json.RawMessage, error) {
	if statusCode < 200 || statusCode > 299 {
		return nil, &APIError{StatusCode: statusCode, Body: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return emptyObject, nil
	}

	if !json.Valid(body) {
		return nil, &MalformedResponseError{StatusCode: statusCode, Body: string(body)}
	}

	return json.RawMessage(body), nil
}

// Decode interprets the response and unmarshals a success body into v
func Decode(statusCode int, body []byte, v any) error {
	raw, err := Interpret(statusCode, body)
	if err != nil {
		return err
	}
	return decodeInto(statusCode, raw, v)
}

func decodeInto(statusCode int, raw json.RawMessage, v any) error {
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &MalformedResponseError{StatusCode: statusCode, Body: string(raw), Err: err}
	}
	return nil
}
