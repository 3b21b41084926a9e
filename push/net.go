package push

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

// ConnectionProvider is a function that returns a WebSocket connection to
// the orchestrator's push endpoint, ready to be read from.
type ConnectionProvider func(context.Context) (*websocket.Conn, error)

// WebSocketConnection is a ConnectionProvider that dials the orchestrator's
// push endpoint. The server URL may use an http(s) or ws(s) scheme; the /ws
// path is appended when the URL carries none.
func WebSocketConnection(
	serverURL string,
	header http.Header,
) ConnectionProvider {
	return func(ctx context.Context) (*websocket.Conn, error) {
		endpoint, err := pushURL(serverURL)
		if err != nil {
			return nil, err
		}

		conn, res, err := websocket.DefaultDialer.DialContext(
			ctx,
			endpoint,
			header,
		)
		if err != nil {
			if res != nil {
				_ = res.Body.Close()
				return nil, &ConnectionError{
					message: fmt.Sprintf(
						"push endpoint rejected handshake with status %d",
						res.StatusCode,
					),
					wrapped: err,
				}
			}
			return nil, &ConnectionError{
				message: "error opening push connection",
				wrapped: err,
			}
		}
		return conn, nil
	}
}

func pushURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", &ConnectionError{
			message: "invalid push endpoint URL",
			wrapped: err,
		}
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", &ConnectionError{
			message: fmt.Sprintf("unsupported scheme %q", u.Scheme),
		}
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}
