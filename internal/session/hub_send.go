package session

import (
	"encoding/json"

	"github.com/cuboktahedron/tetsimu2-hub/internal/protocol"
)

func marshalHub(msg protocol.HubMessage) (string, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
