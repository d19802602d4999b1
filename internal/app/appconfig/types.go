package appconfig

import (
	"fmt"
	"strings"
)

type WorkerHeartbeatURLMap map[string]string

func (m *WorkerHeartbeatURLMap) Decode(value string) error {
	*m = WorkerHeartbeatURLMap{}
	for _, pair := range strings.Split(value, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("invalid heartbeat URL map: expect a `=` separated key pair for each element, but got: %s", value)
		}
		(*m)[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return nil
}
