package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/ichef/ChefAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var (
	pooledClient *http.Client
	once         sync.Once
)

// GetPooledClient returns the shared outbound client. The web search tool and
// any other plain-HTTP collaborator reuse its connections to avoid per-call
// handshake latency.
func GetPooledClient() *http.Client {
	once.Do(func() {
		pooledClient = &http.Client{
			Transport: customTransport,
			Timeout:   config.SearchTimeout,
		}
	})
	return pooledClient
}
