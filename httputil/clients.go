package httputil

import (
	"net/http"
	"time"
)

// Clients holds the shared HTTP clients. Data is tuned for pulling
// observation documents, which can run to tens of megabytes.
type Clients struct {
	Data *http.Client // observation documents
	API  *http.Client // everything else
}

func NewClients(dataTimeout time.Duration) *Clients {
	if dataTimeout <= 0 {
		dataTimeout = 60 * time.Second
	}

	return &Clients{
		Data: &http.Client{
			Timeout: dataTimeout,
			Transport: &http.Transport{
				MaxIdleConns:    4,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		API: &http.Client{Timeout: 15 * time.Second},
	}
}
