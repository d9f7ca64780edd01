package main

import (
	"net/http"
	"time"
)

// One shared client for task API and webhook calls. The timeout bounds a
// hung upstream so a scheduled run can fail and wait for its next tick.
const outboundTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: outboundTimeout,
}
