// Package entropy supplies the random draws behind every match score, player
// development roll, transfer decision and job offer. A save runs either on a
// seeded source, so a season can be replayed from its seed, or on true
// randomness from random.org when an API key is configured.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Source is a uniform [0, 1) random stream.
type Source interface {
	Float64() float64
}

const (
	// Below this many buffered draws the client asks random.org for a new batch,
	// enough for a few fixtures so a week rarely waits on the network twice.
	refillThreshold = 10
	batchSize       = 100
	randomOrgURL    = "https://api.random.org/json-rpc/4/invoke"
)

// Client is a Source backed by random.org. Draws are buffered locally; when
// the service cannot be reached the week carries on with crypto/rand.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu   sync.Mutex
	pool []float64
}

// NewClient returns nil when apiKey is empty; a nil *Client still works as a
// Source and draws from crypto/rand.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: randomOrgURL,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Float64 implements Source.
func (c *Client) Float64() float64 {
	if c == nil {
		return cryptoRandFloat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < refillThreshold {
		c.refill()
	}
	if len(c.pool) == 0 {
		return cryptoRandFloat()
	}
	v := c.pool[0]
	c.pool = c.pool[1:]
	return v
}

func (c *Client) refill() {
	draws, err := c.fetch()
	if err != nil {
		slog.Debug("random.org unavailable, using crypto/rand", "error", err)
		return
	}
	// Fractions come back in [0, 1]; a literal 1.0 would push Between past its upper bound.
	for _, v := range draws {
		if v < 1 {
			c.pool = append(c.pool, v)
		}
	}
	slog.Debug("random.org pool refilled", "pool", len(c.pool))
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	APIKey        string `json:"apiKey"`
	N             int    `json:"n"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

type rpcResponse struct {
	Result struct {
		Random struct {
			Data []float64 `json:"data"`
		} `json:"random"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// fetch asks random.org for one batch of decimal fractions.
func (c *Client) fetch() ([]float64, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "generateDecimalFractions",
		Params:  rpcParams{APIKey: c.apiKey, N: batchSize, DecimalPlaces: 6},
		ID:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return nil, errors.New(out.Error.Message)
	}
	return out.Result.Random.Data, nil
}

// Crypto draws from crypto/rand. The zero value is ready to use.
type Crypto struct{}

// Float64 implements Source.
func (Crypto) Float64() float64 {
	return cryptoRandFloat()
}

func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0.5
	}
	// 53 bits give a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
