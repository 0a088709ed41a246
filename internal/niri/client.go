// Package niri talks to the running compositor.
package niri

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"time"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
)

var ErrNoSocket = errors.New(constants.EnvNiriSocket + " is not set, is niri running?")

// Client sends one request per connection over the IPC socket. Requests
// and replies are single JSON lines.
type Client struct {
	Socket  string
	Timeout time.Duration
}

// NewClient uses $NIRI_SOCKET when socket is empty
func NewClient(socket string) *Client {
	if socket == "" {
		socket = os.Getenv(constants.EnvNiriSocket)
	}
	return &Client{Socket: socket, Timeout: 2 * time.Second}
}

type reply struct {
	Ok  json.RawMessage `json:"Ok"`
	Err *string         `json:"Err"`
}

// Request sends req and returns the Ok payload of the reply
func (c *Client) Request(ctx context.Context, req any) (json.RawMessage, error) {
	if c.Socket == "" {
		return nil, ErrNoSocket
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.Socket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to niri: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	var r reply
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, fmt.Errorf("malformed reply: %w", err)
	}
	if r.Err != nil {
		return nil, fmt.Errorf("niri: %s", *r.Err)
	}
	return r.Ok, nil
}

// Version returns the compositor version string
func (c *Client) Version(ctx context.Context) (string, error) {
	ok, err := c.Request(ctx, "Version")
	if err != nil {
		return "", err
	}
	var v struct {
		Version string `json:"Version"`
	}
	if err := json.Unmarshal(ok, &v); err != nil {
		return "", fmt.Errorf("malformed version reply: %w", err)
	}
	return v.Version, nil
}

// LoadConfigFile asks the compositor to reload its config
func (c *Client) LoadConfigFile(ctx context.Context) error {
	_, err := c.Request(ctx, map[string]any{"Action": map[string]any{"LoadConfigFile": struct{}{}}})
	return err
}

type Output struct {
	Name  string `json:"name"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Outputs lists connected outputs sorted by name
func (c *Client) Outputs(ctx context.Context) ([]Output, error) {
	ok, err := c.Request(ctx, "Outputs")
	if err != nil {
		return nil, err
	}
	var v struct {
		Outputs map[string]Output `json:"Outputs"`
	}
	if err := json.Unmarshal(ok, &v); err != nil {
		return nil, fmt.Errorf("malformed outputs reply: %w", err)
	}
	out := make([]Output, 0, len(v.Outputs))
	for _, o := range v.Outputs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type Workspace struct {
	ID       uint64  `json:"id"`
	Idx      int     `json:"idx"`
	Name     *string `json:"name"`
	Output   *string `json:"output"`
	IsActive bool    `json:"is_active"`
}

func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	ok, err := c.Request(ctx, "Workspaces")
	if err != nil {
		return nil, err
	}
	var v struct {
		Workspaces []Workspace `json:"Workspaces"`
	}
	if err := json.Unmarshal(ok, &v); err != nil {
		return nil, fmt.Errorf("malformed workspaces reply: %w", err)
	}
	return v.Workspaces, nil
}

type Window struct {
	ID        uint64  `json:"id"`
	Title     *string `json:"title"`
	AppID     *string `json:"app_id"`
	IsFocused bool    `json:"is_focused"`
}

func (c *Client) Windows(ctx context.Context) ([]Window, error) {
	ok, err := c.Request(ctx, "Windows")
	if err != nil {
		return nil, err
	}
	var v struct {
		Windows []Window `json:"Windows"`
	}
	if err := json.Unmarshal(ok, &v); err != nil {
		return nil, fmt.Errorf("malformed windows reply: %w", err)
	}
	return v.Windows, nil
}

// FocusedWindow returns nil when no window has focus
func (c *Client) FocusedWindow(ctx context.Context) (*Window, error) {
	ok, err := c.Request(ctx, "FocusedWindow")
	if err != nil {
		return nil, err
	}
	var v struct {
		FocusedWindow *Window `json:"FocusedWindow"`
	}
	if err := json.Unmarshal(ok, &v); err != nil {
		return nil, fmt.Errorf("malformed focused window reply: %w", err)
	}
	return v.FocusedWindow, nil
}
