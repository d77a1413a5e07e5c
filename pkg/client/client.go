// Package client is a small Go SDK for the waffle-service HTTP API. It holds
// the session-local view state a frontend needs, including the optimistic
// comment thread.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"waffle-service/internal/comment"
	"waffle-service/internal/reply"
	"waffle-service/internal/user"
	"waffle-service/internal/waffle"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(tok string) { c.token = tok }

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("waffle-service: %s %s: %s (%d)", method, path, string(b), resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) Register(ctx context.Context, phoneNumber, name string) (*user.AuthResponse, error) {
	var out user.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register",
		user.RegisterRequest{PhoneNumber: phoneNumber, Name: name}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Login(ctx context.Context, phoneNumber string) (*user.AuthResponse, error) {
	var out user.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", user.LoginRequest{PhoneNumber: phoneNumber}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) PublicFeed(ctx context.Context) ([]waffle.Waffle, error) {
	var out []waffle.Waffle
	return out, c.doJSON(ctx, http.MethodGet, "/waffles/public", nil, &out)
}

func (c *Client) FriendsFeed(ctx context.Context) ([]waffle.Waffle, error) {
	var out []waffle.Waffle
	return out, c.doJSON(ctx, http.MethodGet, "/waffles/friends", nil, &out)
}

func (c *Client) MyWaffles(ctx context.Context) ([]waffle.Waffle, error) {
	var out []waffle.Waffle
	return out, c.doJSON(ctx, http.MethodGet, "/waffles/mine", nil, &out)
}

func (c *Client) HasPosted(ctx context.Context) (bool, error) {
	var out struct {
		Posted bool `json:"posted"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/waffles/posted", nil, &out)
	return out.Posted, err
}

// UploadWaffle posts this week's recording.
func (c *Client) UploadWaffle(ctx context.Context, audio []byte, duration float64) (*waffle.Waffle, error) {
	body, contentType, err := audioForm(audio, duration, nil)
	if err != nil {
		return nil, err
	}
	var out waffle.Waffle
	if err := c.do(ctx, http.MethodPost, "/waffles", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendReply sends a private voice reply to another user.
func (c *Client) SendReply(ctx context.Context, toUserID string, audio []byte, duration float64) (*reply.Reply, error) {
	body, contentType, err := audioForm(audio, duration, map[string]string{"to_user_id": toUserID})
	if err != nil {
		return nil, err
	}
	var out reply.Reply
	if err := c.do(ctx, http.MethodPost, "/replies", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Inbox(ctx context.Context) ([]reply.Reply, error) {
	var out []reply.Reply
	return out, c.doJSON(ctx, http.MethodGet, "/replies", nil, &out)
}

func (c *Client) PostComment(ctx context.Context, waffleID, text string) (comment.Comment, error) {
	var out comment.Comment
	err := c.doJSON(ctx, http.MethodPost, "/waffles/"+waffleID+"/comments", comment.CreateRequest{Text: text}, &out)
	return out, err
}

func (c *Client) ListComments(ctx context.Context, waffleID string) ([]comment.Comment, error) {
	var out []comment.Comment
	return out, c.doJSON(ctx, http.MethodGet, "/waffles/"+waffleID+"/comments", nil, &out)
}

func (c *Client) LookupByPhones(ctx context.Context, numbers []string) ([]user.User, error) {
	var out []user.User
	return out, c.doJSON(ctx, http.MethodPost, "/users/lookup", user.LookupRequest{PhoneNumbers: numbers}, &out)
}

func (c *Client) AddFriend(ctx context.Context, friendID string) (*user.User, error) {
	var out user.User
	err := c.doJSON(ctx, http.MethodPost, "/users/me/friends", user.AddFriendRequest{FriendID: friendID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func audioForm(audio []byte, duration float64, extra map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "recording.m4a")
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("duration", fmt.Sprintf("%g", duration)); err != nil {
		return nil, "", err
	}
	for k, v := range extra {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
