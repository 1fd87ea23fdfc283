// Package telegram is the hand-rolled gateway client: long-poll transport,
// update parsing, outbound sends and media download over the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sophist-bot/server/internal/bot/model"
)

// Client talks to one bot's slice of the Bot API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func NewClient(cfg model.TelegramConfig) *Client {
	return &Client{
		http: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeout) * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.Token,
	}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute telegram request: %w", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	return nil
}

// GetMe identifies the bot account. Called once at startup; the returned id
// also drives reply-to-bot detection.
func (c *Client) GetMe(ctx context.Context) (int64, string, error) {
	var out getMeResponse
	if err := c.getJSON(ctx, c.methodURL("getMe"), &out); err != nil {
		return 0, "", err
	}
	if !out.OK {
		return 0, "", errors.New("telegram getMe: ok=false")
	}
	return out.Result.ID, out.Result.Username, nil
}

// getUpdates long-polls for the next batch and returns the advanced offset.
func (c *Client) getUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]update, int64, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	url := fmt.Sprintf("%s?timeout=%d", c.methodURL("getUpdates"), secs)
	if offset > 0 {
		url += fmt.Sprintf("&offset=%d", offset)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout+5*time.Second)
	defer cancel()

	var out getUpdatesResponse
	if err := c.getJSON(reqCtx, url, &out); err != nil {
		return nil, offset, err
	}
	if !out.OK {
		return nil, offset, errors.New("telegram getUpdates: ok=false")
	}

	next := offset
	for _, u := range out.Result {
		if u.UpdateID >= next {
			next = u.UpdateID + 1
		}
	}
	return out.Result, next, nil
}

func isPollTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "client.timeout exceeded")
}

func (c *Client) sendMessage(ctx context.Context, payload sendMessageRequest) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal telegram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute telegram request: %w", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("telegram http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out sendMessageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("decode telegram response: %w", err)
	}
	if !out.OK {
		return 0, errors.New("telegram sendMessage: ok=false")
	}
	return out.Result.MessageID, nil
}

// SendReply posts text as a reply to the given message and returns the id of
// the sent message.
func (c *Client) SendReply(ctx context.Context, chatID, replyToMessageID int64, text string) (int64, error) {
	return c.sendMessage(ctx, sendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyToMessageID,
	})
}

// SendMessage posts text to a chat without a reply anchor.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	return c.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text})
}

func (c *Client) sendKeyboard(ctx context.Context, chatID int64, text string, kb *replyKeyboardMarkup) error {
	_, err := c.sendMessage(ctx, sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	return err
}

func (c *Client) getFile(ctx context.Context, fileID string) (*file, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, errors.New("missing file_id")
	}
	var out getFileResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s?file_id=%s", c.methodURL("getFile"), url.QueryEscape(fileID)), &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, errors.New("telegram getFile: ok=false")
	}
	if strings.TrimSpace(out.Result.FilePath) == "" {
		return nil, errors.New("telegram getFile: missing file_path")
	}
	return &out.Result, nil
}

func (c *Client) downloadFile(ctx context.Context, filePath string, maxBytes int64) ([]byte, error) {
	url := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, strings.TrimLeft(filePath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("telegram download http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("telegram file too large (>%d bytes)", maxBytes)
	}
	return data, nil
}
