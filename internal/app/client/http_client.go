package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"credshare/internal/app/client/config"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "Credshare-Client/1.0",
	}, nil
}

func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck verifies the server is reachable.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status: %d", resp.StatusCode)
	}

	return nil
}

// ==================== Credentials ====================

func (h *httpClient) ShareCredential(ctx context.Context, req ShareRequest) (ShareResponse, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/credentials", req)
	if err != nil {
		return ShareResponse{}, err
	}

	var shareResp ShareResponse
	if err := h.parseResponse(resp, &shareResp); err != nil {
		return ShareResponse{}, err
	}

	return shareResp, nil
}

func (h *httpClient) ViewCredential(ctx context.Context, id int, token string) (ViewResponse, error) {
	body := struct {
		Token string `json:"token"`
	}{Token: token}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/credentials/%d/view", id), body)
	if err != nil {
		return ViewResponse{}, err
	}

	var viewResp ViewResponse
	if err := h.parseResponse(resp, &viewResp); err != nil {
		return ViewResponse{}, err
	}

	return viewResp, nil
}

func (h *httpClient) ListCredentials(ctx context.Context) (CredentialList, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/credentials", nil)
	if err != nil {
		return CredentialList{}, err
	}

	var list CredentialList
	if err := h.parseResponse(resp, &list); err != nil {
		return CredentialList{}, err
	}

	return list, nil
}

func (h *httpClient) ExpireCredential(ctx context.Context, id int) error {
	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/credentials/%d/expire", id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) DeleteCredential(ctx context.Context, id int) error {
	resp, err := h.doRequest(ctx, "DELETE", fmt.Sprintf("/api/credentials/%d", id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListTypes(ctx context.Context) (TypeList, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/credential-types", nil)
	if err != nil {
		return TypeList{}, err
	}

	var types TypeList
	if err := h.parseResponse(resp, &types); err != nil {
		return TypeList{}, err
	}

	return types, nil
}

// ==================== Requests ====================

func (h *httpClient) CreateRequest(ctx context.Context, req CreateRequestRequest) (CreateRequestResponse, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/requests", req)
	if err != nil {
		return CreateRequestResponse{}, err
	}

	var createResp CreateRequestResponse
	if err := h.parseResponse(resp, &createResp); err != nil {
		return CreateRequestResponse{}, err
	}

	return createResp, nil
}

func (h *httpClient) FulfillRequest(ctx context.Context, id int, req FulfillRequestRequest) error {
	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/requests/%d/fulfill", id), req)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) RejectRequest(ctx context.Context, id int, token string) error {
	body := TokenRequest{Token: token}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/requests/%d/reject", id), body)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) DescribeRequest(ctx context.Context, id int, token string) (RequestItem, error) {
	body := TokenRequest{Token: token}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/requests/%d/fields", id), body)
	if err != nil {
		return RequestItem{}, err
	}

	var item RequestItem
	if err := h.parseResponse(resp, &item); err != nil {
		return RequestItem{}, err
	}

	return item, nil
}

func (h *httpClient) RevealRequest(ctx context.Context, id int, secretPhrase string) (RevealRequestResponse, error) {
	body := RevealRequestRequest{SecretPhrase: secretPhrase}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/requests/%d/reveal", id), body)
	if err != nil {
		return RevealRequestResponse{}, err
	}

	var revealResp RevealRequestResponse
	if err := h.parseResponse(resp, &revealResp); err != nil {
		return RevealRequestResponse{}, err
	}

	return revealResp, nil
}

func (h *httpClient) ListRequests(ctx context.Context) (RequestList, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/requests", nil)
	if err != nil {
		return RequestList{}, err
	}

	var list RequestList
	if err := h.parseResponse(resp, &list); err != nil {
		return RequestList{}, err
	}

	return list, nil
}

// ==================== Plumbing ====================

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response",
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Detail != "" {
				return fmt.Errorf("server error: %s", errResp.Detail)
			}
			if errResp.Error != "" {
				return fmt.Errorf("server error: %s", errResp.Error)
			}
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
