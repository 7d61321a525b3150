package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each API call when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// RemoteSource is the DataSource backed by the JHF API.
type RemoteSource struct {
	baseURL string
	http    *http.Client
	session *Session
	log     *zap.Logger
}

// NewRemoteSource targets baseURL, the API root including /api
// (e.g. http://127.0.0.1:5000/api).
func NewRemoteSource(baseURL string, session *Session, httpClient *http.Client, logger *zap.Logger) *RemoteSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if session == nil {
		session = &Session{}
	}
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
		log:     logger,
	}
}

func (s *RemoteSource) Name() string { return "remote" }

type messageBody struct {
	Message string `json:"message"`
}

// do sends one request. Transport failures are wrapped in ErrNetwork;
// non-2xx answers become *APIError. A 401 for a real token clears the
// session.
func (s *RemoteSource) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := s.session.Bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("API network error; backend might be offline", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var mb messageBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&mb)
		apiErr := &APIError{Status: resp.StatusCode, Message: mb.Message}
		if resp.StatusCode == http.StatusUnauthorized && s.session.Bearer() != "" {
			s.log.Info("token rejected; clearing session")
			if err := s.session.Clear(); err != nil {
				s.log.Warn("failed to clear session", zap.Error(err))
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (s *RemoteSource) Login(ctx context.Context, phone, password string) (*User, error) {
	var u User
	body := map[string]string{"phone": phone, "password": password}
	if err := s.do(ctx, http.MethodPost, "/auth/login", body, &u); err != nil {
		return nil, err
	}
	token := u.Token
	u.Token = ""
	s.session.Set(token, &u)
	if err := s.session.Save(); err != nil {
		return &u, fmt.Errorf("save session: %w", err)
	}
	return &u, nil
}

func (s *RemoteSource) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *RemoteSource) Events(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := s.do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) UpcomingEvents(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := s.do(ctx, http.MethodGet, "/events/upcoming", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) Event(ctx context.Context, slug string) (*Event, error) {
	var e Event
	if err := s.do(ctx, http.MethodGet, "/events/"+url.PathEscape(slug), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *RemoteSource) MyDonations(ctx context.Context) ([]Donation, error) {
	var out []Donation
	if err := s.do(ctx, http.MethodGet, "/donations/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) Donate(ctx context.Context, in DonationInput) (*Donation, error) {
	var d Donation
	if err := s.do(ctx, http.MethodPost, "/donations", in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RemoteSource) MyFees(ctx context.Context) ([]Fee, error) {
	var out []Fee
	if err := s.do(ctx, http.MethodGet, "/fees/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) MarkRead(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (s *RemoteSource) Committee(ctx context.Context) ([]CommitteeMember, error) {
	var out []CommitteeMember
	if err := s.do(ctx, http.MethodGet, "/content/committee", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) Gallery(ctx context.Context) ([]GalleryItem, error) {
	var out []GalleryItem
	if err := s.do(ctx, http.MethodGet, "/content/gallery", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteSource) Site(ctx context.Context, section string) (*SiteSection, error) {
	var sec SiteSection
	if err := s.do(ctx, http.MethodGet, "/content/site/"+url.PathEscape(section), nil, &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *RemoteSource) FinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	var sum FinanceSummary
	if err := s.do(ctx, http.MethodGet, "/finance/summary", nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// IsNetwork reports whether err means the API could not be reached.
func IsNetwork(err error) bool { return errors.Is(err, ErrNetwork) }
