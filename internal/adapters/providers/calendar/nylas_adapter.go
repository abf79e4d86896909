package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thongular/booking/internal/domain/availability"
	"github.com/thongular/booking/internal/domain/providers"
	"github.com/thongular/booking/pkg/retry"
)

const defaultNylasBaseURL = "https://api.us.nylas.com"

// NylasAdapter implements CalendarProvider against the Nylas v3 free/busy endpoint
type NylasAdapter struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	retryCfg retry.Config
}

// NylasConfig configures the Nylas adapter
type NylasConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// NewNylasAdapter creates a new Nylas adapter
func NewNylasAdapter(cfg NylasConfig) *NylasAdapter {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultNylasBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &NylasAdapter{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		retryCfg: retry.RequestConfig(cfg.MaxAttempts),
	}
}

var _ providers.CalendarProvider = (*NylasAdapter)(nil)

type freeBusyRequest struct {
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
	Emails    []string `json:"emails"`
}

type freeBusyResponse struct {
	RequestID string          `json:"request_id"`
	Data      []freeBusyEntry `json:"data"`
}

type freeBusyEntry struct {
	Email     string         `json:"email"`
	Object    string         `json:"object"`
	Error     string         `json:"error"`
	TimeSlots []freeBusySlot `json:"time_slots"`
}

type freeBusySlot struct {
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Status    string `json:"status"`
}

// GetBusyIntervals queries the free/busy endpoint for the grant and returns the busy ranges
func (a *NylasAdapter) GetBusyIntervals(ctx context.Context, grantID, email string, from, to time.Time) ([]availability.BusyInterval, error) {
	if grantID == "" {
		return nil, ErrMissingGrant
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid time range: %s before %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	payload, err := json.Marshal(freeBusyRequest{
		StartTime: from.Unix(),
		EndTime:   to.Unix(),
		Emails:    []string{email},
	})
	if err != nil {
		return nil, err
	}

	var result freeBusyResponse
	err = retry.DoWithLog(ctx, a.retryCfg, "nylas", func() error {
		var callErr error
		result, callErr = a.doFreeBusy(ctx, grantID, payload)
		return callErr
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Str("grant_id", grantID).
			Msg("Nylas free/busy request failed, retrying")
	})
	if err != nil {
		return nil, err
	}

	return parseFreeBusy(result, email)
}

func (a *NylasAdapter) doFreeBusy(ctx context.Context, grantID string, payload []byte) (freeBusyResponse, error) {
	url := fmt.Sprintf("%s/v3/grants/%s/calendars/free-busy", a.baseURL, grantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return freeBusyResponse{}, retry.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return freeBusyResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		statusErr := fmt.Errorf("nylas api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return freeBusyResponse{}, retry.Permanent(statusErr)
		}
		return freeBusyResponse{}, statusErr
	}

	var result freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return freeBusyResponse{}, retry.Permanent(fmt.Errorf("decode nylas response: %w", err))
	}
	return result, nil
}

// parseFreeBusy selects the entry for email (else the first) and converts its busy slots
func parseFreeBusy(result freeBusyResponse, email string) ([]availability.BusyInterval, error) {
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("nylas response has no free/busy data")
	}

	entry := result.Data[0]
	for _, candidate := range result.Data {
		if email != "" && strings.EqualFold(candidate.Email, email) {
			entry = candidate
			break
		}
	}

	if entry.Object == "error" {
		return nil, fmt.Errorf("nylas free/busy error for %s: %s", entry.Email, entry.Error)
	}

	intervals := make([]availability.BusyInterval, 0, len(entry.TimeSlots))
	for _, slot := range entry.TimeSlots {
		if slot.Status != "" && slot.Status != "busy" {
			continue
		}
		interval, err := availability.BusyIntervalFromUnix(slot.StartTime, slot.EndTime)
		if err != nil {
			log.Warn().
				Err(err).
				Str("email", entry.Email).
				Msg("Dropping malformed busy interval")
			continue
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}
