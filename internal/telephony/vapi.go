package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruit_portal_backend/platform/config"
)

const defaultVapiBaseURL = "https://api.vapi.ai"

// VapiClient implements Provider against the Vapi calling API. A call is
// created, then polled until it reaches a terminal status.
type VapiClient struct {
	apiKey        string
	phoneNumberID string
	baseURL       string
	client        *http.Client
	pollInterval  time.Duration
	callTimeout   time.Duration
}

// NewVapiClient creates a Vapi provider client from the provider config.
func NewVapiClient(cfg config.ProviderConfig) *VapiClient {
	return &VapiClient{
		apiKey:        cfg.GetVapiAPIKey(),
		phoneNumberID: cfg.GetVapiPhoneNumberID(),
		baseURL:       defaultVapiBaseURL,
		client:        &http.Client{Timeout: 30 * time.Second},
		pollInterval:  5 * time.Second,
		callTimeout:   15 * time.Minute,
	}
}

type vapiCreateCallRequest struct {
	PhoneNumberID string        `json:"phoneNumberId"`
	Customer      vapiCustomer  `json:"customer"`
	Assistant     vapiAssistant `json:"assistant"`
}

type vapiCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type vapiAssistant struct {
	FirstMessage string `json:"firstMessage"`
}

type vapiCall struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	EndedReason string   `json:"endedReason"`
	Transcript  string   `json:"transcript"`
	Summary     string   `json:"summary"`
	StartedAt   *string  `json:"startedAt"`
	EndedAt     *string  `json:"endedAt"`
	Cost        float64  `json:"cost"`
	Analysis    struct { // structured analysis is optional on the account
		Summary string `json:"summary"`
	} `json:"analysis"`
}

// PlaceCall creates a call and polls until the provider reports it ended.
func (v *VapiClient) PlaceCall(ctx context.Context, params CallParams) (CallReport, error) {
	script := ResolveScript(params.Script, params.CandidateName, params.VacancyTitle)
	if script == "" {
		script = fmt.Sprintf("Hello %s, I am calling about the %s position.", params.CandidateName, params.VacancyTitle)
	}

	created, err := v.createCall(ctx, vapiCreateCallRequest{
		PhoneNumberID: v.phoneNumberID,
		Customer:      vapiCustomer{Number: params.Phone, Name: params.CandidateName},
		Assistant:     vapiAssistant{FirstMessage: script},
	})
	if err != nil {
		return CallReport{}, err
	}

	final, err := v.waitForEnd(ctx, created.ID)
	if err != nil {
		return CallReport{ProviderCallID: created.ID}, err
	}
	return v.buildReport(final), nil
}

func (v *VapiClient) createCall(ctx context.Context, reqBody vapiCreateCallRequest) (vapiCall, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return vapiCall{}, fmt.Errorf("marshal vapi call: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/call", bytes.NewReader(payload))
	if err != nil {
		return vapiCall{}, fmt.Errorf("build vapi request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var call vapiCall
	if err := v.do(req, &call); err != nil {
		return vapiCall{}, err
	}
	return call, nil
}

func (v *VapiClient) getCall(ctx context.Context, id string) (vapiCall, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/call/"+id, nil)
	if err != nil {
		return vapiCall{}, fmt.Errorf("build vapi request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	var call vapiCall
	if err := v.do(req, &call); err != nil {
		return vapiCall{}, err
	}
	return call, nil
}

func (v *VapiClient) do(req *http.Request, out any) error {
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("vapi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read vapi response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("vapi %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode vapi response: %w", err)
	}
	return nil
}

func (v *VapiClient) waitForEnd(ctx context.Context, id string) (vapiCall, error) {
	deadline := time.NewTimer(v.callTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return vapiCall{}, ctx.Err()
		case <-deadline.C:
			return vapiCall{}, fmt.Errorf("vapi call %s did not end within %s", id, v.callTimeout)
		case <-ticker.C:
			call, err := v.getCall(ctx, id)
			if err != nil {
				return vapiCall{}, err
			}
			if call.Status == "ended" {
				return call, nil
			}
		}
	}
}

func (v *VapiClient) buildReport(call vapiCall) CallReport {
	report := CallReport{
		ProviderCallID: call.ID,
		Outcome:        outcomeFromEndedReason(call.EndedReason),
	}
	if call.Transcript != "" {
		transcript := call.Transcript
		report.Transcript = &transcript
	}
	summary := call.Summary
	if summary == "" {
		summary = call.Analysis.Summary
	}
	if summary != "" {
		report.Summary = &summary
	}
	if call.StartedAt != nil && call.EndedAt != nil {
		started, err1 := time.Parse(time.RFC3339, *call.StartedAt)
		ended, err2 := time.Parse(time.RFC3339, *call.EndedAt)
		if err1 == nil && err2 == nil {
			duration := int(ended.Sub(started).Seconds())
			report.Duration = &duration
		}
	}
	if report.Outcome == "error" && call.EndedReason != "" {
		reason := call.EndedReason
		report.ErrorMessage = &reason
	}
	return report
}

// outcomeFromEndedReason maps the provider's ended reason onto the call
// outcome vocabulary. Reasons without a clear mapping are errors.
func outcomeFromEndedReason(reason string) string {
	switch reason {
	case "customer-ended-call", "assistant-ended-call":
		return "interested"
	case "customer-did-not-answer", "no-answer":
		return "no_answer"
	case "customer-busy", "busy":
		return "busy"
	case "voicemail":
		return "voicemail"
	case "customer-did-not-give-microphone-permission", "customer-ended-call-hangup":
		return "not_interested"
	default:
		return "error"
	}
}
