package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"interviewai_backend/internal/config"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/monitoring"
	"interviewai_backend/pkg/tracing"
	"io"
	"net/http"
	"strings"
)

// Transcriber 语音转文字
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// DeepgramService Deepgram 预录音频转写
type DeepgramService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewDeepgramService(cfg config.SpeechConfig) *DeepgramService {
	return &DeepgramService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Transcribe 没有识别到内容时返回空字符串
func (s *DeepgramService) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "speech.transcribe")
	transcript, err := s.transcribe(ctx, audio, contentType)
	tracing.End(span, err)

	status := "success"
	if err != nil {
		status = "error"
	}
	monitoring.TranscriptionRequests.WithLabelValues(status).Inc()
	return transcript, err
}

func (s *DeepgramService) transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/listen", bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "audio/wav"
	}
	req.Header.Set("Authorization", "Token "+s.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", util.Upstream("transcribe", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", util.Upstream("transcribe", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", util.Upstream("transcribe", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var result deepgramResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", util.Upstream("transcribe", err)
	}

	if len(result.Results.Channels) == 0 || len(result.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return result.Results.Channels[0].Alternatives[0].Transcript, nil
}
