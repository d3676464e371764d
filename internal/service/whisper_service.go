package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mulakatpro/interview-analyzer/internal/config"
	"github.com/mulakatpro/interview-analyzer/internal/model"
)

// TranscriberInterface is the media transcription boundary. A nil result
// means "no media transcript available", an ordinary outcome the caller
// handles, never an exception path.
type TranscriberInterface interface {
	Transcribe(ctx context.Context, mediaURL string, withTimestamps bool) *model.TranscriptionOutput
}

// transcriptionClient is the slice of the OpenAI client the service needs;
// tests substitute a stub.
type transcriptionClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

type WhisperService struct {
	client     transcriptionClient
	httpClient *resty.Client
	model      string
}

func NewWhisperService() (*WhisperService, error) {
	openAIConfig := config.LoadOpenAIConfig()
	if openAIConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	return &WhisperService{
		client:     openai.NewClient(openAIConfig.APIKey),
		httpClient: resty.New().SetTimeout(2 * time.Minute),
		model:      openAIConfig.TranscriptionModel,
	}, nil
}

// Transcribe downloads the media and sends it to Whisper. Audio payloads go
// through as-is; video containers are submitted anyway since Whisper accepts
// some of them, there is no local demuxing. Unsupported formats and
// transport failures both come back as nil, logged.
func (s *WhisperService) Transcribe(ctx context.Context, mediaURL string, withTimestamps bool) *model.TranscriptionOutput {
	payload, filename := s.downloadMedia(ctx, mediaURL)
	if payload == nil {
		return nil
	}

	request := openai.AudioRequest{
		Model:       s.model,
		Reader:      bytes.NewReader(payload),
		FilePath:    filename,
		Temperature: 0.2,
		Language:    "tr",
	}
	if withTimestamps {
		request.Format = openai.AudioResponseFormatVerboseJSON
		request.TimestampGranularities = []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		}
	} else {
		request.Format = openai.AudioResponseFormatText
	}

	response, err := s.client.CreateTranscription(ctx, request)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 400 {
			// The capability rejected the container format. Expected for
			// most video uploads; the caller falls back to written answers.
			log.Printf("Transcription format not supported for %s: %v", filename, err)
			return nil
		}
		log.Printf("Transcription failed: %v", err)
		return nil
	}

	text := strings.TrimSpace(response.Text)
	if text == "" {
		return nil
	}

	output := &model.TranscriptionOutput{Text: text}
	if withTimestamps {
		for _, segment := range response.Segments {
			output.Segments = append(output.Segments, model.TimestampedSegment{
				Start: segment.Start,
				End:   segment.End,
				Text:  strings.TrimSpace(segment.Text),
			})
		}
	}
	return output
}

// downloadMedia fetches the recording and names the upload after its
// content type so the transcription API can infer the container.
func (s *WhisperService) downloadMedia(ctx context.Context, mediaURL string) ([]byte, string) {
	resp, err := s.httpClient.R().SetContext(ctx).Get(mediaURL)
	if err != nil {
		log.Printf("Media download failed: %v", err)
		return nil, ""
	}
	if resp.IsError() {
		log.Printf("Media download failed: %s returned %d", mediaURL, resp.StatusCode())
		return nil, ""
	}

	contentType := resp.Header().Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "audio/"):
		return resp.Body(), "audio." + audioExtension(contentType)
	case strings.HasPrefix(contentType, "video/") || strings.Contains(contentType, "webm"):
		return resp.Body(), "video." + videoExtension(contentType)
	default:
		log.Printf("Media content type %q is not transcribable", contentType)
		return nil, ""
	}
}

func audioExtension(contentType string) string {
	switch {
	case strings.Contains(contentType, "mp3") || strings.Contains(contentType, "mpeg"):
		return "mp3"
	case strings.Contains(contentType, "wav"):
		return "wav"
	case strings.Contains(contentType, "m4a") || strings.Contains(contentType, "mp4"):
		return "m4a"
	default:
		return "mp3"
	}
}

func videoExtension(contentType string) string {
	switch {
	case strings.Contains(contentType, "webm"):
		return "webm"
	case strings.Contains(contentType, "mp4"):
		return "mp4"
	case strings.Contains(contentType, "quicktime") || strings.Contains(contentType, "mov"):
		return "mov"
	default:
		return "webm"
	}
}
