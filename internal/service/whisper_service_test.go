package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriptionClient struct {
	requests []openai.AudioRequest
	response openai.AudioResponse
	err      error
}

func (s *stubTranscriptionClient) CreateTranscription(_ context.Context, request openai.AudioRequest) (openai.AudioResponse, error) {
	s.requests = append(s.requests, request)
	return s.response, s.err
}

func audioResponseFromJSON(t *testing.T, payload string) openai.AudioResponse {
	t.Helper()
	var response openai.AudioResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &response))
	return response
}

func mediaServer(contentType string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte("binary media payload"))
		}
	}))
}

func newTestWhisperService(client transcriptionClient) *WhisperService {
	return &WhisperService{
		client:     client,
		httpClient: resty.New().SetTimeout(5 * time.Second),
		model:      "whisper-1",
	}
}

func TestTranscribeAudioPlainText(t *testing.T) {
	server := mediaServer("audio/mpeg", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{response: audioResponseFromJSON(t, `{"text":"  merhaba bu bir deneme  "}`)}
	service := newTestWhisperService(client)

	output := service.Transcribe(context.Background(), server.URL, false)

	require.NotNil(t, output)
	assert.Equal(t, "merhaba bu bir deneme", output.Text)
	assert.Empty(t, output.Segments)

	require.Len(t, client.requests, 1)
	request := client.requests[0]
	assert.Equal(t, "whisper-1", request.Model)
	assert.Equal(t, "audio.mp3", request.FilePath)
	assert.Equal(t, "tr", request.Language)
	assert.Equal(t, openai.AudioResponseFormatText, request.Format)
	assert.Empty(t, request.TimestampGranularities)
}

func TestTranscribeWithTimestamps(t *testing.T) {
	server := mediaServer("video/webm", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{response: audioResponseFromJSON(t, `{
		"text": "ilk cumle ikinci cumle",
		"segments": [
			{"start": 0, "end": 4.5, "text": " ilk cumle "},
			{"start": 5.2, "end": 9.8, "text": " ikinci cumle "}
		]
	}`)}
	service := newTestWhisperService(client)

	output := service.Transcribe(context.Background(), server.URL, true)

	require.NotNil(t, output)
	assert.Equal(t, "ilk cumle ikinci cumle", output.Text)
	require.Len(t, output.Segments, 2)
	assert.Equal(t, 0.0, output.Segments[0].Start)
	assert.Equal(t, 4.5, output.Segments[0].End)
	assert.Equal(t, "ilk cumle", output.Segments[0].Text)
	assert.Equal(t, "ikinci cumle", output.Segments[1].Text)

	require.Len(t, client.requests, 1)
	request := client.requests[0]
	assert.Equal(t, "video.webm", request.FilePath)
	assert.Equal(t, openai.AudioResponseFormatVerboseJSON, request.Format)
	assert.Equal(t, []openai.TranscriptionTimestampGranularity{openai.TranscriptionTimestampGranularitySegment}, request.TimestampGranularities)
}

func TestTranscribeUnsupportedFormatReturnsNil(t *testing.T) {
	server := mediaServer("video/x-msvideo", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{err: &openai.APIError{HTTPStatusCode: 400, Message: "Invalid file format"}}
	service := newTestWhisperService(client)

	output := service.Transcribe(context.Background(), server.URL, false)

	assert.Nil(t, output)
	assert.Len(t, client.requests, 1)
}

func TestTranscribeAPIFailureReturnsNil(t *testing.T) {
	server := mediaServer("audio/wav", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{err: &openai.APIError{HTTPStatusCode: 500, Message: "upstream unavailable"}}
	service := newTestWhisperService(client)

	assert.Nil(t, service.Transcribe(context.Background(), server.URL, false))
}

func TestTranscribeDownloadFailureSkipsAPI(t *testing.T) {
	server := mediaServer("audio/mpeg", http.StatusNotFound)
	defer server.Close()

	client := &stubTranscriptionClient{}
	service := newTestWhisperService(client)

	assert.Nil(t, service.Transcribe(context.Background(), server.URL, false))
	assert.Empty(t, client.requests)
}

func TestTranscribeRejectsNonMediaContent(t *testing.T) {
	server := mediaServer("text/html", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{}
	service := newTestWhisperService(client)

	assert.Nil(t, service.Transcribe(context.Background(), server.URL, false))
	assert.Empty(t, client.requests)
}

func TestTranscribeEmptyTextReturnsNil(t *testing.T) {
	server := mediaServer("audio/mpeg", http.StatusOK)
	defer server.Close()

	client := &stubTranscriptionClient{response: audioResponseFromJSON(t, `{"text":"   "}`)}
	service := newTestWhisperService(client)

	assert.Nil(t, service.Transcribe(context.Background(), server.URL, false))
}

func TestAudioExtension(t *testing.T) {
	assert.Equal(t, "mp3", audioExtension("audio/mpeg"))
	assert.Equal(t, "wav", audioExtension("audio/wav"))
	assert.Equal(t, "m4a", audioExtension("audio/mp4"))
	assert.Equal(t, "mp3", audioExtension("audio/ogg"))
}

func TestVideoExtension(t *testing.T) {
	assert.Equal(t, "webm", videoExtension("video/webm"))
	assert.Equal(t, "mp4", videoExtension("video/mp4"))
	assert.Equal(t, "mov", videoExtension("video/quicktime"))
}
