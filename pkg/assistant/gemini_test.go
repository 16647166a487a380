package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildCallModels(t *testing.T) {
	tests := map[string]struct {
		mode  Mode
		model string
		empty string
	}{
		"fast":     {mode: Fast{}, model: ModelFast, empty: emptyFast},
		"maps":     {mode: LocationGrounded{}, model: ModelMaps, empty: emptyMaps},
		"thinking": {mode: DeepReasoning{}, model: ModelThinking, empty: emptyThinking},
		"image":    {mode: ImageAnalysis{Image: []byte{1}}, model: ModelImage, empty: emptyImage},
		"audio":    {mode: AudioTranscription{Audio: []byte{1}}, model: ModelAudio, empty: emptyAudio},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			call := buildCall(Request{Mode: tc.mode, Prompt: "oi"})
			assert.Equal(t, tc.model, call.model)
			assert.Equal(t, tc.empty, call.empty)
			require.Len(t, call.contents, 1)
		})
	}
}

func TestBuildCallFastPrompt(t *testing.T) {
	call := buildCall(Request{Mode: Fast{}, Prompt: "Quem sobe hoje?", Context: "DADOS"})
	require.Len(t, call.contents[0].Parts, 1)
	assert.Equal(t, "DADOS DO APLICATIVO:\nDADOS\n\nPERGUNTA DO USUÁRIO:\nQuem sobe hoje?", call.contents[0].Parts[0].Text)
	require.NotNil(t, call.config.SystemInstruction)
	assert.Equal(t, fastInstruction, call.config.SystemInstruction.Parts[0].Text)

	call = buildCall(Request{Mode: Fast{}, Prompt: "sem contexto"})
	assert.Equal(t, "sem contexto", call.contents[0].Parts[0].Text)
}

func TestBuildCallMapsLocation(t *testing.T) {
	call := buildCall(Request{Mode: LocationGrounded{}, Prompt: "distância?", Location: &LatLng{Lat: -3.1, Lng: -60}})
	require.Len(t, call.config.Tools, 1)
	assert.NotNil(t, call.config.Tools[0].GoogleMaps)
	require.NotNil(t, call.config.ToolConfig)
	ll := call.config.ToolConfig.RetrievalConfig.LatLng
	assert.Equal(t, -3.1, *ll.Latitude)
	assert.Equal(t, -60.0, *ll.Longitude)

	call = buildCall(Request{Mode: LocationGrounded{}, Prompt: "distância?"})
	assert.Nil(t, call.config.ToolConfig)
}

func TestBuildCallThinkingBudget(t *testing.T) {
	call := buildCall(Request{Mode: DeepReasoning{}, Prompt: "planeje", Context: "X"})
	require.NotNil(t, call.config.ThinkingConfig)
	assert.EqualValues(t, 32768, *call.config.ThinkingConfig.ThinkingBudget)
	assert.True(t, strings.HasPrefix(call.contents[0].Parts[0].Text, "DADOS COMPLETOS DO SISTEMA:\nX"))
}

func TestBuildCallMedia(t *testing.T) {
	call := buildCall(Request{Mode: ImageAnalysis{Image: []byte{0xff}}})
	parts := call.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.Equal(t, defaultImagePrompt, parts[1].Text)

	call = buildCall(Request{Mode: ImageAnalysis{Image: []byte{0xff}, MIMEType: "image/png", Prompt: "só os horários"}})
	parts = call.contents[0].Parts
	assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
	assert.Equal(t, "só os horários", parts[1].Text)

	call = buildCall(Request{Mode: AudioTranscription{Audio: []byte("x")}})
	parts = call.contents[0].Parts
	assert.Equal(t, "audio/webm", parts[0].InlineData.MIMEType)
	assert.Equal(t, audioPrompt, parts[1].Text)
}

func TestGroundingSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://example.com/coari"}},
			{Maps: &genai.GroundingChunkMaps{URI: "https://maps.google.com/?cid=2", Title: "Porto de Coari"}},
			{Web: &genai.GroundingChunkWeb{}},
			nil,
		}},
	}}}
	assert.Equal(t, []Source{
		{URI: "https://example.com/coari", Title: "Link Web"},
		{URI: "https://maps.google.com/?cid=2", Title: "Porto de Coari"},
	}, groundingSources(resp))
	assert.Nil(t, groundingSources(&genai.GenerateContentResponse{}))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGeminiWithConfig(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)
	return g
}

func TestGeminiGenerate(t *testing.T) {
	var path string
	var body map[string]any
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Coari fica a 363 km de Manaus."}]},
			"groundingMetadata":{"groundingChunks":[{"maps":{"uri":"https://maps.google.com/?cid=3","title":"Coari"}}]}}]}`)
	})

	resp, err := g.Generate(context.Background(), Request{Mode: LocationGrounded{}, Prompt: "Coari?"})
	require.NoError(t, err)
	assert.Equal(t, "Coari fica a 363 km de Manaus.", resp.Text)
	assert.Equal(t, []Source{{URI: "https://maps.google.com/?cid=3", Title: "Coari"}}, resp.Sources)
	assert.Contains(t, path, "gemini-2.5-flash:generateContent")
	assert.Contains(t, body, "tools")
}

func TestGeminiEmptyReply(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})
	resp, err := g.Generate(context.Background(), Request{Mode: DeepReasoning{}, Prompt: "?"})
	require.NoError(t, err)
	assert.Equal(t, emptyThinking, resp.Text)
}

func TestGeminiErrorMapsToInvalidKey(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"Method doesn't allow unregistered callers.","status":"PERMISSION_DENIED"}}`)
	})
	_, err := g.Generate(context.Background(), Request{Mode: Fast{}, Prompt: "oi"})
	require.Error(t, err)
	assert.Equal(t, msgInvalidKey, ErrorMessage(err))
}
