package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Models used per mode.
const (
	ModelFast     = "gemini-3-flash-preview"
	ModelMaps     = "gemini-2.5-flash"
	ModelThinking = "gemini-3-pro-preview"
	ModelImage    = "gemini-3-pro-preview"
	ModelAudio    = "gemini-3-flash-preview"

	thinkingBudget = 32768
)

const (
	fastInstruction = "Você é o assistente oficial do app 'NavegaAmazonas'. Sua função é ajudar usuários a encontrar horários de lanchas, itinerários e informações sobre transporte fluvial no Amazonas. Use estritamente os dados fornecidos no contexto para responder. Se a informação não estiver nos dados, diga que não encontrou. Seja prestativo, educado e conciso."
	mapsInstruction = "Você é um assistente de viagens fluviais. Use o Google Maps para encontrar distâncias e locais, mas priorize os dados de lanchas fornecidos no contexto do aplicativo."

	defaultImagePrompt = "Analise esta imagem de um horário de lancha e extraia os dados. Liste: Nome da Lancha, Horários, Dias de Saída e Destinos. Formate como texto claro."
	audioPrompt        = "Transcreva este áudio sobre horários de lanchas. Responda apenas com a transcrição exata."

	defaultImageMIME = "image/jpeg"
	defaultAudioMIME = "audio/webm"
)

// Replies used when the model returns no text.
const (
	emptyFast     = "Sem resposta do assistente."
	emptyMaps     = "Não foi possível encontrar informações de mapa."
	emptyThinking = "Sem resposta do modelo de pensamento."
	emptyImage    = "Não consegui analisar a imagem."
	emptyAudio    = "Falha na transcrição."
)

// ErrMissingAPIKey is returned when no Gemini key is configured.
var ErrMissingAPIKey = errors.New("assistant: API key not configured")

// GeminiProvider answers requests with the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// NewGemini creates a provider for the Gemini developer API.
func NewGemini(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	return NewGeminiWithConfig(ctx, &genai.ClientConfig{APIKey: apiKey})
}

// NewGeminiWithConfig creates a provider from a full client config, for
// custom endpoints or HTTP clients.
func NewGeminiWithConfig(ctx context.Context, cfg *genai.ClientConfig) (*GeminiProvider, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Backend == genai.BackendUnspecified {
		cfg.Backend = genai.BackendGeminiAPI
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Generate issues exactly one GenerateContent call for the request.
func (g *GeminiProvider) Generate(ctx context.Context, req Request) (Response, error) {
	call := buildCall(req)
	resp, err := g.client.Models.GenerateContent(ctx, call.model, call.contents, call.config)
	if err != nil {
		return Response{}, err
	}
	text := resp.Text()
	if text == "" {
		text = call.empty
	}
	out := Response{Text: text}
	if _, ok := req.Mode.(LocationGrounded); ok {
		out.Sources = groundingSources(resp)
	}
	return out, nil
}

type geminiCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	empty    string
}

func buildCall(req Request) geminiCall {
	switch m := req.Mode.(type) {
	case nil, Fast:
		return geminiCall{
			model:    ModelFast,
			contents: genai.Text(withContext(req, "DADOS DO APLICATIVO", "PERGUNTA DO USUÁRIO")),
			config: &genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(fastInstruction, genai.RoleUser),
			},
			empty: emptyFast,
		}
	case LocationGrounded:
		cfg := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(mapsInstruction, genai.RoleUser),
			Tools:             []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		}
		if req.Location != nil {
			cfg.ToolConfig = &genai.ToolConfig{
				RetrievalConfig: &genai.RetrievalConfig{
					LatLng: &genai.LatLng{
						Latitude:  genai.Ptr(req.Location.Lat),
						Longitude: genai.Ptr(req.Location.Lng),
					},
				},
			}
		}
		return geminiCall{
			model:    ModelMaps,
			contents: genai.Text(withContext(req, "CONTEXTO DO APP", "PERGUNTA")),
			config:   cfg,
			empty:    emptyMaps,
		}
	case DeepReasoning:
		return geminiCall{
			model:    ModelThinking,
			contents: genai.Text(withContext(req, "DADOS COMPLETOS DO SISTEMA", "PROBLEMA COMPLEXO DO USUÁRIO")),
			config: &genai.GenerateContentConfig{
				ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](thinkingBudget)},
			},
			empty: emptyThinking,
		}
	case ImageAnalysis:
		prompt := firstNonEmpty(m.Prompt, req.Prompt, defaultImagePrompt)
		return geminiCall{
			model: ModelImage,
			contents: []*genai.Content{genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(m.Image, firstNonEmpty(m.MIMEType, defaultImageMIME)),
				genai.NewPartFromText(prompt),
			}, genai.RoleUser)},
			empty: emptyImage,
		}
	case AudioTranscription:
		return geminiCall{
			model: ModelAudio,
			contents: []*genai.Content{genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(m.Audio, firstNonEmpty(m.MIMEType, defaultAudioMIME)),
				genai.NewPartFromText(audioPrompt),
			}, genai.RoleUser)},
			empty: emptyAudio,
		}
	default:
		panic(fmt.Sprintf("assistant: unhandled mode %T", m))
	}
}

// withContext prefixes the question with the application data block.
func withContext(req Request, dataHeader, questionHeader string) string {
	if req.Context == "" {
		return req.Prompt
	}
	return fmt.Sprintf("%s:\n%s\n\n%s:\n%s", dataHeader, req.Context, questionHeader, req.Prompt)
}

func groundingSources(resp *genai.GenerateContentResponse) []Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		if chunk.Web != nil && chunk.Web.URI != "" {
			out = append(out, Source{URI: chunk.Web.URI, Title: firstNonEmpty(chunk.Web.Title, "Link Web")})
		}
		if chunk.Maps != nil && chunk.Maps.URI != "" {
			out = append(out, Source{URI: chunk.Maps.URI, Title: firstNonEmpty(chunk.Maps.Title, "Google Maps")})
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
