package assistant

import "context"

// LatLng is a WGS84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Request is one question for a provider.
type Request struct {
	Mode     Mode
	Prompt   string
	Context  string
	Location *LatLng
}

// Source is a grounding reference returned with an answer.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Response is a provider answer.
type Response struct {
	Text    string
	Sources []Source
}

// Provider answers assistant requests, normally by calling a hosted model.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (Response, error)

func (f ProviderFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
