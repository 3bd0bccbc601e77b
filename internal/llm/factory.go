package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates completion clients with consistent selection logic: the
// mock switch wins over any provider setting, so test deployments never
// reach the network.
type Factory struct {
	Mock             bool
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	Temperature      float32
	YandexOAuthToken string
	YandexFolderID   string
}

func (f *Factory) CreateClient(provider string) (Client, error) {
	if f.Mock {
		return NewMock(), nil
	}
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return NewOpenAI(f.OpenAIAPIKey, f.OpenAIBaseURL, f.OpenAIModel, f.Temperature), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
