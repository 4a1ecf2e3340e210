// Package dependency wires core textmath services using go.uber.org/dig.
package dependency

import (
	"fmt"
	"time"

	"go.uber.org/dig"

	"github.com/textmath/textmath/internal/agent"
	"github.com/textmath/textmath/internal/chat"
	"github.com/textmath/textmath/internal/config"
	"github.com/textmath/textmath/internal/providers"
	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/session"
	"github.com/textmath/textmath/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	credential config.Credential
	provider   schema.LLMProvider
	registry   *tools.Registry
	agent      schema.Agent
	sessions   *session.Manager
	controller *chat.Controller
}

func (c *Container) Credential() config.Credential { return c.credential }
func (c *Container) Provider() schema.LLMProvider  { return c.provider }
func (c *Container) Tools() *tools.Registry        { return c.registry }
func (c *Container) Agent() schema.Agent           { return c.agent }
func (c *Container) Sessions() *session.Manager    { return c.sessions }
func (c *Container) Controller() *chat.Controller  { return c.controller }

// ProviderFactory builds the LLM client. Tests replace it with a fake.
type ProviderFactory func(providers.Params) schema.LLMProvider

// New builds and wires all core services from cfg. The credential is
// resolved first; when it is missing nothing else is constructed and the
// returned error wraps config.ErrMissingCredential.
func New(cfg *config.Config) (*Container, error) {
	return NewWithProvider(cfg, providers.New)
}

// NewWithProvider is New with a custom provider factory.
func NewWithProvider(cfg *config.Config, factory ProviderFactory) (*Container, error) {
	cred, err := cfg.LoadCredential()
	if err != nil {
		return nil, err
	}

	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() config.Credential { return cred }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() ProviderFactory { return factory }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentSettings); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgent); err != nil {
		return nil, err
	}
	if err := d.Provide(newSessionManager); err != nil {
		return nil, err
	}
	if err := d.Provide(chat.NewController); err != nil {
		return nil, err
	}

	var result *Container
	err = d.Invoke(func(
		provider schema.LLMProvider,
		registry *tools.Registry,
		ag schema.Agent,
		sessions *session.Manager,
		controller *chat.Controller,
	) {
		result = &Container{
			credential: cred,
			provider:   provider,
			registry:   registry,
			agent:      ag,
			sessions:   sessions,
			controller: controller,
		}
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return result, nil
}

func newProvider(cfg *config.Config, cred config.Credential, factory ProviderFactory) (schema.LLMProvider, error) {
	model := cfg.Agents.Defaults.Model
	result := cfg.MatchProvider(model)
	if result.Provider == nil {
		return nil, fmt.Errorf("no provider configured for model %q (edit %s)", model, config.ConfigPath())
	}

	apiBase := result.Provider.APIBase
	if apiBase == "" {
		apiBase = cfg.GetAPIBase(model)
	}
	return factory(providers.Params{
		APIKey:       cred.APIKey,
		APIBase:      apiBase,
		ExtraHeaders: result.Provider.ExtraHeaders,
		DefaultModel: model,
		ProviderName: result.Name,
	}), nil
}

func newAgentSettings(cfg *config.Config) schema.AgentSettings {
	d := cfg.Agents.Defaults
	return schema.NewAgentSettings(d.Model, d.MaxToolIter, d.Temperature, d.MaxTokens, d.MemoryWindow)
}

func newToolRegistry(cfg *config.Config, provider schema.LLMProvider, settings schema.AgentSettings) (*tools.Registry, error) {
	return tools.NewBuiltinRegistry(provider, settings.ChatOptions(), cfg.Tools)
}

func newAgent(cfg *config.Config, provider schema.LLMProvider, settings schema.AgentSettings, registry *tools.Registry) (schema.Agent, error) {
	return agent.New(cfg.Agents.Defaults.Mode, provider, settings, registry)
}

func newSessionManager(cfg *config.Config) *session.Manager {
	ttl := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	return session.NewManager(cfg.Agents.Defaults.Greeting, ttl)
}
