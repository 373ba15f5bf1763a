package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
	"github.com/kevinxc1/MailHub/internal/factory"
	"github.com/kevinxc1/MailHub/internal/logging"
	"github.com/kevinxc1/MailHub/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register mail provider
	if err := container.Provide(func(f *factory.MailFactory) (core.MailProvider, error) {
		return f.CreateMailProvider()
	}); err != nil {
		return nil, err
	}

	// Register state repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.StateRepository, error) {
		return f.CreateStateRepository()
	}); err != nil {
		return nil, err
	}

	// Register company profile
	if err := container.Provide(func(cfg *config.Config) core.CompanyProfile {
		agentCfg := cfg.GetAgent()
		return core.CompanyProfile{
			Name:        agentCfg.CompanyName,
			Description: agentCfg.CompanyDescription,
			Roles:       agentCfg.CompanyRoles,
			Process:     agentCfg.CompanyProcess,
		}
	}); err != nil {
		return nil, err
	}

	// Register triage components
	if err := container.Provide(core.NewClassifier); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewEvaluator); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewDrafter); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		mail core.MailProvider,
		state core.StateRepository,
		classifier *core.Classifier,
		evaluator *core.Evaluator,
		drafter *core.Drafter,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.TriageService {
		return core.NewTriageService(mail, state, classifier, evaluator, drafter,
			logger, cfg.GetAgent().InterviewerEmail)
	}); err != nil {
		return nil, err
	}

	// Register poller
	if err := container.Provide(func(
		mail core.MailProvider,
		service *core.TriageService,
		logger *zap.Logger,
		cfg *config.Config,
	) (*core.Poller, error) {
		pollInterval, err := cfg.GetDuration("agent.poll_interval")
		if err != nil {
			return nil, err
		}
		errorBackoff, err := cfg.GetDuration("agent.error_backoff")
		if err != nil {
			return nil, err
		}
		return core.NewPoller(mail, service, logger,
			pollInterval, errorBackoff, cfg.GetAgent().MessageLimit), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
