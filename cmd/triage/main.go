package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
	"github.com/kevinxc1/MailHub/internal/factory"
	"github.com/kevinxc1/MailHub/internal/logging"
)

var (
	// LLM provider flags
	provider  = flag.String("provider", "anthropic", "LLM provider (anthropic, openai, gemini, bedrock)")
	maxTokens = flag.Int("max-tokens", 1000, "Maximum tokens for LLM response")

	// Anthropic flags
	anthropicAPIKey = flag.String("anthropic-api-key", "", "API key for Anthropic")
	anthropicModel  = flag.String("anthropic-model", "claude-sonnet-4-20250514", "Anthropic model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	evaluate   = flag.Bool("evaluate", true, "Also score the email as a job application when classified as one")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Initialize LLM client
	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()
	llmFactory := factory.NewLLMFactory(cfg, logger, textProcessor)
	llmClient, err := llmFactory.CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}

	email := &core.EmailMessage{
		ID:      msg.Header.Get("Message-Id"),
		From:    msg.Header.Get("From"),
		To:      strings.Split(msg.Header.Get("To"), ","),
		Subject: msg.Header.Get("Subject"),
		Body:    string(bodyBytes),
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))
	fmt.Printf("\n")

	fmt.Printf("=== Triage ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("llm.provider"))

	startTime := time.Now()
	ctx := context.Background()

	classifier := core.NewClassifier(llmClient, logger)
	category, err := classifier.Classify(ctx, email)
	if err != nil {
		logger.Fatal("Failed to classify email", zap.Error(err))
	}

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Category: %s\n", category)

	if *evaluate && category == core.CategoryNewApplication {
		evaluator := core.NewEvaluator(llmClient, logger)
		evaluation, err := evaluator.Evaluate(ctx, email)
		if err != nil && !errors.Is(err, core.ErrUnparseable) {
			logger.Fatal("Failed to evaluate candidate", zap.Error(err))
		}
		if errors.Is(err, core.ErrUnparseable) {
			fmt.Printf("Evaluation: unparseable model output, showing defaults\n")
		}
		fmt.Printf("Score: %d/10\n", evaluation.Score)
		fmt.Printf("Qualified: %t\n", evaluation.Qualified)
		fmt.Printf("Strengths: %s\n", strings.Join(evaluation.Strengths, ", "))
		fmt.Printf("Missing skills: %s\n", strings.Join(evaluation.MissingSkills, ", "))
		fmt.Printf("Next step: %s\n", evaluation.NextStep)
		fmt.Printf("Reasoning: %s\n", evaluation.Reasoning)
	}

	fmt.Printf("Processing time: %v\n", time.Since(startTime))

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
}

// createConfigFromFlags builds a configuration from the command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	v.Set("anthropic.api_key", *anthropicAPIKey)
	v.Set("anthropic.model", *anthropicModel)
	v.Set("anthropic.max_tokens", *maxTokens)
	v.Set("openai.api_key", *openaiAPIKey)
	v.Set("openai.model_name", *openaiModelName)
	v.Set("openai.max_tokens", *maxTokens)
	v.Set("gemini.api_key", *geminiAPIKey)
	v.Set("gemini.model_name", *geminiModelName)
	v.Set("gemini.max_tokens", *maxTokens)
	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModelID)
	v.Set("bedrock.max_tokens", *maxTokens)

	return config.NewFromViper(v)
}
