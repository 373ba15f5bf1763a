package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// MailConfig represents the configuration for the mail provider
type MailConfig struct {
	Provider string
}

// AgentMailConfig represents the configuration for the AgentMail API
type AgentMailConfig struct {
	APIKey       string
	BaseURL      string
	InboxLabel   string
	InboxAddress string
}

// MailboxConfig represents the configuration for a plain IMAP/SMTP mailbox
type MailboxConfig struct {
	IMAPHost string
	IMAPPort int
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	Address  string
	Folder   string
}

// AnthropicConfig represents the configuration for Anthropic
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// AgentConfig represents the recruiting agent configuration
type AgentConfig struct {
	InterviewerEmail   string
	CompanyName        string
	CompanyDescription string
	CompanyRoles       string
	CompanyProcess     string
	MessageLimit       int
	MaxBodySize        int
}

// StoreConfig represents the state store configuration
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetMail returns the mail provider configuration
func (c *Config) GetMail() MailConfig {
	return MailConfig{
		Provider: c.GetString("mail.provider"),
	}
}

// GetAgentMail returns the AgentMail configuration
func (c *Config) GetAgentMail() AgentMailConfig {
	return AgentMailConfig{
		APIKey:       c.GetString("agentmail.api_key"),
		BaseURL:      c.GetString("agentmail.base_url"),
		InboxLabel:   c.GetString("agentmail.inbox_label"),
		InboxAddress: c.GetString("agentmail.inbox_address"),
	}
}

// GetMailbox returns the IMAP/SMTP mailbox configuration
func (c *Config) GetMailbox() MailboxConfig {
	return MailboxConfig{
		IMAPHost: c.GetString("mailbox.imap_host"),
		IMAPPort: c.GetInt("mailbox.imap_port"),
		SMTPHost: c.GetString("mailbox.smtp_host"),
		SMTPPort: c.GetInt("mailbox.smtp_port"),
		Username: c.GetString("mailbox.username"),
		Password: c.GetString("mailbox.password"),
		Address:  c.GetString("mailbox.address"),
		Folder:   c.GetString("mailbox.folder"),
	}
}

// GetAnthropic returns the Anthropic configuration
func (c *Config) GetAnthropic() AnthropicConfig {
	return AnthropicConfig{
		APIKey:    c.GetString("anthropic.api_key"),
		Model:     c.GetString("anthropic.model"),
		MaxTokens: c.GetInt("anthropic.max_tokens"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetAgent returns the agent configuration
func (c *Config) GetAgent() AgentConfig {
	return AgentConfig{
		InterviewerEmail:   c.GetString("agent.interviewer_email"),
		CompanyName:        c.GetString("agent.company_name"),
		CompanyDescription: c.GetString("agent.company_description"),
		CompanyRoles:       c.GetString("agent.company_roles"),
		CompanyProcess:     c.GetString("agent.company_process"),
		MessageLimit:       c.GetInt("agent.message_limit"),
		MaxBodySize:        c.GetInt("agent.max_body_size"),
	}
}

// GetStore returns the state store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}
