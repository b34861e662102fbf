// Package initializer runs the interactive first-run setup wizard. It
// collects the agent settings through a series of prompts and persists
// them to the configuration file.
package initializer

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/theme"
)

// SupportedModels lists the agent model identifiers the wizard offers.
var SupportedModels = []string{
	"bambooclaw-standard",
	"bambooclaw-mini",
	"bambooclaw-pro",
}

// ConfigStore is the persistence surface the wizard writes through.
type ConfigStore interface {
	Exists() bool
	Get(key string) (interface{}, error)
	Set(key string, value interface{}) error
}

// Asker abstracts the interactive prompt so tests can script answers.
type Asker interface {
	Ask(prompt survey.Prompt, response interface{}) error
}

// surveyAsker asks through the real terminal.
type surveyAsker struct{}

func (surveyAsker) Ask(prompt survey.Prompt, response interface{}) error {
	return survey.AskOne(prompt, response)
}

// Initializer handles the interactive setup process
type Initializer struct {
	store    ConfigStore
	asker    Asker
	log      logger.Logger
	cliTheme *theme.Manager
}

// New creates an initializer with the real terminal prompt.
func New(store ConfigStore, log logger.Logger, themeMgr *theme.Manager) *Initializer {
	return &Initializer{
		store:    store,
		asker:    surveyAsker{},
		log:      log,
		cliTheme: themeMgr,
	}
}

// WithAsker replaces the prompt backend, useful for testing.
func (i *Initializer) WithAsker(a Asker) *Initializer {
	i.asker = a
	return i
}

// Run starts the interactive configuration process. When a configuration
// already exists it becomes an update pass, re-prompting with the current
// values as defaults.
func (i *Initializer) Run() error {
	t := i.cliTheme.GetCurrentTheme()
	updateMode := i.store.Exists()
	i.log.Debug("starting configuration wizard", logger.Fields{"update_mode": updateMode})

	if updateMode {
		t.Primary().Println("Configuration Update Mode")
		t.Warning().Println("You are about to update your existing configuration.")
	} else {
		t.Primary().Println("Initial Configuration")
		t.Info().Println("Configure your agent for the first time. You can change everything later with 'clawctl config set'.")
	}
	fmt.Println()

	if err := i.configureCredentials(); err != nil {
		return fmt.Errorf("error configuring credentials: %w", err)
	}
	if err := i.configureModel(); err != nil {
		return fmt.Errorf("error configuring model: %w", err)
	}
	if err := i.configureRuntime(); err != nil {
		return fmt.Errorf("error configuring runtime: %w", err)
	}

	i.log.Debug("configuration wizard complete", nil)
	t.Success().Println("\nConfiguration saved successfully!")
	t.Info().Println("Run 'clawctl start' to launch the agent daemon.")
	return nil
}

func (i *Initializer) configureCredentials() error {
	var apiKey string
	prompt := &survey.Password{
		Message: "API key for the agent backend:",
		Help:    "Stored in the configuration file under your home directory.",
	}
	if err := i.asker.Ask(prompt, &apiKey); err != nil {
		return err
	}
	if apiKey == "" {
		// an update pass may keep the existing key
		if current, err := i.store.Get("api_key"); err == nil && current != nil {
			return nil
		}
		return fmt.Errorf("an API key is required")
	}
	return i.store.Set("api_key", apiKey)
}

func (i *Initializer) configureModel() error {
	prompt := &survey.Select{
		Message: "Choose an agent model:",
		Options: SupportedModels,
		Default: SupportedModels[0],
	}
	if current, err := i.store.Get("model"); err == nil {
		if name, ok := current.(string); ok && name != "" {
			prompt.Default = name
		}
	}

	var selected string
	if err := i.asker.Ask(prompt, &selected); err != nil {
		return err
	}
	return i.store.Set("model", selected)
}

func (i *Initializer) configureRuntime() error {
	var autostart bool
	promptAutostart := &survey.Confirm{
		Message: "Start the daemon automatically on login?",
		Default: false,
	}
	if err := i.asker.Ask(promptAutostart, &autostart); err != nil {
		return err
	}
	if err := i.store.Set("autostart", autostart); err != nil {
		return err
	}

	var workers string
	promptWorkers := &survey.Input{
		Message: "Maximum concurrent agent tasks:",
		Default: "2",
	}
	if err := i.asker.Ask(promptWorkers, &workers); err != nil {
		return err
	}
	n, err := strconv.Atoi(workers)
	if err != nil || n < 1 {
		return fmt.Errorf("maximum concurrent tasks must be a positive number, got %q", workers)
	}
	return i.store.Set("max_tasks", n)
}
