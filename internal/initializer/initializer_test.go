package initializer

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/config"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/theme"
)

// scriptedAsker replays a fixed list of answers instead of prompting.
type scriptedAsker struct {
	answers []interface{}
}

func (s *scriptedAsker) Ask(_ survey.Prompt, response interface{}) error {
	if len(s.answers) == 0 {
		return fmt.Errorf("no scripted answer left")
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]

	switch r := response.(type) {
	case *string:
		*r = answer.(string)
	case *bool:
		*r = answer.(bool)
	default:
		return fmt.Errorf("unsupported response type %T", response)
	}
	return nil
}

func newTestInitializer(t *testing.T, answers []interface{}) (*Initializer, *config.Store) {
	t.Helper()
	store := config.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	init := New(store, logger.Discard, theme.NewManager(theme.NewDefaultTheme())).
		WithAsker(&scriptedAsker{answers: answers})
	return init, store
}

func TestRunWritesAllSettings(t *testing.T) {
	init, store := newTestInitializer(t, []interface{}{
		"sk-test-key",
		"bambooclaw-pro",
		true,
		"4",
	})

	require.NoError(t, init.Run())

	key, err := store.Get("api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", key)

	model, err := store.Get("model")
	require.NoError(t, err)
	assert.Equal(t, "bambooclaw-pro", model)

	autostart, err := store.Get("autostart")
	require.NoError(t, err)
	assert.Equal(t, true, autostart)

	tasks, err := store.Get("max_tasks")
	require.NoError(t, err)
	assert.EqualValues(t, 4, tasks)
}

func TestRunRequiresAPIKeyOnFirstRun(t *testing.T) {
	init, store := newTestInitializer(t, []interface{}{""})

	err := init.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
	assert.False(t, store.Exists())
}

func TestRunKeepsExistingKeyOnEmptyAnswer(t *testing.T) {
	init, store := newTestInitializer(t, []interface{}{
		"",
		"bambooclaw-standard",
		false,
		"2",
	})
	require.NoError(t, store.Set("api_key", "sk-existing"))

	require.NoError(t, init.Run())

	key, err := store.Get("api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-existing", key)
}

func TestRunRejectsBadTaskCount(t *testing.T) {
	init, _ := newTestInitializer(t, []interface{}{
		"sk-test-key",
		"bambooclaw-mini",
		false,
		"zero",
	})

	err := init.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number")
}
