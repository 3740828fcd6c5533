package commands_test

import (
	"testing"
	"time"

	"orderregistry/internal/core/application/usecases/commands"
	"orderregistry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFailStalledOrdersCommand(t *testing.T) {
	cmd, err := commands.NewFailStalledOrdersCommand(5 * time.Minute)

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, 5*time.Minute, cmd.OlderThan())
}

func TestNewFailStalledOrdersCommand_NonPositiveThreshold(t *testing.T) {
	tests := map[string]time.Duration{
		"zero":     0,
		"negative": -time.Minute,
	}

	for name, olderThan := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := commands.NewFailStalledOrdersCommand(olderThan)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestFailStalledOrdersCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.FailStalledOrdersCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrFailStalledOrdersCommandIsNotConstructed)
}
