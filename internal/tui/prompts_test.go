package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

func TestPromptsRequireTerminal(t *testing.T) {
	if IsInteractive() {
		t.Skip("stdin is a terminal")
	}

	_, err := PromptDescription("")
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)

	_, err = PromptActivityType(models.TypeDevelop)
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)

	_, err = Confirm("Stop it?", false)
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)
}

func TestTypeChoices(t *testing.T) {
	assert.Equal(t, "1.BUG  2.DEVELOP  3.GENERAL  4.INFRA  5.MEETING  6.OUT_OF_OFFICE  7.PROBLEM  8.SUPPORT", typeChoices())
}

func TestShimmerRenderKeepsText(t *testing.T) {
	s := NewShimmerState(ShimmerConfig{Enabled: false})
	assert.Contains(t, s.Render("hello", 20), "hello")
	assert.Empty(t, s.Render("", 20))
}
