package handler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/launch_booking/internal/adapter/handler"
	"github.com/srgjo27/launch_booking/internal/core/domain"
)

func prompter(input ...string) (*handler.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return handler.NewPrompter(strings.NewReader(strings.Join(input, "\n")+"\n"), &out), &out
}

func TestPrompterText_RepromptsUntilValid(t *testing.T) {
	p, out := prompter("", "a|b", "  Nova Launch  ")

	s, err := p.Text("Title")

	require.NoError(t, err)
	assert.Equal(t, "Nova Launch", s)
	assert.Contains(t, out.String(), "A value is required.")
	assert.Contains(t, out.String(), "'|' character is not allowed")
}

func TestPrompterInt_Range(t *testing.T) {
	p, out := prompter("abc", "99", "1201", "250")

	v, err := p.Int("Guests", 100, 1200)

	require.NoError(t, err)
	assert.Equal(t, 250, v)
	assert.Equal(t, 3, strings.Count(out.String(), "between 100 and 1200"))
}

func TestPrompterFloat_Minimum(t *testing.T) {
	p, _ := prompter("2000", "2500.50")

	v, err := p.Float("Budget", 2500)

	require.NoError(t, err)
	assert.Equal(t, 2500.5, v)
}

func TestPrompterDate(t *testing.T) {
	p, out := prompter("2025-02-30", "1/10/2025", "2025-10-01")

	d, err := p.Date("Date")

	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2025, 10, 1), d)
	assert.Equal(t, 2, strings.Count(out.String(), "real calendar date"))
}

func TestPrompter_CancelAndEOF(t *testing.T) {
	p, _ := prompter("0")
	_, err := p.Text("Title")
	assert.ErrorIs(t, err, handler.ErrAborted)

	p, _ = prompter()
	p.Line("skip blank")
	_, err = p.Int("Guests", 100, 1200)
	assert.ErrorIs(t, err, handler.ErrAborted)
}

func TestPrompterOptional(t *testing.T) {
	p, _ := prompter("", "New title")

	_, ok, err := p.Optional("Title")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := p.Optional("Title")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "New title", v)
}

func TestPrompterMenuAndPick(t *testing.T) {
	p, out := prompter("7", "2", "5", "3")

	assert.Equal(t, 2, p.Menu("Main", "One", "Two", "Three"))
	assert.Contains(t, out.String(), "Choose 0-3.")

	i, err := p.Pick("Venue", []string{"Hall A", "Hall B", "Hall C"})
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestPrompterConfirm(t *testing.T) {
	p, _ := prompter("maybe", "Y", "no")

	ok, err := p.Confirm("Continue?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("Continue?")
	require.NoError(t, err)
	assert.False(t, ok)
}
