package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Preference
		ok   bool
	}{
		{"", Auto, true},
		{"auto", Auto, true},
		{" Dark ", Dark, true},
		{"LIGHT", Light, true},
		{"solarized", Auto, false},
	}
	for _, tt := range tests {
		got, ok := PreferenceFromString(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}

// Tests below swap detectDarkMode and must not run in parallel.

func TestNew_AutoFollowsDesktop(t *testing.T) {
	orig := detectDarkMode
	t.Cleanup(func() { detectDarkMode = orig })

	detectDarkMode = func() (bool, error) { return true, nil }
	assert.True(t, New(Auto).IsDark())

	detectDarkMode = func() (bool, error) { return false, nil }
	assert.False(t, New(Auto).IsDark())

	detectDarkMode = func() (bool, error) { return true, errors.New("no portal") }
	assert.False(t, New(Auto).IsDark())
}

func TestNew_ExplicitPreferenceSkipsDetection(t *testing.T) {
	orig := detectDarkMode
	t.Cleanup(func() { detectDarkMode = orig })
	detectDarkMode = func() (bool, error) {
		t.Fatal("detection should not run")
		return false, nil
	}

	assert.True(t, New(Dark).IsDark())
	assert.False(t, New(Light).IsDark())
}

func TestDiffStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "github-dark", New(Dark).DiffStyle().Name)
	assert.Equal(t, "github", New(Light).DiffStyle().Name)
	assert.Equal(t, "github", Plain().DiffStyle().Name)
}
