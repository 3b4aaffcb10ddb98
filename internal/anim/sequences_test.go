package anim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinSequences(t *testing.T) {
	seqs, err := LoadBuiltinSequences()
	require.NoError(t, err)

	var names []string
	for _, s := range seqs {
		names = append(names, s.Name)
		require.Equal(t, "builtin", s.Source)
		require.NotEmpty(t, s.Steps)
	}
	require.Equal(t, []string{"demo", "dismiss", "heartbeat", "intro", "pulse"}, names)

	demo, ok := Find(seqs, "demo")
	require.True(t, ok)
	require.Len(t, demo.Steps, 3)
	require.Equal(t, []time.Duration{0, 50 * time.Millisecond, 0},
		[]time.Duration{demo.Steps[0].DelayAfter, demo.Steps[1].DelayAfter, demo.Steps[2].DelayAfter})
}

func TestParseSequence_VariantAndDefaults(t *testing.T) {
	seq, err := parseSequence([]byte(`
name: x
steps:
  - variant: slideUp
  - variant: slideUp
    state: exit
    transition: slow
`))
	require.NoError(t, err)
	require.Equal(t, Values{Opacity: 1, Y: 0}, seq.Steps[0].Target.Values)
	require.Equal(t, Transitions["spring"], seq.Steps[0].Target.Transition)
	require.Equal(t, Values{Opacity: 0, Y: -20}, seq.Steps[1].Target.Values)
	require.Equal(t, Transitions["slow"], seq.Steps[1].Target.Transition)
}

func TestParseSequence_KeyframesAndLoops(t *testing.T) {
	seq, err := parseSequence([]byte(`
name: x
steps:
  - keyframes:
      scale: [1, 1.2, 1]
    transition: smooth
    repeat: 2
  - loop: spinner
    transition: slow
`))
	require.NoError(t, err)

	first := seq.Steps[0].Target
	require.Equal(t, []float64{1, 1.2, 1}, first.Keyframes[Scale])
	require.Equal(t, 2, first.Transition.Repeat)
	require.Equal(t, Transitions["smooth"].Duration, first.Transition.Duration)

	last := seq.Steps[1].Target
	require.Equal(t, RepeatForever, last.Transition.Repeat)
	require.Equal(t, Linear, last.Transition.Ease)
	require.Equal(t, Transitions["slow"].Duration, last.Transition.Duration)

	heartbeat, err := LoadBuiltinSequences()
	require.NoError(t, err)
	hb, ok := Find(heartbeat, "heartbeat")
	require.True(t, ok)
	require.Equal(t, Values{Scale: 1}, hb.Steps[1].Target.Final())
}

func TestParseSequence_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "steps:\n  - values: {x: 1}\n", "name is required"},
		{"no steps", "name: a\n", "steps are required"},
		{"unknown transition", "name: a\nsteps:\n  - values: {x: 1}\n    transition: wobble\n", "unknown transition"},
		{"unknown variant", "name: a\nsteps:\n  - variant: nope\n", "unknown variant"},
		{"unknown state", "name: a\nsteps:\n  - variant: fadeIn\n    state: hover\n", "no state"},
		{"both", "name: a\nsteps:\n  - variant: fadeIn\n    values: {x: 1}\n", "both values and variant"},
		{"neither", "name: a\nsteps:\n  - transition: spring\n", "needs values, keyframes, variant or loop"},
		{"unknown loop", "name: a\nsteps:\n  - loop: wobble\n", "unknown loop"},
		{"loop with values", "name: a\nsteps:\n  - loop: pulse\n    values: {x: 1}\n", "cannot be combined"},
		{"endless step first", "name: a\nsteps:\n  - loop: bounce\n  - values: {x: 1}\n", "only the last step"},
		{"keyframes without duration", "name: a\nsteps:\n  - keyframes: {y: [0, 1]}\n", "need a transition with a duration"},
		{"empty keyframes", "name: a\nsteps:\n  - keyframes: {y: []}\n    transition: slow\n", "empty"},
		{"bad repeat", "name: a\nsteps:\n  - values: {x: 1}\n    repeat: -3\n", "repeat"},
		{"negative delay", "name: a\nsteps:\n  - values: {x: 1}\n    delay_after: -1s\n", "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSequence([]byte(tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSequencesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: b\nsteps:\n  - values: {x: 1}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("name: a\nsteps:\n  - values: {x: 2}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	seqs, err := LoadSequencesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	require.Equal(t, "a", seqs[0].Name)
	require.Equal(t, filepath.Join(dir, "a.yml"), seqs[0].Source)
}

func TestLoadSequencesFromDir_Missing(t *testing.T) {
	seqs, err := LoadSequencesFromDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, seqs)
}

func TestLoadSequencesFromDir_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\n"), 0o600))
	_, err := LoadSequencesFromDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadCatalog_UserOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pulse.yaml"),
		[]byte("name: pulse\ndescription: mine\nsteps:\n  - values: {scale: 3}\n"), 0o600))

	seqs, err := LoadCatalog(dir)
	require.NoError(t, err)

	pulse, ok := Find(seqs, "pulse")
	require.True(t, ok)
	require.Equal(t, "mine", pulse.Description)
	_, ok = Find(seqs, "intro")
	require.True(t, ok)
}

func TestLoadSequence_EmptyPath(t *testing.T) {
	_, err := LoadSequence(" ")
	require.Error(t, err)
}
