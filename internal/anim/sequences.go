package anim

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Sequence is a named list of steps.
type Sequence struct {
	Name        string
	Description string
	Steps       []Step
	// Source is "builtin" or the file path it was loaded from.
	Source string
}

type sequenceFile struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Steps       []stepFile `yaml:"steps"`
}

// stepFile is a step as written in YAML. It names explicit values and
// keyframes, a variant state or a loop, plus a transition preset.
type stepFile struct {
	Values     Values               `yaml:"values"`
	Keyframes  map[string][]float64 `yaml:"keyframes"`
	Variant    string               `yaml:"variant"`
	State      string               `yaml:"state"`
	Loop       string               `yaml:"loop"`
	Transition string               `yaml:"transition"`
	Repeat     *int                 `yaml:"repeat"`
	DelayAfter time.Duration        `yaml:"delay_after"`
}

func parseSequence(data []byte) (*Sequence, error) {
	var file sequenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	seq := &Sequence{
		Name:        strings.TrimSpace(file.Name),
		Description: strings.TrimSpace(file.Description),
	}
	if seq.Name == "" {
		return nil, fmt.Errorf("sequence name is required")
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("sequence steps are required")
	}

	for i, sf := range file.Steps {
		step, err := sf.build()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if step.Target.Transition.Repeat == RepeatForever && i < len(file.Steps)-1 {
			return nil, fmt.Errorf("step %d: only the last step may repeat forever", i)
		}
		seq.Steps = append(seq.Steps, step)
	}
	return seq, nil
}

func (sf stepFile) build() (Step, error) {
	if sf.DelayAfter < 0 {
		return Step{}, fmt.Errorf("delay_after cannot be negative")
	}

	target, err := sf.target()
	if err != nil {
		return Step{}, err
	}
	if sf.Repeat != nil {
		target.Transition.Repeat = *sf.Repeat
	}
	if len(target.Keyframes) > 0 && target.Transition.Duration <= 0 {
		return Step{}, fmt.Errorf("keyframes need a transition with a duration")
	}
	if err := target.Validate(); err != nil {
		return Step{}, err
	}
	return Step{Target: target, DelayAfter: sf.DelayAfter}, nil
}

func (sf stepFile) target() (Target, error) {
	if sf.Loop != "" {
		if len(sf.Values) > 0 || len(sf.Keyframes) > 0 || sf.Variant != "" {
			return Target{}, fmt.Errorf("loop %q cannot be combined with values or variant", sf.Loop)
		}
		loop, ok := Loop(sf.Loop)
		if !ok {
			return Target{}, fmt.Errorf("unknown loop %q", sf.Loop)
		}
		if sf.Transition != "" {
			tr, err := transitionNamed(sf.Transition)
			if err != nil {
				return Target{}, err
			}
			loop.Transition.Duration = tr.Duration
		}
		return loop, nil
	}

	name := sf.Transition
	if name == "" {
		name = "spring"
	}
	tr, err := transitionNamed(name)
	if err != nil {
		return Target{}, err
	}

	hasValues := len(sf.Values) > 0 || len(sf.Keyframes) > 0
	hasVariant := sf.Variant != ""
	switch {
	case hasValues && hasVariant:
		return Target{}, fmt.Errorf("step sets both values and variant")
	case hasValues:
		return Target{Values: sf.Values, Keyframes: sf.Keyframes, Transition: tr}, nil
	case hasVariant:
		variants, ok := Variant(sf.Variant)
		if !ok {
			return Target{}, fmt.Errorf("unknown variant %q", sf.Variant)
		}
		state := sf.State
		if state == "" {
			state = Animate
		}
		target, ok := variants.Target(state, tr)
		if !ok {
			return Target{}, fmt.Errorf("variant %q has no state %q", sf.Variant, state)
		}
		return target, nil
	default:
		return Target{}, fmt.Errorf("step needs values, keyframes, variant or loop")
	}
}

func transitionNamed(name string) (Transition, error) {
	tr, ok := Transitions[name]
	if !ok {
		return Transition{}, fmt.Errorf("unknown transition %q", name)
	}
	return tr, nil
}

// LoadBuiltinSequences returns the sequences bundled with tint.
func LoadBuiltinSequences() ([]*Sequence, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin sequences: %w", err)
	}

	sequences := make([]*Sequence, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin sequence %s: %w", entry.Name(), err)
		}
		seq, err := parseSequence(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin sequence %s: %w", entry.Name(), err)
		}
		seq.Source = "builtin"
		sequences = append(sequences, seq)
	}
	sortSequences(sequences)
	return sequences, nil
}

// LoadSequence reads one sequence file.
func LoadSequence(path string) (*Sequence, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sequence path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}
	seq, err := parseSequence(data)
	if err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	seq.Source = path
	return seq, nil
}

// LoadSequencesFromDir loads every .yaml/.yml file in dir. A missing dir
// yields no sequences.
func LoadSequencesFromDir(dir string) ([]*Sequence, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Sequence{}, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Sequence{}, nil
		}
		return nil, fmt.Errorf("read sequences dir %s: %w", dir, err)
	}

	sequences := make([]*Sequence, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		seq, err := LoadSequence(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, seq)
	}
	sortSequences(sequences)
	return sequences, nil
}

// LoadCatalog merges builtins with the sequences in dir. A user sequence
// replaces a builtin of the same name.
func LoadCatalog(dir string) ([]*Sequence, error) {
	builtin, err := LoadBuiltinSequences()
	if err != nil {
		return nil, err
	}
	user, err := LoadSequencesFromDir(dir)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Sequence, len(builtin)+len(user))
	for _, seq := range builtin {
		byName[seq.Name] = seq
	}
	for _, seq := range user {
		byName[seq.Name] = seq
	}

	out := make([]*Sequence, 0, len(byName))
	for _, seq := range byName {
		out = append(out, seq)
	}
	sortSequences(out)
	return out, nil
}

// Find returns the sequence called name.
func Find(sequences []*Sequence, name string) (*Sequence, bool) {
	for _, seq := range sequences {
		if seq.Name == name {
			return seq, true
		}
	}
	return nil, false
}

func sortSequences(s []*Sequence) {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Name < s[j].Name
	})
}
