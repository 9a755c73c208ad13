package rules

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

func sampleRules() []plaintext.CustomRule {
	return []plaintext.CustomRule{
		{Name: "one", Pattern: "a", Replacement: "1", Enabled: true},
		{Name: "two", Pattern: "b", Replacement: "2", Enabled: true},
		{Name: "three", Pattern: "c", Replacement: "3", Enabled: false, ApplyBeforeConversion: true},
	}
}

// setup writes a config holding rules and returns global options pointing at it.
func setup(t *testing.T, rules []plaintext.CustomRule) cmdutil.GlobalOptions {
	t.Helper()
	t.Setenv("PLAINMD_OUTPUT", "")
	t.Setenv("PLAINMD_ENABLED", "")

	path := filepath.Join(t.TempDir(), "config.yml")
	if rules != nil {
		cfg := config.Default()
		cfg.Conversion.CustomRules = rules
		require.NoError(t, cfg.Save(path))
	}
	return cmdutil.GlobalOptions{ConfigPath: path, NoColor: true}
}

func savedRules(t *testing.T, g cmdutil.GlobalOptions) []plaintext.CustomRule {
	t.Helper()
	cfg, err := config.Load(g.Path())
	require.NoError(t, err)
	return cfg.Conversion.CustomRules
}

func names(rules []plaintext.CustomRule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Name)
	}
	return out
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		arg     string
		count   int
		want    int
		wantErr string
	}{
		{"1", 3, 0, ""},
		{"3", 3, 2, ""},
		{"0", 3, 0, "out of range"},
		{"4", 3, 0, "between 1 and 3"},
		{"x", 3, 0, "must be a number"},
		{"1", 0, 0, "no custom rules"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parsePosition(tt.arg, tt.count)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		err := runList(&listOptions{global: setup(t, sampleRules()), out: &buf})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "POS")
		assert.Contains(t, out, "three")
		assert.Contains(t, out, "before")
		assert.Contains(t, out, "false")
	})

	t.Run("json", func(t *testing.T) {
		g := setup(t, sampleRules())
		g.Output = "json"

		var buf bytes.Buffer
		require.NoError(t, runList(&listOptions{global: g, out: &buf}))

		var rules []plaintext.CustomRule
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rules))
		assert.Equal(t, sampleRules(), rules)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runList(&listOptions{global: setup(t, nil), out: &buf}))
		assert.Contains(t, buf.String(), "No custom rules configured.")
	})
}

func TestRunEdit_InvalidOutputLeavesFileAlone(t *testing.T) {
	g := setup(t, sampleRules())
	g.Output = "xml"

	err := runEdit(&editOptions{global: g, args: []string{"1"}, out: &bytes.Buffer{}}, removeRule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
	assert.Equal(t, []string{"one", "two", "three"}, names(savedRules(t, g)))
}

func TestRunAdd(t *testing.T) {
	t.Run("append creates config", func(t *testing.T) {
		g := setup(t, nil)
		var buf bytes.Buffer

		err := runAdd(&addOptions{global: g, pattern: "->", replacement: "→", out: &buf})
		require.NoError(t, err)

		rules := savedRules(t, g)
		require.Len(t, rules, 1)
		assert.Equal(t, plaintext.CustomRule{Name: "->", Pattern: "->", Replacement: "→", Enabled: true}, rules[0])
		assert.Contains(t, buf.String(), `✓ Added rule "->"`)
		assert.Contains(t, buf.String(), "Position: 1")
		assert.Contains(t, buf.String(), "Stage: after conversion")
	})

	t.Run("json output", func(t *testing.T) {
		g := setup(t, sampleRules())
		g.Output = "json"
		var buf bytes.Buffer

		err := runAdd(&addOptions{global: g, name: "new", pattern: "x", position: 1, before: true, out: &buf})
		require.NoError(t, err)

		var result struct {
			Position int                  `json:"position"`
			Rule     plaintext.CustomRule `json:"rule"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, 1, result.Position)
		assert.Equal(t, "new", result.Rule.Name)
		assert.True(t, result.Rule.ApplyBeforeConversion)
	})

	t.Run("insert at position", func(t *testing.T) {
		g := setup(t, sampleRules())
		var buf bytes.Buffer

		err := runAdd(&addOptions{global: g, name: "new", pattern: "x", position: 2, before: true, disabled: true, out: &buf})
		require.NoError(t, err)

		rules := savedRules(t, g)
		assert.Equal(t, []string{"one", "new", "two", "three"}, names(rules))
		assert.True(t, rules[1].ApplyBeforeConversion)
		assert.False(t, rules[1].Enabled)
	})

	t.Run("position after last", func(t *testing.T) {
		g := setup(t, sampleRules())
		require.NoError(t, runAdd(&addOptions{global: g, name: "last", pattern: "x", position: 4, out: &bytes.Buffer{}}))
		assert.Equal(t, []string{"one", "two", "three", "last"}, names(savedRules(t, g)))
	})

	t.Run("position out of range", func(t *testing.T) {
		g := setup(t, sampleRules())
		err := runAdd(&addOptions{global: g, pattern: "x", position: 5, out: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 4")
	})

	t.Run("invalid pattern rejected", func(t *testing.T) {
		g := setup(t, sampleRules())
		err := runAdd(&addOptions{global: g, name: "bad", pattern: "(unclosed", out: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid pattern")
		assert.Len(t, savedRules(t, g), 3)
	})

	t.Run("env overrides not persisted", func(t *testing.T) {
		g := setup(t, nil)
		t.Setenv("PLAINMD_BULLET_CHAR", "+")

		require.NoError(t, runAdd(&addOptions{global: g, pattern: "x", out: &bytes.Buffer{}}))

		cfg, err := config.Load(g.Path())
		require.NoError(t, err)
		assert.Equal(t, "•", cfg.Conversion.BulletChar)
	})
}

func TestRunEdit(t *testing.T) {
	tests := []struct {
		name      string
		edit      editFunc
		args      []string
		wantNames []string
		check     func(t *testing.T, rules []plaintext.CustomRule)
	}{
		{
			name:      "remove middle",
			edit:      removeRule,
			args:      []string{"2"},
			wantNames: []string{"one", "three"},
		},
		{
			name:      "enable",
			edit:      setEnabled(true),
			args:      []string{"3"},
			wantNames: []string{"one", "two", "three"},
			check: func(t *testing.T, rules []plaintext.CustomRule) {
				assert.True(t, rules[2].Enabled)
			},
		},
		{
			name:      "disable",
			edit:      setEnabled(false),
			args:      []string{"1"},
			wantNames: []string{"one", "two", "three"},
			check: func(t *testing.T, rules []plaintext.CustomRule) {
				assert.False(t, rules[0].Enabled)
			},
		},
		{
			name:      "move down",
			edit:      moveRule,
			args:      []string{"1", "3"},
			wantNames: []string{"two", "three", "one"},
		},
		{
			name:      "move up",
			edit:      moveRule,
			args:      []string{"3", "1"},
			wantNames: []string{"three", "one", "two"},
		},
		{
			name:      "move in place",
			edit:      moveRule,
			args:      []string{"2", "2"},
			wantNames: []string{"one", "two", "three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setup(t, sampleRules())
			var buf bytes.Buffer

			require.NoError(t, runEdit(&editOptions{global: g, args: tt.args, out: &buf}, tt.edit))
			assert.True(t, strings.HasPrefix(buf.String(), "✓ "))

			rules := savedRules(t, g)
			assert.Equal(t, tt.wantNames, names(rules))
			if tt.check != nil {
				tt.check(t, rules)
			}
		})
	}
}

func TestRunEdit_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit editFunc
		args []string
	}{
		{"remove out of range", removeRule, []string{"9"}},
		{"enable not a number", setEnabled(true), []string{"first"}},
		{"move bad target", moveRule, []string{"1", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setup(t, sampleRules())
			err := runEdit(&editOptions{global: g, args: tt.args, out: &bytes.Buffer{}}, tt.edit)
			require.Error(t, err)
			assert.Equal(t, sampleRules(), savedRules(t, g), "config unchanged")
		})
	}
}

func TestNewCmdRules(t *testing.T) {
	cmd := NewCmdRules()

	var subs []string
	for _, c := range cmd.Commands() {
		subs = append(subs, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "remove", "enable", "disable", "move", "test"}, subs)
}

func TestStageOrder(t *testing.T) {
	rules := []plaintext.CustomRule{
		{Name: "a1"},
		{Name: "b1", ApplyBeforeConversion: true},
		{Name: "a2"},
		{Name: "b2", ApplyBeforeConversion: true},
	}
	assert.Equal(t, []string{"b1", "b2", "a1", "a2"}, names(stageOrder(rules)))
}

func TestRunTest(t *testing.T) {
	rules := []plaintext.CustomRule{
		{Name: "after", Pattern: "X", Replacement: "done", Enabled: true},
		{Name: "before", Pattern: "a", Replacement: "X", Enabled: true, ApplyBeforeConversion: true},
		{Name: "off", Pattern: "done", Replacement: "never", Enabled: false},
	}

	t.Run("stages in order", func(t *testing.T) {
		g := setup(t, rules)
		var out bytes.Buffer

		require.NoError(t, runTest(&testOptions{global: g, sample: "a b", out: &out, errOut: &bytes.Buffer{}}))
		assert.Equal(t, "done b\n", out.String())
	})

	t.Run("stdin", func(t *testing.T) {
		g := setup(t, rules)
		var out bytes.Buffer

		require.NoError(t, runTest(&testOptions{global: g, in: strings.NewReader("aa"), out: &out, errOut: &bytes.Buffer{}}))
		assert.Equal(t, "donedone\n", out.String())
	})

	t.Run("convert", func(t *testing.T) {
		g := setup(t, rules)
		var out bytes.Buffer

		require.NoError(t, runTest(&testOptions{global: g, sample: "**a**", convert: true, out: &out, errOut: &bytes.Buffer{}}))
		assert.Equal(t, plaintext.ToBold("X")+"\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		g := setup(t, rules)
		g.Output = "json"
		var out bytes.Buffer

		require.NoError(t, runTest(&testOptions{global: g, sample: "a", out: &out, errOut: &bytes.Buffer{}}))

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "a", result["input"])
		assert.Equal(t, "done", result["output"])
	})

	t.Run("broken rule logged", func(t *testing.T) {
		g := setup(t, []plaintext.CustomRule{{Name: "bad", Pattern: "(", Enabled: true}})
		var out, errOut bytes.Buffer

		require.NoError(t, runTest(&testOptions{global: g, sample: "x", out: &out, errOut: &errOut}))
		assert.Equal(t, "x\n", out.String())
		assert.Contains(t, errOut.String(), "rule=bad")
	})
}
