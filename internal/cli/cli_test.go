package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvplan/plangraph"
	"github.com/katalvlaran/lvplan/problems"
	"github.com/katalvlaran/lvplan/strips"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// run executes a fresh command tree and captures both streams.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err = cmd.Execute()

	return out.String(), errb.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, _, err := run(t, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestRoot_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "lvplan")
	assert.Contains(t, out, "levels")
	assert.Contains(t, out, "heuristic")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, _, err := run(t, "frobnicate")
	assert.Error(t, err)
}

func TestProblems(t *testing.T) {
	var got []problemSummary
	runJSON(t, &got, "problems")
	require.Len(t, got, 2)
	assert.Equal(t, problems.AirCargoP1Name, got[0].Name)
	assert.Equal(t, 12, got[0].Fluents)
	assert.Equal(t, problems.HaveCakeName, got[1].Name)
	assert.Equal(t, []string{"Have(Cake)", "Eaten(Cake)"}, got[1].Goal)

	out, _, err := run(t, "problems")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ have-cake")
}

func TestLevels_JSON(t *testing.T) {
	var rep graphReport
	runJSON(t, &rep, "levels", "--builtin", problems.HaveCakeName)

	assert.Equal(t, "have-cake", rep.Problem)
	assert.Equal(t, "TF", rep.State)
	assert.True(t, rep.Serial)
	assert.True(t, rep.Leveled)
	require.Len(t, rep.Levels, 3)
	assert.Len(t, rep.Levels[0].Literals, 2)
	assert.Len(t, rep.Levels[0].Actions, 3)
	assert.Equal(t, 2, rep.Levels[0].ActionPairs)
	assert.Equal(t, 4, rep.Levels[1].LiteralPair)
	assert.Nil(t, rep.Levels[2].Actions)
}

func TestLevels_Text(t *testing.T) {
	out, _, err := run(t, "levels", "-b", problems.HaveCakeName)
	require.NoError(t, err)
	assert.Contains(t, out, "leveled off after 3 literal levels")
	assert.Contains(t, out, "S1  4 literals, 4 mutex pairs")
	assert.Contains(t, out, "A0  3 actions, 2 mutex pairs")
	assert.Contains(t, out, "Eat(Cake)")

	out, _, err = run(t, "levels", "-b", problems.HaveCakeName, "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, out, "Eat(Cake)")
}

func TestLevels_StateAndParallel(t *testing.T) {
	var rep graphReport
	runJSON(t, &rep, "levels", "-b", problems.HaveCakeName, "--state", "FT", "--parallel")
	assert.Equal(t, "FT", rep.State)
	assert.False(t, rep.Serial)
}

func TestLevels_ProblemFile(t *testing.T) {
	data, err := strips.MarshalYAML(problems.HaveCake())
	require.NoError(t, err)
	path := writeFile(t, "cake.yaml", data)

	var rep graphReport
	runJSON(t, &rep, "levels", "--problem", path)
	assert.Equal(t, "have-cake", rep.Problem)
	assert.Len(t, rep.Levels, 3)
}

func TestHeuristic(t *testing.T) {
	var rep heuristicReport
	runJSON(t, &rep, "heuristic", "-b", problems.AirCargoP1Name)
	assert.Equal(t, 4, rep.LevelSum)
	assert.Equal(t, 2, rep.MaxLevel)
	assert.Equal(t, []goalCost{
		{Goal: "At(C1, JFK)", Level: 2, Found: true},
		{Goal: "At(C2, SFO)", Level: 2, Found: true},
	}, rep.Goals)

	rep = heuristicReport{}
	runJSON(t, &rep, "heuristic", "-b", problems.HaveCakeName, "--goal", "~Have(Cake)", "--goal", "Eaten(Cake)")
	assert.Equal(t, 2, rep.LevelSum)
	assert.Equal(t, []goalCost{
		{Goal: "~Have(Cake)", Level: 1, Found: true},
		{Goal: "Eaten(Cake)", Level: 1, Found: true},
	}, rep.Goals)

	rep = heuristicReport{}
	runJSON(t, &rep, "heuristic", "-b", problems.HaveCakeName, "--match-symbol")
	assert.Equal(t, 0, rep.LevelSum)

	out, _, err := run(t, "heuristic", "-b", problems.HaveCakeName)
	require.NoError(t, err)
	assert.Contains(t, out, "level-sum: 1")
}

func TestMutex(t *testing.T) {
	var rep mutexReport
	runJSON(t, &rep, "mutex", "-b", problems.HaveCakeName, "--level", "0")
	assert.Equal(t, []mutexPair{
		{A: "Eat(Cake)", B: "Noop_pos(Have(Cake))", Reasons: []string{"inconsistent_effects", "interference"}},
		{A: "Eat(Cake)", B: "Noop_neg(Eaten(Cake))", Reasons: []string{"inconsistent_effects"}},
	}, rep.Pairs)

	rep = mutexReport{}
	runJSON(t, &rep, "mutex", "-b", problems.HaveCakeName, "--level", "1", "--kind", "literals")
	assert.Len(t, rep.Pairs, 4)

	rep = mutexReport{}
	runJSON(t, &rep, "mutex", "-b", problems.HaveCakeName, "--level", "0", "--kind", "literals")
	assert.Empty(t, rep.Pairs)
}

func TestErrors(t *testing.T) {
	cases := map[string]struct {
		args []string
		want error
	}{
		"no problem":      {[]string{"levels"}, ErrNoProblem},
		"unknown builtin": {[]string{"levels", "-b", "nope"}, problems.ErrUnknownProblem},
		"bad links":       {[]string{"levels", "-b", "have-cake", "--links", "some"}, ErrBadFlag},
		"bad support":     {[]string{"levels", "-b", "have-cake", "--support", "some"}, ErrBadFlag},
		"bad workers":     {[]string{"levels", "-b", "have-cake", "--workers", "0"}, ErrBadFlag},
		"bad max levels":  {[]string{"levels", "-b", "have-cake", "--max-levels", "-1"}, ErrBadFlag},
		"bad log level":   {[]string{"levels", "-b", "have-cake", "--log-level", "loud"}, ErrBadFlag},
		"bad state":       {[]string{"levels", "-b", "have-cake", "--state", "TX"}, strips.ErrStateSymbol},
		"not leveled":     {[]string{"levels", "-b", "air-cargo-p1", "--max-levels", "1"}, plangraph.ErrNotLeveled},
		"bad level":       {[]string{"mutex", "-b", "have-cake", "--level", "5"}, ErrBadFlag},
		"bad kind":        {[]string{"mutex", "-b", "have-cake", "--kind", "edges"}, ErrBadFlag},
		"missing config":  {[]string{"levels", "--config", "/nonexistent/lvplan.yaml"}, ErrConfig},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConfig(t *testing.T) {
	path := writeFile(t, "lvplan.yaml", []byte("builtin: air-cargo-p1\nparallel: true\nworkers: 2\nlinks: preconditions\n"))

	var rep graphReport
	runJSON(t, &rep, "levels", "--config", path)
	assert.Equal(t, "air-cargo-p1", rep.Problem)
	assert.False(t, rep.Serial)

	// explicit flags win over the file
	rep = graphReport{}
	runJSON(t, &rep, "levels", "--config", path, "--parallel=false", "-b", "have-cake")
	assert.Equal(t, "have-cake", rep.Problem)
	assert.True(t, rep.Serial)

	bad := writeFile(t, "bad.yaml", []byte("colour: blue\n"))
	_, _, err := run(t, "levels", "--config", bad)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfig_RelativeProblem(t *testing.T) {
	dir := t.TempDir()
	data, err := strips.MarshalYAML(problems.HaveCake())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cake.yaml"), data, 0o644))
	cfg := filepath.Join(dir, "lvplan.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("problem: cake.yaml\nstate: FF\n"), 0o644))

	var rep graphReport
	runJSON(t, &rep, "levels", "--config", cfg)
	assert.Equal(t, "have-cake", rep.Problem)
	assert.Equal(t, "FF", rep.State)
}

func TestTelemetryFlags(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "lvplan.prom")
	_, stderr, err := run(t, "levels", "-b", "have-cake", "--trace", "--log-level", "debug", "--metrics-file", metricsPath)
	require.NoError(t, err)

	assert.Contains(t, stderr, "span plangraph.build")
	assert.Contains(t, stderr, "event level")
	assert.Contains(t, stderr, "level built")
	assert.Contains(t, stderr, "planning graph leveled")

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lvplan_builds_total{outcome="leveled",problem="have-cake"} 1`)
	assert.Contains(t, string(data), "lvplan_mutex_pairs_total")
}

func TestTelemetryFlags_FailedBuildStillWritesMetrics(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "lvplan.prom")
	_, _, err := run(t, "levels", "-b", "air-cargo-p1", "--max-levels", "1", "--metrics-file", metricsPath)
	require.ErrorIs(t, err, plangraph.ErrNotLeveled)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `outcome="not_leveled"`)
}
