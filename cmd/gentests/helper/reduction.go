package gentests

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
)

// CheckReduction parses input and output as formulas of type typ, normalizes
// input with every strategy and expects a result alpha-equivalent to output.
func CheckReduction(t *testing.T, testName string, typ string, inputStr string, outputStr string) {
	t.Helper()
	want, err := types.Parse(typ)
	require.NoError(t, err, "type of %s", testName)

	input, err := lambda.Parse(strings.TrimSpace(inputStr), want)
	require.NoError(t, err, "parsing input of %s", testName)
	expected, err := lambda.Parse(strings.TrimSpace(outputStr), want)
	require.NoError(t, err, "parsing output of %s", testName)
	require.True(t, lambda.IsNormal(expected), "expected output of %s is not normal", testName)

	for _, strategy := range []lambda.Strategy{lambda.Innermost, lambda.Outermost} {
		r := lambda.NewReducer(lambda.WithStrategy(strategy))
		start := time.Now()
		actual, err := r.Normalize(input)
		elapsed := time.Since(start)
		require.NoError(t, err, "%s: %s", testName, strategy)

		if !lambda.AlphaEqual(expected, actual) {
			t.Errorf("Mismatch in %s (%s):\nInput: %s\nExpected: %s\nActual:   %s",
				testName, strategy, lambda.ASCII(input), lambda.ASCII(expected), lambda.ASCII(actual))
		}

		got, err := lambda.TypeOf(actual)
		require.NoError(t, err)
		require.True(t, types.Equal(want, got), "%s: reduction changed the type to %s", testName, got)

		// Normal forms are fixed points.
		again, err := r.Normalize(actual)
		require.NoError(t, err)
		require.True(t, lambda.Equal(actual, again))

		stats := r.GetStats()
		t.Logf("%s (%s): %d beta steps, %d renames in %v", testName, strategy, stats.BetaSteps, stats.AlphaRenames, elapsed)
	}
}
