package gentests

import _ "embed"
import "testing"
import "github.com/vic/montague/cmd/gentests/helper"

//go:embed input.lf
var input string

//go:embed output.lf
var output string

func Test_003_some_woman_talks_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "003_some_woman_talks", "t", input, output)
}
