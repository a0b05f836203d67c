package collector

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/minecalc/internal/seed"
)

func TestFromForm_OverlaysSubmittedValues(t *testing.T) {
	form := url.Values{}
	form.Set("tonnesMinedTarget", "150000")
	form.Set("truckCount", "12")
	form.Set("gradePct", " 1.25 ")
	form.Set("metalPrice", "")

	in, err := FromForm(form, seed.DefaultInputs())
	require.NoError(t, err)

	assert.Equal(t, 150000.0, in.TonnesMinedTarget)
	assert.Equal(t, 12, in.TruckCount)
	assert.Equal(t, 1.25, in.GradePct)
	assert.Equal(t, seed.DefaultInputs().MetalPrice, in.MetalPrice)
}

func TestFromForm_RejectsBadValues(t *testing.T) {
	cases := []struct {
		field, value, want string
	}{
		{"stripRatio", "abc", "stripRatio must be numeric"},
		{"truckCount", "0", "truckCount must be greater than or equal to 1"},
		{"loaderCount", "2.5", "loaderCount must be a whole number"},
		{"recoveryPct", "120", "recoveryPct must be between 0 and 100"},
		{"exchangeRate", "0", "exchangeRate must be greater than or equal to 0.01"},
		{"costGaFixed", "-1", "costGaFixed must be greater than or equal to 0"},
		{"metalPrice", "NaN", "metalPrice must be a finite number"},
		{"truckCount", "1e19", "truckCount must be less than or equal to 2147483647"},
		{"loaderCount", "1e19", "loaderCount must be less than or equal to 2147483647"},
	}

	for _, tc := range cases {
		t.Run(tc.field+"="+tc.value, func(t *testing.T) {
			form := url.Values{}
			form.Set(tc.field, tc.value)

			_, err := FromForm(form, seed.DefaultInputs())
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestFromForm_ZeroTargetPassesToEngine(t *testing.T) {
	form := url.Values{}
	form.Set("tonnesMinedTarget", "0")

	in, err := FromForm(form, seed.DefaultInputs())
	require.NoError(t, err)
	assert.Zero(t, in.TonnesMinedTarget)
}

func TestLoadYAML_KeepsDefaultsForMissingKeys(t *testing.T) {
	doc := `
tonnesMinedTarget: 90000
stripRatio: 2.5
loaderCount: 4
`
	in, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	want := seed.DefaultInputs()
	want.TonnesMinedTarget = 90000
	want.StripRatio = 2.5
	want.LoaderCount = 4
	assert.Equal(t, want, in)
}

func TestLoadYAML_EmptyDocumentYieldsDefaults(t *testing.T) {
	in, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultInputs(), in)
}

func TestLoadYAML_RejectsUnknownKeysAndBounds(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("tonnesMined: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode scenario yaml")

	_, err = LoadYAML(strings.NewReader("plantThroughputTph: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plantThroughputTph")
}

func TestFieldsCoverEveryInput(t *testing.T) {
	in := seed.DefaultInputs()
	seen := map[string]bool{}
	for _, f := range Fields() {
		require.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.Label)
		assert.GreaterOrEqual(t, f.Value(in), f.Min, f.Name)
	}
	assert.Len(t, seen, 25)
	require.NoError(t, CheckBounds(in))
}
