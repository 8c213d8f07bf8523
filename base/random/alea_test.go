package random

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAleaVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seeds []any
		want  []float64
	}{
		{
			seeds: []any{"test"},
			want:  []float64{0.5442283214069903, 0.7071346458978951, 0.7247104682028294},
		},
		{
			seeds: []any{"abc", "123"},
			want:  []float64{0.6509925271384418, 0.8471606157254428, 0.6003588198218495},
		},
		{
			seeds: []any{"hello."},
			want:  []float64{0.4783254903741181, 0.8297006865032017, 0.46924330526962876},
		},
		{
			seeds: []any{""},
			want:  []float64{0.1666577742435038, 0.4869158477522433, 0.00011322717182338238},
		},
		{
			seeds: []any{"my", 3, "seeds"},
			want:  []float64{0.30802189325913787, 0.5190450621303171, 0.43635262292809784},
		},
		{
			seeds: []any{"héllo☃"},
			want:  []float64{0.6476571992971003, 0.5382994636893272, 0.7945895495358855},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.seeds...), func(t *testing.T) {
			t.Parallel()

			a := NewAlea(tt.seeds...)
			for i, want := range tt.want {
				assert.InDelta(t, want, a.Float64(), 0, "draw %d", i)
			}
		})
	}
}

func TestAleaDeterminism(t *testing.T) {
	t.Parallel()

	a := NewAlea("abc", "123")
	b := NewAlea("abc", "123")
	var last float64
	for i := range 1000 {
		last = a.Float64()
		require.InDelta(t, last, b.Float64(), 0, "draw %d", i)
	}
	assert.InDelta(t, 0.7108143207151443, last, 0)

	// Different seeds lead to different streams.
	assert.NotEqual(t, NewAlea("abc", "124").Float64(), NewAlea("abc", "123").Float64())
	// Seeds are distinct values, not concatenated.
	assert.NotEqual(t, NewAlea("abc123").Float64(), NewAlea("abc", "123").Float64())
}

func TestAleaRangeAndMean(t *testing.T) {
	t.Parallel()

	a := NewAlea("test")
	var sum float64
	for range 100000 {
		f := a.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
		sum += f
	}
	assert.InDelta(t, 0.4996428700255253, sum/100000, 1e-9)
}

func TestAleaVariants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(2337442842), NewAlea("test").Uint32())
	assert.InDelta(t, 0.6509925273356867, NewAlea("abc", "123").Fract53(), 0)

	f, err := NewAlea("test").Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)

	a := NewAlea("my", 3, "seeds")
	assert.Equal(t, []string{"my", "3", "seeds"}, a.Seeds())
	assert.Equal(t, `Alea ["my" "3" "seeds"]`, a.String())
}

func TestAleaWithoutSeeds(t *testing.T) { //nolint:paralleltest // Replaces the clock.
	defer func(orig func() int64) { nowMillis = orig }(nowMillis)
	nowMillis = func() int64 { return 1700000000000 }

	a := NewAlea()
	assert.Equal(t, []string{"1700000000000"}, a.Seeds())
	assert.InDelta(t, NewAlea("1700000000000").Float64(), a.Float64(), 0)
}

func TestAleaConcurrency(t *testing.T) {
	t.Parallel()

	a := NewAlea("concurrent")
	seen := make(chan float64, 400)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				seen <- a.Float64()
			}
		}()
	}
	wg.Wait()
	close(seen)

	// All draws together are exactly the sequential stream, in any order.
	want := make(map[float64]int)
	b := NewAlea("concurrent")
	for range 400 {
		want[b.Float64()]++
	}
	got := make(map[float64]int)
	for f := range seen {
		got[f]++
	}
	assert.Equal(t, want, got)
}

type stringerSeed struct{}

func (stringerSeed) String() string { return "stringer" }

func TestSeedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seed any
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{3, "3"},
		{int64(-42), "-42"},
		{uint8(255), "255"},
		{true, "true"},
		{1.5, "1.5"},
		{0.0, "0"},
		{100.0, "100"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{-0.0, "0"},
		{float32(0.25), "0.25"},
		{float32(0.1), "0.10000000149011612"},
		{[]byte("bytes"), "bytes"},
		{stringerSeed{}, "stringer"},
		{[]int{1, 2}, "[1 2]"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeedText(tt.seed), "%#v", tt.seed)
	}
}
