package bigram

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrain(t *testing.T) {
	m := New()
	m.Train("The cat sat. the cat ran. The dog sat.")

	assert.Equal(t, map[string]int{"cat": 2, "dog": 1}, m.Successors("the"))
	assert.Equal(t, map[string]int{"sat.": 1, "ran.": 1}, m.Successors("cat"))
	assert.Nil(t, m.Successors("missing"))
	assert.Equal(t, 5, m.Vocabulary())
}

func TestGenerateUnknownSeed(t *testing.T) {
	m := NewTrained()
	assert.Equal(t, UnknownSeedResponse, m.Generate("zebra", 10))
	assert.Equal(t, UnknownSeedResponse, New().Generate("sadhak", 10))
}

func TestGenerateFollowsChain(t *testing.T) {
	m := New()
	m.Train("one two three four")

	assert.Equal(t, "one two three four", m.Generate("one", 10))
	assert.Equal(t, "one two", m.Generate("One", 2))
	assert.Equal(t, "two", m.Generate("two", 0))
}

func TestGenerateUsesRecordedSuccessors(t *testing.T) {
	m := NewTrained(WithSource(rand.NewPCG(1, 2)))

	out := m.Generate("sadhak", 20)
	words := strings.Fields(out)
	require.NotEmpty(t, words)
	require.LessOrEqual(t, len(words), 20)
	assert.Equal(t, "sadhak", words[0])

	for i := 0; i+1 < len(words); i++ {
		assert.Contains(t, m.Successors(words[i]), words[i+1])
	}
}

func TestGenerateDeterministicWithSource(t *testing.T) {
	a := NewTrained(WithSource(rand.NewPCG(7, 7)))
	b := NewTrained(WithSource(rand.NewPCG(7, 7)))

	for range 5 {
		assert.Equal(t, a.Generate("the", 15), b.Generate("the", 15))
	}
}

func TestGenerateConcurrent(t *testing.T) {
	m := NewTrained(WithSource(rand.NewPCG(3, 4)))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.True(t, strings.HasPrefix(m.Generate("calculator", 10), "calculator"))
			}
		}()
	}
	wg.Wait()
}
