package corrupt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingValueInjector_ColumnRates(t *testing.T) {
	inj := NewMissingValueInjector()
	n := 20000
	ds := cleanDataset(n)

	nulled := inj.Apply(rand.New(rand.NewSource(42)), ds)

	counts := map[string]int{}
	for _, rec := range ds {
		if rec.SelfEmotional == nil {
			counts["self_emotional"]++
		}
		if rec.SugarConsumption == nil {
			counts["sugar_consumption"]++
		}
		if rec.SaltConsumption == nil {
			counts["salt_consumption"]++
		}
		if rec.ExerciseFrequency == nil {
			counts["exercise_frequency"]++
		}
		if rec.SmokingStatus == nil {
			counts["smoking_status"]++
		}
		if rec.Gender == nil {
			counts["gender"]++
		}
		if rec.WeightKg == nil {
			counts["weight_kg"]++
		}
		if rec.HeightCm == nil {
			counts["height_cm"]++
		}
		if rec.BellyCircumferenceCm == nil {
			counts["belly_circumference_cm"]++
		}
		if rec.FamilyHistory == nil {
			counts["family_history"]++
		}
	}

	rate := func(col string) float64 { return float64(counts[col]) / float64(n) }
	assert.InDelta(t, 0.90, rate("self_emotional"), 0.01)
	assert.InDelta(t, 0.05, rate("sugar_consumption"), 0.01)
	assert.InDelta(t, 0.05, rate("salt_consumption"), 0.01)
	assert.InDelta(t, 0.07, rate("exercise_frequency"), 0.01)
	assert.InDelta(t, 0.03, rate("smoking_status"), 0.01)
	assert.InDelta(t, 0.02, rate("gender"), 0.01)
	assert.InDelta(t, 0.03, rate("weight_kg"), 0.01)
	assert.InDelta(t, 0.03, rate("height_cm"), 0.01)
	assert.InDelta(t, 0.03, rate("belly_circumference_cm"), 0.01)
	assert.InDelta(t, 0.03, rate("family_history"), 0.01)

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, total, nulled)
}

func TestMissingValueInjector_MandatoryColumnsUntouched(t *testing.T) {
	inj := NewMissingValueInjector()
	ds := cleanDataset(2000)

	ids := make([]int, len(ds))
	ages := make([]int, len(ds))
	labels := make([]int, len(ds))
	for i, rec := range ds {
		ids[i] = rec.ID
		ages[i] = rec.Age
		labels[i] = rec.LabelHypertension
	}

	inj.Apply(rand.New(rand.NewSource(42)), ds)

	for i, rec := range ds {
		assert.Equal(t, ids[i], rec.ID)
		assert.Equal(t, ages[i], rec.Age)
		assert.Equal(t, labels[i], rec.LabelHypertension)
		assert.False(t, rec.InputTime.IsZero())
	}
}

func TestMissingValueInjector_Deterministic(t *testing.T) {
	inj := NewMissingValueInjector()

	a := cleanDataset(3000)
	b := cleanDataset(3000)
	na := inj.Apply(rand.New(rand.NewSource(42)), a)
	nb := inj.Apply(rand.New(rand.NewSource(42)), b)
	require.Equal(t, na, nb)
	require.Equal(t, a, b)
}
