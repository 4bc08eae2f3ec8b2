package scripts

import (
	"math/rand"
	"time"
)

// Picker chooses scripts at random.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewPickerWithSeed(time.Now().UnixNano())
}

// NewPickerWithSeed returns a deterministic Picker.
func NewPickerWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects a script uniformly.
func (p *Picker) Pick(scripts []Script) Script {
	if len(scripts) == 0 {
		return Script{}
	}
	return scripts[p.rnd.Intn(len(scripts))]
}

// PickWeighted selects a script with a bias toward weak characters: each
// occurrence of a weak character adds factor to the script's weight.
func (p *Picker) PickWeighted(scripts []Script, weakSet map[rune]struct{}, factor float64) Script {
	if len(scripts) == 0 {
		return Script{}
	}
	if len(weakSet) == 0 || factor <= 0 {
		return p.Pick(scripts)
	}
	weights := make([]float64, len(scripts))
	total := 0.0
	for i, s := range scripts {
		weakCount := 0
		for _, r := range s.Text {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	r := p.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return scripts[i]
		}
	}
	return scripts[len(scripts)-1]
}
