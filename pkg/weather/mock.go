package weather

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Generator produces a substitute snapshot when no provider answers.
type Generator interface {
	Generate(label string) (Snapshot, error)
}

type mockSky struct {
	description string
	condition   Condition
}

var mockSkies = []mockSky{
	{"Sunny", Clear},
	{"Partly cloudy", Clouds},
	{"Cloudy", Clouds},
	{"Light rain", Rain},
}

// Mock generates plausible conditions: 18-33 °C, high and low 2-7 °C either
// side, and one of four skies.
type Mock struct {
	mu   sync.Mutex
	Rand *rand.Rand
}

// NewMock seeds a Mock from the clock.
func NewMock() *Mock {
	seed := uint64(time.Now().UnixNano())
	return &Mock{Rand: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// Generate implements Generator.
func (m *Mock) Generate(label string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		m.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	r := m.Rand

	temp := 18 + r.IntN(16)
	high := temp + 2 + r.IntN(6)
	low := temp - 2 - r.IntN(6)
	sky := mockSkies[r.IntN(len(mockSkies))]

	return Snapshot{
		TemperatureC:  temp,
		TemperatureF:  Fahrenheit(float64(temp)),
		HighC:         high,
		HighF:         Fahrenheit(float64(high)),
		LowC:          low,
		LowF:          Fahrenheit(float64(low)),
		Description:   sky.description,
		Condition:     sky.condition,
		UVIndex:       1 + r.IntN(10),
		Humidity:      40 + r.IntN(41),
		LocationLabel: label,
	}, nil
}
