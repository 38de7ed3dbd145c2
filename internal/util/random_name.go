package util

import (
	"fmt"
	"holdemshot-server/internal/rng"
	"sync"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Red", "Blue", "Green", "Fuzzy", "Tall", "Grand", "Prime", "Lucky", "Sly",
	"Calm", "Cold", "Bold", "Wild", "Lazy", "Shy",
}

var animals = []string{
	"Dog", "Cat", "Shark", "Hippo", "Lion", "Tiger", "Bear", "Otter", "Snake", "Okapi", "Eagle", "Wolf",
	"Fox", "Rhino", "Panda", "Moose", "Crow", "Mole",
}

var (
	randomLock sync.Mutex
	random     rng.Generator = rng.Crypto{}
)

// GetRandomName returns a random name by combining an adjective with an animal
// Names always fit in a display name
func GetRandomName() string {
	randomLock.Lock()
	defer randomLock.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
