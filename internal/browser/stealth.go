package browser

import (
	"math/rand"
	"time"
)

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}
