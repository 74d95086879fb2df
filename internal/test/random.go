package test

import (
	"math/rand"
	"sync"
	"time"
)

const (
	loginAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// VIN characters exclude I, O and Q.
	vinAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
	vinLength   = 17
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomLogin returns a pseudo-random login of length n.
func RandomLogin(n int) string {
	if n <= 0 {
		n = 8
	}
	return randomString(loginAlphabet, n)
}

// RandomVIN returns a pseudo-random vehicle identification number used as a
// used vehicle catalog id.
func RandomVIN() string {
	return randomString(vinAlphabet, vinLength)
}

func randomString(alphabet string, n int) string {
	rngMu.Lock()
	defer rngMu.Unlock()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}
