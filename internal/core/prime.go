package core

// IsPrime reports whether n is a prime number using trial division up to
// floor(sqrt(n)) inclusive.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
