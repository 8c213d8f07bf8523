package random

// Alphabets used to render draws into printable strings.
const (
	// HexAlphabet holds the lowercase hexadecimal digits.
	HexAlphabet = "0123456789abcdef"

	// UnmistakableAlphabet excludes characters that are easily confused when
	// read by humans, like 0/O and 1/I/l.
	UnmistakableAlphabet = "23456789ABCDEFGHJKLMNPQRSTWXYZabcdefghijkmnopqrstuvwxyz"

	// SecretAlphabet is a URL-safe alphabet of exactly 64 symbols, so every
	// character carries 6 bits of entropy.
	SecretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
)

// Default lengths of IDs and secrets.
const (
	// DefaultIDLength yields more than 96 bits of entropy.
	DefaultIDLength = 17

	// DefaultSecretLength yields 258 bits of entropy, covering 256 bits.
	DefaultSecretLength = 43

	// MaxLength limits the length of generated strings and byte slices.
	MaxLength = 1 << 20
)
