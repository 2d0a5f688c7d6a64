package shortener

import "github.com/jaevor/go-nanoid"

// codeAlphabet is the character set for generated short codes: mixed-case
// alphanumeric, so codes stay URL-safe and human shareable.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultCodeLength is the length of generated short codes.
const DefaultCodeLength = 6

// CodeGenerator generates short codes. Generated codes are practically
// unique but not guaranteed; the registry retries on collision.
type CodeGenerator func() string

// NewCodeGenerator returns a CodeGenerator producing fixed-length
// alphanumeric codes.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, length)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
