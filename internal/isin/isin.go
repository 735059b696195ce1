// Package isin implements ISO 6166 International Securities Identification
// Numbers: a 2-letter country code, a 9-character alphanumeric NSIN, and a
// single check digit computed with the Luhn double-add-double scheme over
// the digitized code.
package isin

import (
	"errors"
	"fmt"
	"math/rand"
)

const Length = 12

var (
	ErrLength     = errors.New("isin must be 12 characters")
	ErrCountry    = errors.New("isin must start with two letters")
	ErrCharset    = errors.New("isin body must be alphanumeric")
	ErrCheckDigit = errors.New("isin check digit mismatch")
)

// Validate checks structure and check digit of code.
func Validate(code string) error {
	if len(code) != Length {
		return ErrLength
	}
	if !isUpper(code[0]) || !isUpper(code[1]) {
		return ErrCountry
	}
	for i := 0; i < Length-1; i++ {
		c := code[i]
		if !isUpper(c) && !isDigit(c) {
			return ErrCharset
		}
	}
	if !isDigit(code[Length-1]) {
		return ErrCheckDigit
	}
	want, err := CheckDigit(code[:Length-1])
	if err != nil {
		return err
	}
	if code[Length-1] != want {
		return ErrCheckDigit
	}
	return nil
}

// CheckDigit computes the check digit for an 11-character ISIN body.
// Letters are digitized as A=10..Z=35, then the Luhn algorithm is applied
// to the resulting digit string, doubling from the rightmost digit.
func CheckDigit(body string) (byte, error) {
	if len(body) != Length-1 {
		return 0, fmt.Errorf("isin body must be %d characters, got %d", Length-1, len(body))
	}

	// Digitize: letters expand to two digits.
	digits := make([]int, 0, 2*(Length-1))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case isDigit(c):
			digits = append(digits, int(c-'0'))
		case isUpper(c):
			n := int(c-'A') + 10
			digits = append(digits, n/10, n%10)
		default:
			return 0, ErrCharset
		}
	}

	// Luhn: double every other digit starting from the rightmost.
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return byte('0' + (10-sum%10)%10), nil
}

// Generate produces a valid synthetic ISIN with the given 2-letter country
// code, drawing the NSIN from rng. Deterministic for a fixed rng state.
func Generate(country string, rng *rand.Rand) (string, error) {
	if len(country) != 2 || !isUpper(country[0]) || !isUpper(country[1]) {
		return "", ErrCountry
	}
	const digits = "0123456789"
	body := make([]byte, 0, Length)
	body = append(body, country[0], country[1])
	for i := 0; i < 9; i++ {
		body = append(body, digits[rng.Intn(len(digits))])
	}
	cd, err := CheckDigit(string(body))
	if err != nil {
		return "", err
	}
	return string(append(body, cd)), nil
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
